package main

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"convexenv/internal/config"
	"convexenv/presets"
	"convexenv/schema"
	"convexenv/source"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	environ []string
	dir     string
	stdout  io.Writer
	stderr  io.Writer

	// Shared flags
	schemaPath string
	envFiles   []string
	presets    []string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "convexenv",
		Short: "Validate environment variables against a typed schema",
		Long: `convexenv checks environment variables against a schema of typed
declarations before a deployment or process starts.

The schema is read from convexenv.yaml (or CONVEXENV_SCHEMA, or --schema)
and may pull in bundled presets for common integrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.schemaPath, "schema", "", "Path to the schema file (default $CONVEXENV_SCHEMA or convexenv.yaml)")
	root.PersistentFlags().StringArrayVar(&a.envFiles, "env-file", nil, "Read defaults from a dotenv file (repeatable; the process environment wins)")
	root.PersistentFlags().StringArrayVar(&a.presets, "preset", nil, "Merge a bundled preset into the schema (repeatable)")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newPrintCmd(a))
	root.AddCommand(newExecCmd(a))
	root.AddCommand(newPresetsCmd(a))
	return root
}

// loadSchema reads the schema file and merges the requested presets ahead of
// the file's own presets and declarations.
func (a *app) loadSchema() (schema.Schema, string, error) {
	path := a.cfg.ResolveSchemaPath(a.schemaPath, a.dir)

	file, err := schema.LoadSchemaFromPath(path)
	if err != nil {
		if os.IsNotExist(err) {
			return schema.Schema{}, path, exitf(exitSchemaError, "schema file not found: %s", path)
		}
		return schema.Schema{}, path, exitf(exitSchemaError, "failed to parse schema: %v", err)
	}

	file.Presets = append(append([]string{}, a.presets...), file.Presets...)
	s, err := file.Resolve(presets.Lookup)
	if err != nil {
		return schema.Schema{}, path, exitf(exitSchemaError, "failed to resolve schema: %v", err)
	}

	a.log.Debug().Str("schema", path).Strs("presets", file.Presets).Int("variables", s.Len()).Msg("schema loaded")
	return s, path, nil
}

// loadSource returns the process environment backed by any --env-file
// values, plus the matching environ slice for a child process.
func (a *app) loadSource() (source.Source, []string, error) {
	base := source.Environ(a.environ)
	if len(a.envFiles) == 0 {
		return base, a.environ, nil
	}

	paths := make([]string, len(a.envFiles))
	for i, p := range a.envFiles {
		if !filepath.IsAbs(p) {
			p = filepath.Join(a.dir, p)
		}
		paths[i] = p
	}

	defaults, err := source.Dotenv(paths...)
	if err != nil {
		return nil, nil, exitf(exitFailure, "Error: %v", err)
	}
	a.log.Debug().Strs("files", paths).Int("entries", len(defaults)).Msg("env files read")

	return source.Chain{base, defaults}, withDefaults(a.environ, base, defaults), nil
}

// withDefaults appends entries from defaults that environ does not already set.
func withDefaults(environ []string, set source.Map, defaults source.Map) []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		if _, ok := set[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]string, 0, len(environ)+len(keys))
	out = append(out, environ...)
	for _, k := range keys {
		out = append(out, k+"="+defaults[k])
	}
	return out
}

// ciMode reports whether output should use CI annotations.
func (a *app) ciMode(flag bool) bool {
	return flag || a.cfg.InCI()
}

func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}
