package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"convexenv"
	"convexenv/internal/artifact"
)

func newPrintCmd(a *app) *cobra.Command {
	var (
		format         string
		skipValidation bool
		artifactFile   string
	)

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the typed environment",
		Long: `Resolve the environment against the schema and print the typed values,
including CONVEX_SITE_URL and CONVEX_CLOUD_URL.

Examples:
  convexenv print
  convexenv print --format yaml --skip-validation
  convexenv print --artifact-file build/env.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return exitf(exitFailure, "Error: unknown format %q (want json or yaml)", format)
			}

			s, _, err := a.loadSchema()
			if err != nil {
				return err
			}
			src, _, err := a.loadSource()
			if err != nil {
				return err
			}

			env, err := convexenv.Create(s, convexenv.Options{
				Source:         src,
				Ambient:        src,
				SkipValidation: skipValidation,
				Logger:         &a.log,
			})
			if err != nil {
				return exitf(exitFailure, "%v", err)
			}

			if artifactFile != "" {
				art, err := artifact.GenerateArtifact(env)
				if err != nil {
					return exitf(exitFailure, "Error: cannot build artifact: %v", err)
				}
				if err := art.WriteToFile(artifactFile); err != nil {
					return exitf(exitFailure, "Error: cannot write artifact: %s: %v", artifactFile, err)
				}
				a.log.Info().Str("configVersion", art.ConfigVersion).Str("file", artifactFile).Msg("artifact written")
			}

			var out []byte
			if format == "yaml" {
				out, err = yaml.Marshal(env)
			} else {
				out, err = json.MarshalIndent(env, "", "  ")
				out = append(out, '\n')
			}
			if err != nil {
				return exitf(exitFailure, "Error: cannot serialize environment: %v", err)
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "Do not fail on missing or invalid values")
	cmd.Flags().StringVar(&artifactFile, "artifact-file", "", "Also write a versioned artifact of the values to this path")
	return cmd
}
