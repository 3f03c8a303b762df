package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"convexenv"
	"convexenv/internal/report"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		ciFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the environment against the schema",
		Long: `Verify every declared variable without running anything.

Examples:
  convexenv check
  convexenv check --schema deploy/convexenv.yaml --env-file .env.local
  convexenv check --preset betterAuth --preset oAuth.github --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, schemaPath, err := a.loadSchema()
			if err != nil {
				return err
			}
			src, _, err := a.loadSource()
			if err != nil {
				return err
			}

			result := report.New(schemaPath, s.Len(), convexenv.Verify(s, src))
			return a.emit(result, jsonOutput, a.ciMode(ciFlag))
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON on stdout")
	cmd.Flags().BoolVar(&ciFlag, "ci", false, "Print failures as GitHub Actions annotations (also enabled by CI=true)")
	return cmd
}

// emit prints a check result and turns a failure into exit code 1.
func (a *app) emit(result report.Result, jsonOutput, ciMode bool) error {
	switch {
	case jsonOutput:
		out, err := report.FormatJSON(result)
		if err != nil {
			return exitf(exitFailure, "Error: cannot format result: %v", err)
		}
		fmt.Fprintln(a.stdout, out)
	case !result.Valid && ciMode:
		fmt.Fprint(a.stderr, report.FormatCI(result))
	case !result.Valid:
		fmt.Fprint(a.stderr, report.FormatCLI(result))
	default:
		fmt.Fprint(a.stdout, report.FormatCLI(result))
	}

	if !result.Valid {
		return &exitError{code: exitFailure}
	}
	return nil
}
