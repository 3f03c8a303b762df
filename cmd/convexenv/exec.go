package main

import (
	"github.com/spf13/cobra"

	"convexenv"
	"convexenv/internal/artifact"
	"convexenv/internal/injector"
	"convexenv/internal/launcher"
	"convexenv/internal/report"
)

func newExecCmd(a *app) *cobra.Command {
	var (
		injectEnv string
		ciFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "run [flags] [--] command [args...]",
		Short: "Verify the environment, then replace this process with command",
		Long: `Verify every declared variable and, when all pass, exec the command with
the same environment. Nothing is printed on success.

Examples:
  convexenv run -- node server.js
  convexenv run --env-file .env --inject-env APP_CONFIG -- ./worker`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, schemaPath, err := a.loadSchema()
			if err != nil {
				return err
			}
			src, environ, err := a.loadSource()
			if err != nil {
				return err
			}

			if err := convexenv.Verify(s, src); err != nil {
				return a.emit(report.New(schemaPath, s.Len(), err), false, a.ciMode(ciFlag))
			}

			if injectEnv != "" {
				env, err := convexenv.Create(s, convexenv.Options{Source: src, Ambient: src, Logger: &a.log})
				if err != nil {
					return exitf(exitFailure, "%v", err)
				}
				art, err := artifact.GenerateArtifact(env)
				if err != nil {
					return exitf(exitFailure, "Error: cannot build artifact: %v", err)
				}
				environ, err = injector.InjectEnv(art, environ, injectEnv)
				if err != nil {
					return exitf(exitFailure, "Error: cannot inject config to env: %v", err)
				}
			}

			target := args[0]
			a.log.Debug().Str("command", target).Int("args", len(args)-1).Msg("exec")

			// Exec replaces the process, so this only returns on error
			err = launcher.Exec(target, args[1:], environ)
			return exitf(launcher.ExitCode(err), "Error: %v", err)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&injectEnv, "inject-env", "", "Pass the resolved values to the command as JSON in this variable")
	cmd.Flags().BoolVar(&ciFlag, "ci", false, "Print failures as GitHub Actions annotations (also enabled by CI=true)")
	return cmd
}
