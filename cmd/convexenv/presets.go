package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"convexenv/presets"
	"convexenv/schema"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets [name]",
		Short: "List bundled presets, or show the declarations of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range presets.Names() {
					s, _ := presets.Lookup(name)
					fmt.Fprintf(a.stdout, "%-22s %s\n", name, joinKeys(s.Keys()))
				}
				return nil
			}

			s, ok := presets.Lookup(args[0])
			if !ok {
				return exitf(exitFailure, "Error: unknown preset '%s'", args[0])
			}
			out, err := schema.File{Config: s}.ToYAML()
			if err != nil {
				return exitf(exitFailure, "Error: cannot serialize preset: %v", err)
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
}
