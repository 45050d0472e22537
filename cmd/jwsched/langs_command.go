package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jwsched/internal/language"
)

func newLangsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List languages with enhanced parsing support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, code := range language.Supported() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, language.Get(code).Name)
			}
			return nil
		},
	}
}
