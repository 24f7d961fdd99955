package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List model choices and the backend each one resolves to",
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, choice := range application.Catalog.Choices() {
			backend := application.Catalog.Resolve(choice)
			fmt.Fprintf(out, "%-24s -> %s (%s)\n", choice, backend.Provider, backend.Model)
		}
		fmt.Fprintf(out, "configured providers: %v\n", application.Router.Providers())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
