package cmd

import (
	"github.com/spf13/cobra"

	"github.com/termtip/termtip/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a termtip configuration interactively",
	Long:  `Runs an interactive wizard that detects your glossary file and writes .termtip.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
