package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/termtip/termtip/internal/db"
	"github.com/termtip/termtip/internal/glossary"
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Inspect and manage the glossary vocabulary",
}

var termsLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load and validate the configured glossary source",
	Long:  `Loads the glossary without annotating anything, reporting the term count. Useful for validating a glossary file before publishing it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dict, err := glossary.Load(cmd.Context(), cfg.Glossary)
		if err != nil {
			return fmt.Errorf("loading glossary: %w", err)
		}
		fmt.Printf("Glossary %s: %d terms\n", cfg.Glossary, dict.Len())
		return nil
	},
}

var termsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all glossary terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dict, err := glossary.Load(cmd.Context(), cfg.Glossary)
		if err != nil {
			return fmt.Errorf("loading glossary: %w", err)
		}
		for _, t := range dict.Terms() {
			fmt.Printf("%-24s %s: %s\n", t.Key, t.FullName, t.ShortDefinition)
		}
		return nil
	},
}

var termsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the glossary into the server term store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dict, err := glossary.Load(cmd.Context(), cfg.Glossary)
		if err != nil {
			return fmt.Errorf("loading glossary: %w", err)
		}

		database, err := db.Open(filepath.Join(cfg.Server.DataDir, "termtip.db"))
		if err != nil {
			return fmt.Errorf("opening term store: %w", err)
		}
		defer database.Close()

		if err := glossary.NewStore(database).Import(dict, cfg.Glossary); err != nil {
			return fmt.Errorf("importing terms: %w", err)
		}
		fmt.Printf("Imported %d terms into the store\n", dict.Len())
		return nil
	},
}

func init() {
	termsCmd.AddCommand(termsLoadCmd)
	termsCmd.AddCommand(termsListCmd)
	termsCmd.AddCommand(termsImportCmd)
	rootCmd.AddCommand(termsCmd)
}
