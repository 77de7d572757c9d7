package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "termtip",
	Short: "Glossary term annotation for rendered documentation",
	Long: `Termtip scans rendered documentation for occurrences of a fixed
vocabulary of glossary terms and wraps each occurrence in an interactive
tooltip, without altering the surrounding text. It can annotate HTML files
in place, render markdown into an annotated static site, and serve the
glossary and annotation API over HTTP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".termtip.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
