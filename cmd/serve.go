package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/termtip/termtip/internal/db"
	"github.com/termtip/termtip/internal/glossary"
	"github.com/termtip/termtip/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the annotated site and glossary API",
	Long: `Starts an HTTP server exposing the generated site, the glossary
resource (GET /api/terms), an annotation endpoint (POST /api/annotate), and
a live-reload websocket that fires when the glossary is re-imported.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override the configured port")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port := cfg.Server.Port
	if flagPort, _ := cmd.Flags().GetInt("port"); flagPort > 0 {
		port = flagPort
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

	database, err := db.Open(filepath.Join(cfg.Server.DataDir, "termtip.db"))
	if err != nil {
		return fmt.Errorf("opening term store: %w", err)
	}
	defer database.Close()
	store := glossary.NewStore(database)

	// Seed the store from the configured glossary source when it is empty,
	// so a fresh deployment serves terms without a manual import.
	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("checking term store: %w", err)
	}
	if count == 0 {
		dict := loadGlossary(cmd.Context(), cfg)
		if dict.Len() > 0 {
			if err := store.Import(dict, cfg.Glossary); err != nil {
				return fmt.Errorf("seeding term store: %w", err)
			}
			fmt.Printf("Seeded term store with %d terms from %s\n", dict.Len(), cfg.Glossary)
		}
	}

	srv, err := server.New(server.Config{
		Port:         port,
		SiteDir:      cfg.OutputDir,
		Regions:      cfg.Regions,
		ExcludeTags:  cfg.ExcludeTags,
		GlossaryLink: cfg.GlossaryLink,
		AllowAll:     allowAll || cfg.Server.AllowAll,
	}, store)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Serving at http://localhost:%d (press Ctrl+C to stop)\n", port)
	return srv.Start()
}
