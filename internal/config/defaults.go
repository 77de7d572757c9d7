package config

// DefaultRegions is the fixed list of report section selectors scanned when
// no regions are configured.
var DefaultRegions = []string{
	".report-section",
	".report-summary",
	".report-findings",
}

// DefaultExcludeTags are element names never annotated by default: literal
// code, navigable links, and non-prose elements.
var DefaultExcludeTags = []string{
	"a", "code", "pre", "kbd", "samp", "script", "style", "textarea",
}

// DefaultExcludes are glob patterns excluded from document discovery by default.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Glossary:     "glossary.yml",
		Regions:      DefaultRegions,
		ExcludeTags:  DefaultExcludeTags,
		GlossaryLink: "glossary.html",
		DocsDir:      "docs",
		OutputDir:    "site",
		Include:      []string{"**/*.md", "**/*.html"},
		Exclude:      DefaultExcludes,
		Server: ServerConfig{
			Port:    8080,
			DataDir: ".termtip",
		},
	}
}
