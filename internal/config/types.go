package config

// Config is the top-level termtip configuration, corresponding to .termtip.yml.
type Config struct {
	// Glossary is the term source: a JSON/YAML file path or an HTTP(S) URL
	// serving the {"terms": {...}} resource.
	Glossary string `yaml:"glossary" koanf:"glossary"`

	// Regions are the CSS selectors scanned for term occurrences.
	Regions []string `yaml:"regions" koanf:"regions"`

	// ExcludeTags are element names whose subtrees are never annotated.
	ExcludeTags []string `yaml:"exclude_tags" koanf:"exclude_tags"`

	// GlossaryLink is the href every annotation's reference link points at.
	GlossaryLink string `yaml:"glossary_link" koanf:"glossary_link"`

	DocsDir   string   `yaml:"docs_dir" koanf:"docs_dir"`
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`

	Server ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Port     int    `yaml:"port" koanf:"port"`
	DataDir  string `yaml:"data_dir" koanf:"data_dir"`
	AllowAll bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
