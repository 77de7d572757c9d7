package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectGlossary checks the working directory for a glossary file under a
// well-known name.
func detectGlossary() string {
	for _, candidate := range []string{"glossary.yml", "glossary.yaml", "glossary.json", "terms.json"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .termtip.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to termtip! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Glossary source.
	glossaryDefault := detectGlossary()
	if glossaryDefault != "" {
		fmt.Printf("Detected glossary file: %s\n\n", glossaryDefault)
	} else {
		glossaryDefault = cfg.Glossary
	}
	glossaryPrompt := promptui.Prompt{
		Label:   "Glossary source (file path or URL)",
		Default: glossaryDefault,
	}
	glossary, err := glossaryPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("glossary source: %w", err)
	}
	cfg.Glossary = glossary

	// 2. Region selectors.
	regionsPrompt := promptui.Prompt{
		Label:   "Region selectors (comma-separated CSS selectors)",
		Default: strings.Join(DefaultRegions, ", "),
	}
	regionsStr, err := regionsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("region selectors: %w", err)
	}
	cfg.Regions = splitAndTrim(regionsStr)

	// 3. Docs directory.
	docsPrompt := promptui.Prompt{
		Label:   "Directory containing documentation sources",
		Default: cfg.DocsDir,
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}
	cfg.DocsDir = docsDir

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the annotated site",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)
	}

	// Save to .termtip.yml.
	configPath := ".termtip.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
