package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Variant names. They double as registry IDs and config file base names.
const (
	VariantHunt    = "hunt"
	VariantClassic = "classic"
)

// SourceEmbedded is the Source of a config built from the embedded defaults.
const SourceEmbedded = "embedded"

// Variants lists the known variants in display order.
func Variants() []string {
	return []string{VariantHunt, VariantClassic}
}

// Load loads the configuration of a variant. Files only need to name the
// values they change; everything else keeps its default.
// Search order: customPath -> ~/.rabbits/configs/<variant>.{yaml,toml} ->
// ./configs/<variant>.yaml -> embedded default
func Load(variant, customPath string) (RabbitsConfig, error) {
	cfg, err := Default(variant)
	if err != nil {
		return cfg, err
	}

	// Custom path errors are reported; the others fall through.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, cfg.Validate()
	}

	candidates := []string{
		userConfigPath(variant + ".yaml"),
		userConfigPath(variant + ".toml"),
		filepath.Join("configs", variant+".yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fileCfg := cfg
		if err := decode(path, data, &fileCfg); err != nil {
			continue
		}
		fileCfg.Source = path
		if fileCfg.Validate() != nil {
			continue
		}
		return fileCfg, nil
	}

	// Use embedded default YAML
	embedded := cfg
	if err := yaml.Unmarshal(GetDefaultYAML(variant), &embedded); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	embedded.Source = SourceEmbedded
	return embedded, nil
}

// decode picks the format by file extension. Anything that is not .toml is
// read as YAML.
func decode(path string, data []byte, cfg *RabbitsConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rabbits", "configs", filename)
}
