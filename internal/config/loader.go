package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAmidar loads Amidar configuration.
// Search order: customPath -> ~/.toybox/configs/amidar.yaml -> ./configs/amidar.yaml -> embedded default
func LoadAmidar(customPath string) (AmidarConfig, error) {
	// Start from defaults so partial files only override what they name.
	cfg := DefaultAmidarConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("amidar.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultAmidarConfig()
		}
	}

	if data, err := os.ReadFile("configs/amidar.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultAmidarConfig()
	}

	if err := yaml.Unmarshal(defaultAmidarYAML, &cfg); err != nil {
		return DefaultAmidarConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".toybox", "configs", filename)
}
