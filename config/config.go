package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Download DownloadConfig `yaml:"download"`
}

type DownloadConfig struct {
	// Directory downloads are written to. The session loop may override
	// this interactively.
	Dir string `yaml:"dir"`

	// Audio extraction options used in audio-only mode
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
}

// DefaultDownloadDir returns the out-of-the-box destination directory,
// a fixed folder under the user's home.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Downloads", "YT_Downloads")
	}
	return filepath.Join(home, "Downloads", "YT_Downloads")
}

// Load reads the config file at path. A missing file is not an error:
// all defaults apply and the program runs without any config file at all.
func Load(path string) (*Config, error) {
	var config *Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		config = &Config{}
	} else {
		// Unmarshal the YAML data into the struct
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
		if config == nil {
			config = &Config{}
		}
	}

	// Set defaults if not provided
	if config.Download.Dir == "" {
		config.Download.Dir = DefaultDownloadDir()
	}

	if config.Download.AudioFormat == "" {
		config.Download.AudioFormat = "mp3"
	}

	if config.Download.AudioQuality == "" {
		config.Download.AudioQuality = "192K"
	}

	return config, nil
}
