package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Destination   string   `mapstructure:"destination"`
	Tag           string   `mapstructure:"tag"`
	ImageExt      []string `mapstructure:"image_extensions"`
	Rerun         bool     `mapstructure:"rerun"`
	SharedTracker bool     `mapstructure:"shared_tracker"`
	UseExifTool   bool     `mapstructure:"exiftool"`
	WriteManifest bool     `mapstructure:"manifest"`
	SuffixLimit   int      `mapstructure:"suffix_limit"`
	LogLevel      string   `mapstructure:"log_level"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	viper.SetConfigName("organizer")
	viper.SetConfigType("toml")
	viper.AddConfigPath(filepath.Join(configDir, "organizer"))

	// Set defaults:
	viper.SetDefault("destination", "./organized_images")
	viper.SetDefault("image_extensions", []string{
		".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".arw", ".raw",
	})
	viper.SetDefault("rerun", false)
	viper.SetDefault("shared_tracker", false)
	viper.SetDefault("exiftool", false)
	viper.SetDefault("manifest", false)
	viper.SetDefault("suffix_limit", 10000)
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
