// Package config собирает настройки навыка из флагов и переменных окружения.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config — настройки навыка.
type Config struct {
	RunAddr  string
	LogLevel string

	// Region и Bucket задают бакет S3 с видео.
	Region string
	Bucket string

	// Пустые пути означают встроенные ресурсы.
	PlaylistPath string
	LanguagesDir string
	DocumentPath string

	DefaultLocale        string
	LegacySelectionRange bool
}

// Default возвращает настройки по умолчанию.
func Default() Config {
	return Config{
		RunAddr:       ":8080",
		LogLevel:      "info",
		DefaultLocale: "en",
	}
}

// RegisterFlags описывает флаги командной строки, значения по умолчанию берутся из cfg.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "address and port to run server")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "AWS region of the media bucket")
	fs.StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "S3 bucket with videos")
	fs.StringVar(&cfg.PlaylistPath, "playlist", cfg.PlaylistPath, "path to playlist TOML file")
	fs.StringVar(&cfg.LanguagesDir, "languages", cfg.LanguagesDir, "directory with locale JSON files")
	fs.StringVar(&cfg.DocumentPath, "apl-document", cfg.DocumentPath, "path to APL video player document")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "locale for error responses when request locale is unknown")
	fs.BoolVar(&cfg.LegacySelectionRange, "legacy-selection-range", cfg.LegacySelectionRange, "exclude the last video from selection by number")
}

// ApplyEnv переопределяет настройки непустыми переменными окружения.
// Значение, которое нельзя разобрать, считается ошибкой, как и неверный флаг.
func (cfg *Config) ApplyEnv() error {
	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		cfg.RunAddr = envRunAddr
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}
	if envRegion := os.Getenv("S3_PERSISTENCE_REGION"); envRegion != "" {
		cfg.Region = envRegion
	}
	if envBucket := os.Getenv("S3_PERSISTENCE_BUCKET"); envBucket != "" {
		cfg.Bucket = envBucket
	}
	if envPlaylist := os.Getenv("PLAYLIST_PATH"); envPlaylist != "" {
		cfg.PlaylistPath = envPlaylist
	}
	if envLanguages := os.Getenv("LANGUAGES_DIR"); envLanguages != "" {
		cfg.LanguagesDir = envLanguages
	}
	if envDocument := os.Getenv("APL_DOCUMENT_PATH"); envDocument != "" {
		cfg.DocumentPath = envDocument
	}
	if envLocale := os.Getenv("DEFAULT_LOCALE"); envLocale != "" {
		cfg.DefaultLocale = envLocale
	}
	if envLegacy := os.Getenv("LEGACY_SELECTION_RANGE"); envLegacy != "" {
		legacy, err := strconv.ParseBool(envLegacy)
		if err != nil {
			return fmt.Errorf("LEGACY_SELECTION_RANGE=%q: %w", envLegacy, err)
		}
		cfg.LegacySelectionRange = legacy
	}
	return nil
}

// Parse разбирает аргументы, затем применяет переменные окружения.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv возвращает настройки без командной строки, например для Lambda.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
