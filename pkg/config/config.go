package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultFilename = "allocator.toml"

	defaultReviewerNumber = 2
	defaultInsertColumn   = 4
	defaultListenAddress  = ":80"
)

var (
	ErrMissingCredentialFile = errors.New("CREDENTIAL_FILE is not set")
	ErrMissingSheetName      = errors.New("SHEET_NAME is not set")
	ErrInvalidSettings       = errors.New("invalid settings")
)

// Settings are the optional knobs kept in the TOML file.
type Settings struct {
	DefaultReviewerNumber int
	InsertColumn          int
	ListenAddress         string
	// Seed for reviewer shuffling, 0 picks a time based one.
	Seed int64
}

type Config struct {
	CredentialFile string
	SheetName      string

	Filename string
	Settings Settings
}

// Load reads the environment (and .env if present) and the TOML settings
// file at path. An empty path falls back to ALLOCATOR_CONFIG and then to
// DefaultFilename. A missing settings file is created with the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = getEnv("ALLOCATOR_CONFIG", DefaultFilename)
	}
	c := &Config{
		CredentialFile: os.Getenv("CREDENTIAL_FILE"),
		SheetName:      os.Getenv("SHEET_NAME"),
		Filename:       path,
		Settings:       defaultSettings(),
	}
	if err := c.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		log.Debugf("No settings file at %s, writing defaults", path)
		if err := c.Save(); err != nil {
			return nil, fmt.Errorf("save %s: %w", path, err)
		}
	}
	if c.Settings.ListenAddress == "" {
		c.Settings.ListenAddress = defaultListenAddress
	}

	if c.Settings.DefaultReviewerNumber < 0 || c.Settings.InsertColumn < 1 {
		return nil, fmt.Errorf("%w in %s", ErrInvalidSettings, path)
	}
	return c, nil
}

// Validate checks the values needed to reach the spreadsheet.
func (c *Config) Validate() error {
	if c.CredentialFile == "" {
		return ErrMissingCredentialFile
	}
	if c.SheetName == "" {
		return ErrMissingSheetName
	}
	return nil
}

// Save writes the current settings out to the TOML file.
func (c *Config) Save() error {
	b, err := toml.Marshal(c.Settings)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Filename, b, 0644)
}

func (c *Config) load() error {
	b, err := os.ReadFile(c.Filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, &c.Settings)
}

// defaultSettings is decoded over, so keys absent from the file keep
// these values and explicit zeros stay zero.
func defaultSettings() Settings {
	return Settings{
		DefaultReviewerNumber: defaultReviewerNumber,
		InsertColumn:          defaultInsertColumn,
		ListenAddress:         defaultListenAddress,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
