package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// CLI store configuration struct
// --------------------------------------------------------------------------

// StoreConfig holds the settings the CLI uses to open a store.
type StoreConfig struct {
	// Path of the backing file
	Path string
	// Codec is the name of the value codec (see codec.ByName)
	Codec string
	// Reset discards the existing content when the store is opened
	Reset bool

	// Logging configuration
	LogLevel string

	// Metrics prints the store metrics after each command
	Metrics bool
}

// Validate checks the configuration for obvious mistakes.
func (c *StoreConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return fmt.Errorf("store path must not be empty")
	}
	if c.Codec == "" {
		return fmt.Errorf("codec must not be empty")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *StoreConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-12s: %s\n", name, value))
	}

	addSection("Store")
	addField("Path", c.Path)
	addField("Codec", c.Codec)
	addField("Reset", fmt.Sprintf("%t", c.Reset))

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	addField("Metrics", fmt.Sprintf("%t", c.Metrics))

	return sb.String()
}
