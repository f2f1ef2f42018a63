package util

import (
	"strings"

	"github.com/ValentinKolb/pdict/lib/codec"
	"github.com/ValentinKolb/pdict/lib/common"
	"github.com/ValentinKolb/pdict/lib/store/pstore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds the flags needed to open a store to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "file"
	cmd.PersistentFlags().StringP(key, "f", "pdict.db", WrapString("Path of the store file"))

	key = "codec"
	cmd.PersistentFlags().String(key, "json", WrapString("Codec used for the values ("+strings.Join(codec.Names, ", ")+")"))
}

// InitConfig loads .env files and configures viper to read PDICT_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("pdict")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetStoreConfig reads the store configuration from viper
func GetStoreConfig(reset bool) *common.StoreConfig {
	return &common.StoreConfig{
		Path:     viper.GetString("file"),
		Codec:    viper.GetString("codec"),
		Reset:    reset,
		LogLevel: viper.GetString("log-level"),
		Metrics:  viper.GetBool("metrics"),
	}
}

// GetCodec creates the codec selected by the configuration
func GetCodec() (codec.ICodec, error) {
	return codec.ByName(viper.GetString("codec"))
}

// GetStoreOptions builds the options for opening the configured store
func GetStoreOptions(reset bool) (*pstore.Options, error) {
	c, err := GetCodec()
	if err != nil {
		return nil, err
	}
	return &pstore.Options{
		Reset: reset,
		Codec: c,
	}, nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
