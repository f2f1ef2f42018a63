package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/pdict/cmd/kv"
	"github.com/ValentinKolb/pdict/cmd/tools"
	"github.com/ValentinKolb/pdict/cmd/util"
	"github.com/ValentinKolb/pdict/lib/common"
	"github.com/ValentinKolb/pdict/lib/store/pstore"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is the version of pdict
	Version = semver.Version{Minor: 3, PreRelease: "beta", Build: semver.Commit()}

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "pdict",
		Short: "persistent key-value store in a single file",
		Long: fmt.Sprintf(`pdict (%s)

A dictionary-like key-value store persisted to a single file.
Every change is written to disk immediately and atomically.`, Version.String()),
		SilenceUsage:       true,
		PersistentPreRunE:  setupLogging,
		PersistentPostRunE: dumpMetrics,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pdict",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pdict %s\n", Version.String())
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(tools.ToolCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupStoreFlags(RootCmd)
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("Log level (debug, info, warn, error)"))
	key = "metrics"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("Print store metrics in Prometheus format to stderr when the command finishes"))

	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

// setupLogging configures the loggers of all packages
func setupLogging(_ *cobra.Command, _ []string) error {
	return common.InitLoggers(viper.GetString("log-level"))
}

// dumpMetrics prints the store metrics if requested
func dumpMetrics(cmd *cobra.Command, _ []string) error {
	if viper.GetBool("metrics") {
		pstore.WriteMetrics(cmd.ErrOrStderr())
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
