package kv

import (
	"github.com/ValentinKolb/pdict/cmd/util"
	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/ValentinKolb/pdict/lib/store/pstore"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

var (
	log = logger.GetLogger("cli")

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:   "kv",
		Short: "Perform key-value store operations on a store file",
		Long: util.WrapString(`Perform key-value store operations on a store file.
Values are stored as strings with the selected codec. The file is selected with --file.`),
	}
)

func init() {
	// Add subcommands
	KeyValueCommands.AddCommand(addCmd)
	KeyValueCommands.AddCommand(rewriteCmd)
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(rmCmd)
	KeyValueCommands.AddCommand(hasCmd)
	KeyValueCommands.AddCommand(keysCmd)
	KeyValueCommands.AddCommand(showCmd)
	KeyValueCommands.AddCommand(lenCmd)
	KeyValueCommands.AddCommand(infoCmd)
	KeyValueCommands.AddCommand(resetCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// withStore opens the configured store, runs fn and closes the store again
func withStore(reset bool, fn func(s store.IStore[string]) error) error {
	conf := util.GetStoreConfig(reset)
	if err := conf.Validate(); err != nil {
		return err
	}
	opts, err := util.GetStoreOptions(reset)
	if err != nil {
		return err
	}
	log.Debugf("opening store with config:%s", conf.String())
	return pstore.With[string](conf.Path, opts, fn)
}
