package kv

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ValentinKolb/pdict/cmd/util"
	"github.com/ValentinKolb/pdict/lib/prompt"
	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	addCmd = &cobra.Command{
		Use:   "add [key=value]...",
		Short: "Adds key value pairs, existing keys are skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := parseEntries(args)
			if err != nil {
				return err
			}
			return withStore(false, func(s store.IStore[string]) error {
				skipped, err := s.Add(entries...)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %d entries\n", len(entries)-len(skipped))
				if len(skipped) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "skipped existing keys: %s (use rewrite to overwrite)\n", strings.Join(skipped, ", "))
				}
				return nil
			})
		},
	}
	rewriteCmd = &cobra.Command{
		Use:   "rewrite [key] [value]",
		Short: "Replaces the value of an existing key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			allowAdd, _ := cmd.Flags().GetBool("allow-add")
			return withStore(false, func(s store.IStore[string]) error {
				if err := s.Rewrite(args[0], args[1], allowAdd); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "rewrite successfully")
				return nil
			})
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key, adding it if missing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(false, func(s store.IStore[string]) error {
				if err := s.Set(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "set successfully")
				return nil
			})
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			return withStore(false, func(s store.IStore[string]) error {
				key := args[0]
				if strict {
					v, err := s.Load(key, true)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), v)
					return nil
				}
				v, ok := s.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "key=%s, found=%t, value=%s\n", key, ok, v)
				return nil
			})
		},
	}
	rmCmd = &cobra.Command{
		Use:     "rm [key]",
		Aliases: []string{"del"},
		Short:   "Removes a key, missing keys are ignored",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if ok, err := confirm(cmd, fmt.Sprintf("remove %q?", key)); err != nil || !ok {
				return err
			}
			return withStore(false, func(s store.IStore[string]) error {
				if err := s.Remove(key); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "remove successfully")
				return nil
			})
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(false, func(s store.IStore[string]) error {
				fmt.Fprintf(cmd.OutOrStdout(), "key=%s, found=%t\n", args[0], s.Has(args[0]))
				return nil
			})
		},
	}
	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Lists all keys in sorted order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(false, func(s store.IStore[string]) error {
				return s.ShowKeys(cmd.OutOrStdout())
			})
		},
	}
	showCmd = &cobra.Command{
		Use:   "show",
		Short: "Prints all entries as key: value lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(false, func(s store.IStore[string]) error {
				return s.ShowAll(cmd.OutOrStdout())
			})
		},
	}
	lenCmd = &cobra.Command{
		Use:   "len",
		Short: "Prints the number of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(false, func(s store.IStore[string]) error {
				fmt.Fprintln(cmd.OutOrStdout(), s.Len())
				return nil
			})
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints information about the store file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(false, func(s store.IStore[string]) error {
				printInfo(cmd.OutOrStdout(), s.GetInfo())
				return nil
			})
		},
	}
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Removes all entries of the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, err := confirm(cmd, "remove all entries?"); err != nil || !ok {
				return err
			}
			return withStore(true, func(s store.IStore[string]) error {
				fmt.Fprintln(cmd.OutOrStdout(), "reset successfully")
				return nil
			})
		},
	}
)

func init() {
	rewriteCmd.Flags().Bool("allow-add", false, util.WrapString("Add the key if it does not exist instead of failing"))
	getCmd.Flags().Bool("strict", false, util.WrapString("Fail if the key does not exist"))
	rmCmd.Flags().BoolP("yes", "y", false, util.WrapString("Do not ask for confirmation"))
	resetCmd.Flags().BoolP("yes", "y", false, util.WrapString("Do not ask for confirmation"))
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseEntries converts key=value arguments into store entries
func parseEntries(args []string) ([]store.Entry[string], error) {
	entries := make([]store.Entry[string], 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid entry %q, expected key=value", arg)
		}
		entries = append(entries, store.E(key, value))
	}
	return entries, nil
}

// confirm asks the user on interactive terminals unless --yes is given.
// Non-interactive sessions are never blocked.
func confirm(cmd *cobra.Command, msg string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes || !prompt.IsInteractive(os.Stdin) {
		return true, nil
	}
	ok, err := prompt.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), msg)
	if err == nil && !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "aborted")
	}
	return ok, err
}

// printInfo prints the store info in a human readable way
func printInfo(w io.Writer, info store.Info) {
	addField := func(name, value string) {
		fmt.Fprintf(w, "  %-10s: %s\n", name, value)
	}

	addField("Path", info.Path)
	addField("Codec", info.Codec)
	addField("Entries", humanize.Comma(int64(info.Entries)))
	if !info.FileExists {
		addField("File", "not created yet")
		return
	}
	addField("Size", humanize.IBytes(uint64(info.SizeBytes)))
	if st, err := os.Stat(info.Path); err == nil {
		addField("Modified", humanize.Time(st.ModTime()))
	}
}
