package tools

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ValentinKolb/pdict/cmd/util"
	"github.com/ValentinKolb/pdict/lib/collections"
	"github.com/ValentinKolb/pdict/lib/fsutil"
	"github.com/ValentinKolb/pdict/lib/timer"
	"github.com/spf13/cobra"
)

var (
	sanitizeCmd = &cobra.Command{
		Use:   "sanitize [name]...",
		Short: "Converts text into file system safe names",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range args {
				fmt.Fprintln(cmd.OutOrStdout(), fsutil.SystemName(name))
			}
		},
	}
	dedupCmd = &cobra.Command{
		Use:   "dedup [file]",
		Short: "Removes duplicate lines from a file, keeping the first occurrence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			ignoreBlank, _ := cmd.Flags().GetBool("ignore-blank")
			if out == "" {
				out = args[0]
			}

			lines, err := fsutil.CollectLines(args[0], ignoreBlank)
			if err != nil {
				return err
			}
			unique := collections.Deduplicate(lines)
			if err := fsutil.WriteLines(out, unique, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d duplicate lines, %d lines written to %s\n", len(lines)-len(unique), len(unique), out)
			return nil
		},
	}
	lsCmd = &cobra.Command{
		Use:   "ls [root]",
		Short: "Lists paths below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var opts fsutil.SubPathOptions
			opts.Recursive, _ = flags.GetBool("recursive")
			opts.OnlyFiles, _ = flags.GetBool("files")
			opts.OnlyDirs, _ = flags.GetBool("dirs")
			opts.IncludeExts, _ = flags.GetStringSlice("ext")
			opts.IncludeNames, _ = flags.GetStringSlice("include")
			opts.ExcludeNames, _ = flags.GetStringSlice("exclude")
			relative, _ := flags.GetBool("relative")

			if opts.OnlyFiles && opts.OnlyDirs {
				return fmt.Errorf("--files and --dirs are mutually exclusive")
			}

			root, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			paths, err := fsutil.SubPaths(root, opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				if relative {
					if p, err = fsutil.EnsureRelative(p, root); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	waitCmd = &cobra.Command{
		Use:   "wait [duration]",
		Short: "Waits for a duration and prints a countdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return err
			}
			every, _ := cmd.Flags().GetDuration("every")

			t, err := timer.New(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "started %s\n", t)
			for left := range t.Ticks(every) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s left\n", left)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "done")
			return nil
		},
	}
)

func init() {
	dedupCmd.Flags().String("out", "", util.WrapString("Output file (default: overwrite the input)"))
	dedupCmd.Flags().Bool("ignore-blank", false, util.WrapString("Drop blank lines"))

	lsCmd.Flags().BoolP("recursive", "r", false, util.WrapString("Descend into sub directories"))
	lsCmd.Flags().Bool("files", false, util.WrapString("Only list files"))
	lsCmd.Flags().Bool("dirs", false, util.WrapString("Only list directories"))
	lsCmd.Flags().StringSlice("ext", nil, util.WrapString("Only list names with one of these extensions (e.g. txt,md)"))
	lsCmd.Flags().StringSlice("include", nil, util.WrapString("Only list names matching one of these glob patterns"))
	lsCmd.Flags().StringSlice("exclude", nil, util.WrapString("Skip names matching one of these glob patterns"))
	lsCmd.Flags().Bool("relative", false, util.WrapString("Print paths relative to root"))

	waitCmd.Flags().Duration("every", time.Second, util.WrapString("Interval of the countdown output"))
}
