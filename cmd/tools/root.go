package tools

import (
	"github.com/spf13/cobra"
)

var (
	// ToolCommands represents the tools command group
	ToolCommands = &cobra.Command{
		Use:   "tools",
		Short: "File and path helpers",
	}
)

func init() {
	// Add subcommands
	ToolCommands.AddCommand(sanitizeCmd)
	ToolCommands.AddCommand(dedupCmd)
	ToolCommands.AddCommand(lsCmd)
	ToolCommands.AddCommand(waitCmd)
}
