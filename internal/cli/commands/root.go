// Package commands builds the archquery CLI's cobra command tree: one
// NewXCommand() factory per subcommand, assembled by NewRootCommand.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the archquery root command and attaches every
// subcommand.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "archquery",
		Short: "Compile chat-command search strings into archive queries",
		Long: color.CyanString(`archquery - a chat-command search DSL compiler

archquery compiles a short, sigil-based search string typed into a chat
command into the boolean query grammar of a scholarly preprint archive.

  archquery parse "quantum @hinton #cs.AI 20 rd"
  archquery try
  archquery serve --port 8080`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewParseCommand())
	rootCmd.AddCommand(NewTryCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}
