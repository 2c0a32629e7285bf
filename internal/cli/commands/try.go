package commands

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/archquery/archquery/pkg/archquery"
)

// NewTryCommand builds `archquery try`: an interactive REPL that
// repeatedly prompts for a chat-command string and pretty-prints the
// compiled result, for manually exercising the DSL the way a chat user
// would.
func NewTryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "try",
		Short: "Interactively try out the search DSL",
		Long:  "Repeatedly prompt for a chat-command string and print the compiled query, until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTryLoop()
		},
	}
}

func runTryLoop() error {
	compiler := archquery.New(archquery.WithDebug())
	hintColor := color.New(color.FgHiBlack)
	errorColor := color.New(color.FgRed, color.Bold)

	hintColor.Println("Type a chat-command search string. Ctrl-C to quit.")

	for {
		var input string
		prompt := &survey.Input{Message: "archquery>"}
		if err := survey.AskOne(prompt, &input); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
		if input == "" {
			continue
		}

		result, err := compiler.Parse(input)
		if err != nil {
			errorColor.Printf("error: %s\n", err.Error())
			continue
		}
		printResult(result)
		fmt.Println()
	}
}
