package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/archquery/archquery/pkg/archquery"
)

// NewParseCommand builds `archquery parse "<input>"`: runs the façade
// once and prints the compiled query, option summary and echo.
func NewParseCommand() *cobra.Command {
	var (
		debug    bool
		asJSON   bool
		maxInput int
	)

	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Compile a chat-command search string",
		Long:  "Compile a single chat-command search string into an archive query, printing the result or the first error found.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []archquery.Option{}
			if debug {
				opts = append(opts, archquery.WithDebug())
			}
			if maxInput > 0 {
				opts = append(opts, archquery.WithMaxInputLength(maxInput))
			}

			result, err := archquery.New(opts...).Parse(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				data, marshalErr := json.MarshalIndent(result, "", "  ")
				if marshalErr != nil {
					return marshalErr
				}
				fmt.Println(string(data))
				return nil
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "also print the token stream (the AST is not printed)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the Result as JSON")
	cmd.Flags().IntVar(&maxInput, "max-input", 0, "override the default 4 KiB input ceiling")

	return cmd
}

func printResult(result *archquery.Result) {
	titleColor := color.New(color.FgCyan, color.Bold)
	valueColor := color.New(color.FgWhite)

	titleColor.Print("Query:      ")
	valueColor.Println(result.QueryString)

	titleColor.Print("Max results: ")
	valueColor.Println(result.MaxResults)

	titleColor.Print("Sort:       ")
	valueColor.Printf("%v %v\n", result.SortCriterion, result.SortDirection)

	titleColor.Print("Echo:       ")
	valueColor.Println(result.Echo)

	if len(result.Tokens) > 0 {
		titleColor.Println("\nTokens:")
		for _, tok := range result.Tokens {
			valueColor.Printf("  %s\n", tok.String())
		}
	}
}
