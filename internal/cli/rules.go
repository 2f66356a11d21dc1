package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jslex/internal/logging"
	"github.com/yaklabco/jslex/internal/ui/pretty"
	"github.com/yaklabco/jslex/pkg/config"
	"github.com/yaklabco/jslex/pkg/jsgrammar"
)

type rulesFlags struct {
	format     string
	tokensOnly bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name  string `json:"name"`
	Token bool   `json:"token"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the grammar rules",
		Long: `List every named production of the JavaScript lexical grammar.

Token rules are the ones recorded in a token's type chain; the others are
helpers they are built from.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := listRules(flags.tokensOnly)

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}
			if flags.format != "text" {
				return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}

			logger := logging.NewInteractive()
			logger.SetOutput(cmd.OutOrStdout())

			logger.Info("grammar rules")
			for _, rule := range rules {
				if rule.Token {
					logger.Info(rule.Name, logging.FieldToken, "yes")
				} else {
					logger.Info(rule.Name)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.tokensOnly, "tokens", false, "list only token rules")

	cmd.AddCommand(newRulesMatchCommand())

	return cmd
}

func listRules(tokensOnly bool) []ruleInfo {
	grammar := jsgrammar.Default()

	var rules []ruleInfo
	for _, name := range grammar.Names() {
		token := grammar.IsToken(name)
		if tokensOnly && !token {
			continue
		}
		rules = append(rules, ruleInfo{Name: name, Token: token})
	}
	return rules
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []ruleInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rules); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

func newRulesMatchCommand() *cobra.Command {
	var tabWidth int

	cmd := &cobra.Command{
		Use:   "match <rule> <input|->",
		Short: "Apply one rule and print the element tree",
		Long: `Apply a single grammar rule at the start of the input and print the
element tree it builds, one node per line with its byte range.

Examples:
  jslex rules match numericLiteral 0x1F
  jslex rules match elementAssumingRegex '/a+/g.test(s)'
  printf 'a\tb' | jslex rules match identifierName -`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, input := args[0], args[1]

			if input == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return withExitCode(ExitIOError, fmt.Errorf("read standard input: %w", err))
				}
				input = string(data)
			}

			el, matched, err := jsgrammar.Default().Match(name, input, tabWidth)
			if err != nil {
				return withExitCode(ExitInvalidUsage, err)
			}
			if !matched {
				fmt.Fprintf(cmd.ErrOrStderr(), "rule %s does not match %q\n", name, preview(input))
				return ErrLexErrorsFound
			}

			if err := el.Dump(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("write element tree: %w", err)
			}
			if el.End() < len(input) {
				fmt.Fprintf(cmd.ErrOrStderr(), "matched %d of %d bytes\n", el.End(), len(input))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&tabWidth, "tab-width", config.DefaultTabWidth, "tab stop used for columns")

	return cmd
}

// preview shortens input for error messages.
func preview(input string) string {
	const maxPreview = 40
	if line, _, found := strings.Cut(input, "\n"); found {
		input = line
	}
	return pretty.Truncate(input, maxPreview)
}
