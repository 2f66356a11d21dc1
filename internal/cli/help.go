// Styled help for the jslex commands.
package cli

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/jslex/internal/ui/pretty"
	"github.com/yaklabco/jslex/pkg/jsgrammar"
)

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}
{{- end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]
{{- end }}

{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end }}

{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if or .IsAvailableCommand (eq .Name "help") }}
  {{ name (pad .Name .NamePadding) }} {{ .Short }}
{{- end }}{{ end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end }}
`

const helpTemplate = `{{ with or .Long .Short }}{{ trim . }}

{{ end }}` + usageTemplate

// flagLine splits a pflag usage line into indent, flag names and type, and
// description.
var flagLine = regexp.MustCompile(`^(\s*)(\S.*?)(\s{2,})(\S.*)$`)

type helpTheme struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpTheme(styles *pretty.Styles) helpTheme {
	name := styles.Bold
	if style, ok := styles.Tokens[jsgrammar.StringLiteral]; ok {
		name = style
	}
	return helpTheme{
		command: styles.Info,
		heading: styles.Warning,
		name:    name,
		flag:    styles.Kind,
		dim:     styles.Dim,
	}
}

func (h helpTheme) funcs() template.FuncMap {
	return template.FuncMap{
		"command": h.command.Render,
		"heading": h.heading.Render,
		"name":    h.name.Render,
		"dim":     h.dim.Render,
		"flags":   h.flags,
		"pad":     pad,
		"trim":    trimLines,
	}
}

// flags styles pflag's usage block: flag names colored, value types dimmed.
func (h helpTheme) flags(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		fields := strings.Fields(m[2])
		for j, field := range fields {
			if name, ok := strings.CutSuffix(field, ","); ok && strings.HasPrefix(name, "-") {
				fields[j] = h.flag.Render(name) + ","
			} else if strings.HasPrefix(field, "-") {
				fields[j] = h.flag.Render(field)
			} else {
				fields[j] = h.dim.Render(field)
			}
		}
		lines[i] = m[1] + strings.Join(fields, " ") + m[3] + m[4]
	}
	return strings.Join(lines, "\n")
}

// applyHelp installs the styled help and usage output on root. Color is
// decided when help is printed so the --color flag applies.
func applyHelp(root *cobra.Command) {
	render := func(cmd *cobra.Command, text string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			mode = "auto"
		}
		theme := newHelpTheme(pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout())))

		tmpl, err := template.New("help").Funcs(theme.funcs()).Parse(text)
		if err != nil {
			return fmt.Errorf("parse help template: %w", err)
		}
		return tmpl.Execute(cmd.OutOrStdout(), cmd)
	}

	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return render(cmd, usageTemplate)
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := render(cmd, helpTemplate); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
