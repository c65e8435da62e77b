// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/luthersystems/fixkit/docs"
	"github.com/luthersystems/fixkit/lint"
	"github.com/luthersystems/fixkit/refactor"
)

// RulesCommand returns the rules command.
func RulesCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var rulesGuide bool
	cmd := &cobra.Command{
		Use:   "rules [flags] [id]",
		Short: "Describe analyzers and refactorings",
		Long: `Describe analyzers and refactorings.

With no id, lists every analyzer with its default severity and every
refactoring. With an id, prints the full documentation of that analyzer or
refactoring. With --guide, prints the user guide.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if rulesGuide {
				_, err := io.WriteString(w, docs.Guide)
				return err
			}
			if len(args) == 0 {
				return listRules(w, c.analyzers)
			}
			id := args[0]
			if a, ok := c.lookup(id); ok {
				describeAnalyzer(w, a)
				return nil
			}
			if r := refactor.Lookup(id); r != nil {
				fmt.Fprintf(w, "%s: %s\n\n", r.Name, r.Title)
				fmt.Fprintln(w, wrapDoc(r.Doc))
				return nil
			}
			return usageError("unknown rule %q", id)
		},
	}
	cmd.Flags().BoolVar(&rulesGuide, "guide", false, "Print the user guide.")
	return cmd
}

func listRules(w io.Writer, analyzers []*lint.Analyzer) error {
	sorted := append([]*lint.Analyzer(nil), analyzers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ANALYZER\tSEVERITY\tSUMMARY")
	for _, a := range sorted {
		sev := a.DefaultSeverity().String()
		if a.Disabled {
			sev += " (off)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Name, sev, summary(a.Doc))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "REFACTORING\tTITLE")
	for _, r := range refactor.All {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Title)
	}
	return tw.Flush()
}

func describeAnalyzer(w io.Writer, a *lint.Analyzer) {
	fmt.Fprintf(w, "%s (%s)\n\n", a.Name, a.DefaultSeverity())
	fmt.Fprintln(w, wrapDoc(a.Doc))
	if a.Disabled {
		fmt.Fprintln(w, "\n  Off by default. Enable it with --checks or the rules configuration.")
	}
	if len(a.Options) == 0 {
		return
	}
	names := make([]string, 0, len(a.Options))
	for name := range a.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "\nOptions:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s (default %v)\n", name, a.Options[name])
	}
}

func summary(doc string) string {
	first, _, _ := strings.Cut(doc, "\n")
	return first
}

func wrapDoc(doc string) string {
	return indent.String(wordwrap.String(strings.TrimSpace(doc), 72), 2)
}
