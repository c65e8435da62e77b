// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/luthersystems/fixkit/diagnostic"
	"github.com/luthersystems/fixkit/lint"
	"github.com/luthersystems/fixkit/text"
)

// LintCommand returns the lint command.
func LintCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var (
		lintJSON     bool
		lintChecks   string
		lintListAll  bool
		lintExcludes []string
	)
	cmd := &cobra.Command{
		Use:   "lint [flags] [files...]",
		Short: "Report diagnostics for host documents",
		Long: `Report diagnostics for host documents.

Each rule is an independent analyzer that inspects the syntax tree, and the
semantic facts when the document carries them, and reports diagnostics.
Hidden diagnostics only offer fixes and are not reported.

With no files, reads a JSON document from stdin. A "dir/..." argument
expands to every document below dir. Exclude patterns use gitignore syntax
and are merged with the lines of a .fixkitignore file in the working
directory.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (invalid flags, unreadable or malformed documents)

To suppress a specific diagnostic, add a comment on the same line:
  x = x; // nolint:remove-redundant-assignment

To suppress all rules on a line:
  x = x; // nolint

Available rules (use --checks to select specific ones):
` + lint.AnalyzerDoc() + `
Examples:
  fixkit lint Program.json                       # Lint a single document
  fixkit lint --json Program.json                # Output diagnostics as JSON
  fixkit lint --checks=add-braces Program.json   # Run only specific rules
  fixkit lint --list                             # List available rules
  fixkit lint --exclude='generated' ./...        # Exclude a directory
  cat Program.json | fixkit lint                 # Lint from stdin`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lintListAll {
				names := make([]string, 0, len(c.analyzers))
				for _, a := range c.analyzers {
					names = append(names, a.Name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			cfg, err := c.lintConfig(lintChecks)
			if err != nil {
				return usageError("%w", err)
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}
			paths, err := expandArgs(args, lintExcludes)
			if err != nil {
				return usageError("%w", err)
			}

			l := &lint.Linter{Analyzers: c.analyzers, Config: cfg, Logger: c.logger(cmd)}
			var allDiags []lint.Diagnostic
			lines := make(map[string]*text.Lines)
			var inputs []*input
			for _, path := range paths {
				in, err := loadInput(path, cmd.InOrStdin())
				if err != nil {
					return &exitError{code: 2, err: err}
				}
				f := in.file()
				diags, err := l.Run(cmd.Context(), f)
				if err != nil {
					return &exitError{code: 2, err: fmt.Errorf("%s: %w", path, err)}
				}
				for _, d := range diags {
					if d.Severity != lint.SeverityHidden {
						allDiags = append(allDiags, d)
					}
				}
				lines[f.Name] = f.Lines()
				inputs = append(inputs, in)
			}

			if len(allDiags) == 0 {
				return nil
			}
			if lintJSON {
				if err := lint.FormatJSON(cmd.OutOrStdout(), allDiags); err != nil {
					return &exitError{code: 2, err: err}
				}
			} else {
				r := &diagnostic.Renderer{Color: c.colorMode(), SourceReader: sourceReader(inputs)}
				if err := renderLintDiagnostics(cmd.ErrOrStderr(), r, allDiags, lines); err != nil {
					return &exitError{code: 2, err: err}
				}
			}
			return &exitError{code: 1}
		},
	}

	cmd.Flags().BoolVar(&lintJSON, "json", false,
		"Output diagnostics as JSON.")
	cmd.Flags().StringVar(&lintChecks, "checks", "",
		"Comma-separated list of rules to run (default: all enabled).")
	cmd.Flags().BoolVar(&lintListAll, "list", false,
		"List available rules and exit.")
	cmd.Flags().StringArrayVar(&lintExcludes, "exclude", nil,
		"Gitignore-style pattern for files to exclude (may be repeated).")
	return cmd
}
