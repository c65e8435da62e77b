// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/luthersystems/fixkit/lint"
)

// FixCommand returns the fix command.
func FixCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var (
		fixWrite    bool
		fixDiff     bool
		fixChecks   string
		fixExcludes []string
	)
	cmd := &cobra.Command{
		Use:   "fix [flags] [files...]",
		Short: "Apply the fixes of diagnostics to host documents",
		Long: `Apply the fixes of diagnostics to host documents.

Runs the enabled rules like lint does and applies every offered fix in a
single pass, hidden diagnostics included. A fix whose region overlaps one
that was already applied is skipped; run fix again to pick it up.
Rewritten nodes are laid out with the settings of the format section of
the configuration.

With no files, reads a JSON document from stdin. By default the fixed
source text is printed to stdout.

Modes:
  (default)   Print fixed source text to stdout
  -w          Write the fixed tree back to the document
  -d          Display a diff of the source text

Examples:
  fixkit fix Program.json                          Print fixed source text
  fixkit fix -w ./...                              Fix documents in place
  fixkit fix -d --checks=add-braces Program.json   Preview one rule's fixes`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.lintConfig(fixChecks)
			if err != nil {
				return usageError("%w", err)
			}
			formatCfg, err := c.formatConfig()
			if err != nil {
				return usageError("%w", err)
			}
			if fixWrite && fixDiff {
				return usageError("-w and -d are mutually exclusive")
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}
			paths, err := expandArgs(args, fixExcludes)
			if err != nil {
				return usageError("%w", err)
			}

			log := c.logger(cmd)
			l := &lint.Linter{Analyzers: c.analyzers, Config: cfg, Logger: log}
			x := &lint.Fixer{Format: formatCfg, Logger: log}
			for _, path := range paths {
				if fixWrite && path == stdinName {
					return usageError("-w cannot be used with stdin")
				}
				in, err := loadInput(path, cmd.InOrStdin())
				if err != nil {
					return &exitError{code: 2, err: err}
				}
				diags, err := l.Run(cmd.Context(), in.file())
				if err != nil {
					return &exitError{code: 2, err: fmt.Errorf("%s: %w", path, err)}
				}
				res, err := x.Fix(cmd.Context(), in.root, diags)
				if err != nil {
					return &exitError{code: 2, err: fmt.Errorf("%s: %w", path, err)}
				}
				log.Info("fixed", "file", in.doc.File,
					"applied", len(res.Applied), "skipped", len(res.Skipped))

				before := in.source()
				after := res.Root.FullText()
				switch {
				case fixDiff:
					if before != after {
						printUnifiedDiff(cmd.OutOrStdout(), in.doc.File, before, after)
					}
				case fixWrite:
					if len(res.Applied) > 0 {
						if err := in.save(res.Root); err != nil {
							return &exitError{code: 2, err: err}
						}
					}
				default:
					if _, err := io.WriteString(cmd.OutOrStdout(), after); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fixWrite, "write", "w", false,
		"Write result to the document instead of stdout.")
	cmd.Flags().BoolVarP(&fixDiff, "diff", "d", false,
		"Display diffs instead of rewriting documents.")
	cmd.Flags().StringVar(&fixChecks, "checks", "",
		"Comma-separated list of rules to apply (default: all enabled).")
	cmd.Flags().StringArrayVar(&fixExcludes, "exclude", nil,
		"Gitignore-style pattern for files to exclude (may be repeated).")
	return cmd
}
