// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luthersystems/fixkit/refactor"
	"github.com/luthersystems/fixkit/text"
)

// RefactorCommand returns the refactor command.
func RefactorCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var (
		refName   string
		refSpan   string
		refSymbol string
		refList   bool
		refWrite  bool
	)
	cmd := &cobra.Command{
		Use:   "refactor [flags] [file]",
		Short: "Apply a refactoring to a selection",
		Long: `Apply a refactoring to a selection of a host document.

The selection is given with --span as START:END source offsets, or as a
single offset for a caret. With --list, prints the refactorings that apply
to the selection. Otherwise applies the refactoring named by --name and
prints the resulting source text.

Only refactorings that rewrite the tree can be written back with -w. The
line refactorings insert directive lines into the source text.

Examples:
  fixkit refactor --list --span 120:180 Program.json
  fixkit refactor --name wrap-in-try-catch --span 120:180 -w Program.json
  fixkit refactor --name wrap-in-condition --symbol TRACE --span 120:180 Program.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			span, err := parseSpan(refSpan)
			if err != nil {
				return usageError("--span: %w", err)
			}
			var r *refactor.Refactoring
			if !refList {
				if refName == "" {
					return usageError("one of --name or --list is required")
				}
				if r = refactor.Lookup(refName); r == nil {
					return usageError("unknown refactoring %q", refName)
				}
			}
			formatCfg, err := c.formatConfig()
			if err != nil {
				return usageError("%w", err)
			}
			path := stdinName
			if len(args) == 1 {
				path = args[0]
			}
			if refWrite && path == stdinName {
				return usageError("-w cannot be used with stdin")
			}
			in, err := loadInput(path, cmd.InOrStdin())
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			if span.End > len(in.source()) {
				return usageError("--span %s is outside of %s", refSpan, in.doc.File)
			}
			req := &refactor.Request{Root: in.root, Span: span, Name: refSymbol, Format: formatCfg}

			if refList {
				avail, err := refactor.Available(cmd.Context(), req)
				if err != nil {
					return err
				}
				for _, r := range avail {
					fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", r.Name, r.Title)
				}
				return nil
			}

			res, err := r.Apply(cmd.Context(), req)
			if err != nil {
				return &exitError{code: 1, err: err}
			}
			if refWrite {
				if res.Root == nil {
					return usageError("%s edits source text and cannot be written to a document", r.Name)
				}
				if err := in.save(res.Root); err != nil {
					return &exitError{code: 2, err: err}
				}
				return nil
			}
			out, err := res.Text()
			if err != nil {
				return &exitError{code: 2, err: err}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&refName, "name", "",
		"Name of the refactoring to apply.")
	cmd.Flags().StringVar(&refSpan, "span", "",
		"Selection as START:END source offsets, or a caret offset.")
	cmd.Flags().StringVar(&refSymbol, "symbol", "",
		"Condition symbol or region name for the line refactorings.")
	cmd.Flags().BoolVar(&refList, "list", false,
		"List refactorings that apply to the selection and exit.")
	cmd.Flags().BoolVarP(&refWrite, "write", "w", false,
		"Write the rewritten tree to the document instead of stdout.")
	_ = cmd.MarkFlagRequired("span")
	return cmd
}

// parseSpan parses START:END or a single caret offset.
func parseSpan(s string) (text.Span, error) {
	startText, endText, isRange := strings.Cut(s, ":")
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return text.Span{}, fmt.Errorf("invalid start %q", startText)
	}
	end := start
	if isRange {
		if end, err = strconv.Atoi(strings.TrimSpace(endText)); err != nil {
			return text.Span{}, fmt.Errorf("invalid end %q", endText)
		}
	}
	if start < 0 || end < start {
		return text.Span{}, fmt.Errorf("invalid range %d:%d", start, end)
	}
	return text.FromBounds(start, end), nil
}
