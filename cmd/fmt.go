// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/luthersystems/fixkit/formatter"
)

// FmtCommand returns the fmt command.
func FmtCommand(opts ...Option) *cobra.Command {
	c := newCmdConfig(opts)
	var (
		fmtWrite    bool
		fmtDiff     bool
		fmtList     bool
		fmtExcludes []string
	)
	cmd := &cobra.Command{
		Use:   "fmt [flags] [files...]",
		Short: "Format the syntax tree of host documents",
		Long: `Format the syntax tree of host documents.

Normalizes whitespace and indentation between tokens and preserves comments
and preprocessor directives. The formatter is idempotent.

With no files, reads a JSON document from stdin and writes the formatted
source text to stdout. With files, prints the formatted source text to
stdout unless -w is given.

Modes:
  (default)   Print formatted source text to stdout
  -w          Write the formatted tree back to the document
  -d          Display a diff of the source text
  -l          List documents that would be changed

Layout settings come from the format section of the configuration:
  format:
    indent-size: 4
    use-tabs: false
    newline: lf

Examples:
  fixkit fmt Program.json           Print formatted source text
  fixkit fmt -w Program.json        Format in place
  fixkit fmt -d Program.json        Show what would change
  fixkit fmt -l ./...               List documents needing formatting`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.formatConfig()
			if err != nil {
				return usageError("%w", err)
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}
			paths, err := expandArgs(args, fmtExcludes)
			if err != nil {
				return usageError("%w", err)
			}
			if fmtWrite {
				for _, path := range paths {
					if path == stdinName {
						return usageError("-w cannot be used with stdin")
					}
				}
			}

			anyChanged := false
			for _, path := range paths {
				in, err := loadInput(path, cmd.InOrStdin())
				if err != nil {
					return &exitError{code: 2, err: err}
				}
				before := in.source()
				root := formatter.Format(in.root, cfg)
				after := root.FullText()
				changed := before != after
				anyChanged = anyChanged || changed

				switch {
				case fmtList:
					if changed {
						fmt.Fprintln(cmd.OutOrStdout(), path)
					}
				case fmtDiff:
					if changed {
						printUnifiedDiff(cmd.OutOrStdout(), in.doc.File, before, after)
					}
				case fmtWrite:
					if changed {
						if err := in.save(root); err != nil {
							return &exitError{code: 2, err: err}
						}
					}
				default:
					if _, err := io.WriteString(cmd.OutOrStdout(), after); err != nil {
						return err
					}
				}
			}
			if fmtList && anyChanged {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fmtWrite, "write", "w", false,
		"Write result to the document instead of stdout.")
	cmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false,
		"Display diffs instead of rewriting documents.")
	cmd.Flags().BoolVarP(&fmtList, "list", "l", false,
		"List documents whose formatting differs from fixkit fmt's.")
	cmd.Flags().StringArrayVar(&fmtExcludes, "exclude", nil,
		"Gitignore-style pattern for files to exclude (may be repeated).")
	return cmd
}

func printUnifiedDiff(w io.Writer, path string, original, formatted string) {
	// Simple line-by-line diff output
	fmt.Fprintf(w, "--- %s\n", path)
	fmt.Fprintf(w, "+++ %s\n", path)

	origLines := splitLines(original)
	fmtLines := splitLines(formatted)

	i, j := 0, 0
	for i < len(origLines) || j < len(fmtLines) {
		switch {
		case i < len(origLines) && j < len(fmtLines) && origLines[i] == fmtLines[j]:
			fmt.Fprintf(w, " %s\n", origLines[i])
			i++
			j++
		case i < len(origLines):
			fmt.Fprintf(w, "-%s\n", origLines[i])
			i++
		default:
			fmt.Fprintf(w, "+%s\n", fmtLines[j])
			j++
		}
	}
}

func splitLines(data string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
