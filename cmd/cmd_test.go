// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/fixkit/formatter"
	"github.com/luthersystems/fixkit/hostio"
	"github.com/luthersystems/fixkit/lint"
	"github.com/luthersystems/fixkit/syntax"
)

func callStmt(name string) *syntax.Node {
	return syntax.ExpressionStatementOf(syntax.Invocation(syntax.IdentifierNameOf(name)))
}

// whileTrue is "{ while (true) { break; } A(); }" laid out.
func whileTrue() *syntax.Node {
	return formatter.Format(syntax.BlockOf(
		syntax.While(syntax.True(), syntax.BlockOf(syntax.Break())),
		callStmt("A"),
	), nil)
}

func writeDoc(t *testing.T, name string, root *syntax.Node) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	doc := &hostio.Document{File: strings.TrimSuffix(name, filepath.Ext(name))}
	doc.SetTree(root)
	require.NoError(t, hostio.WriteFile(path, doc))
	return path
}

func readText(t *testing.T, path string) string {
	t.Helper()
	doc, err := hostio.ReadFile(path)
	require.NoError(t, err)
	root, err := doc.Root()
	require.NoError(t, err)
	return root.FullText()
}

type result struct {
	code   int
	stdout string
	stderr string
}

// execute runs the command built by factory with a fresh configuration.
func execute(t *testing.T, factory func(...Option) *cobra.Command, stdin string, args ...string) result {
	t.Helper()
	v := viper.New()
	v.Set("color", "never")
	cmd := factory(WithViper(v))
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	code := run(cmd, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestLintCommand_DefaultFlags(t *testing.T) {
	cmd := LintCommand()
	assert.Equal(t, "lint [flags] [files...]", cmd.Use)
	for _, name := range []string{"json", "checks", "list", "exclude"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestLintCommand(t *testing.T) {
	bad := writeDoc(t, "bad.json", whileTrue())
	clean := writeDoc(t, "clean.json", formatter.Format(syntax.BlockOf(callStmt("A")), nil))

	t.Run("findings", func(t *testing.T) {
		res := execute(t, LintCommand, "", "--checks=avoid-while-true", bad)
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "avoid-while-true")
		assert.Contains(t, res.stderr, "Use 'for (;;)' instead of 'while (true)'")
		assert.Empty(t, res.stdout)
	})

	t.Run("clean", func(t *testing.T) {
		res := execute(t, LintCommand, "", "--checks=avoid-while-true", clean)
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Empty(t, res.stderr)
	})

	t.Run("json", func(t *testing.T) {
		res := execute(t, LintCommand, "", "--json", "--checks=avoid-while-true", bad)
		assert.Equal(t, 1, res.code)
		var diags []lint.Diagnostic
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &diags))
		require.Len(t, diags, 1)
		assert.Equal(t, "avoid-while-true", diags[0].Analyzer)
		assert.Equal(t, 2, diags[0].Pos.Line)
		assert.Equal(t, lint.SeverityWarning, diags[0].Severity)
	})

	t.Run("stdin", func(t *testing.T) {
		var buf bytes.Buffer
		doc := &hostio.Document{}
		doc.SetTree(whileTrue())
		require.NoError(t, hostio.Encode(&buf, hostio.JSON, doc))
		res := execute(t, LintCommand, buf.String(), "--json", "--checks=avoid-while-true")
		assert.Equal(t, 1, res.code)
		var diags []lint.Diagnostic
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &diags))
		require.Len(t, diags, 1)
		assert.Equal(t, "<stdin>", diags[0].Pos.File)
	})

	t.Run("unknown check", func(t *testing.T) {
		res := execute(t, LintCommand, "", "--checks=no-such-rule", bad)
		assert.Equal(t, 2, res.code)
		assert.Contains(t, res.stderr, "unknown analyzers: no-such-rule")
	})

	t.Run("malformed document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, hostio.WriteFile(path, &hostio.Document{Tree: &hostio.Node{Kind: "NoSuchKind"}}))
		res := execute(t, LintCommand, "", path)
		assert.Equal(t, 2, res.code)
		assert.Contains(t, res.stderr, "unknown kind")
	})

	t.Run("list", func(t *testing.T) {
		res := execute(t, LintCommand, "", "--list")
		assert.Equal(t, 0, res.code)
		assert.Contains(t, strings.Split(res.stdout, "\n"), "add-braces")
	})
}

func TestLintCommand_WithAnalyzers(t *testing.T) {
	custom := &lint.Analyzer{
		Name:     "no-calls",
		Doc:      "Report every invocation.",
		Severity: lint.SeverityError,
		Kinds:    []syntax.Kind{syntax.InvocationExpression},
		Visit: func(pass *lint.Pass, n *syntax.Node) {
			pass.ReportNode(n, "call", nil)
		},
	}
	path := writeDoc(t, "calls.json", whileTrue())
	v := viper.New()
	cmd := LintCommand(WithViper(v), WithAnalyzers(custom))
	var stdout, stderr bytes.Buffer
	cmd.SetArgs([]string{"--json", "--checks=no-calls", path})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	assert.Equal(t, 1, run(cmd, &stderr))
	assert.Contains(t, stdout.String(), `"analyzer": "no-calls"`)
}

func TestFixCommand(t *testing.T) {
	t.Run("print", func(t *testing.T) {
		path := writeDoc(t, "a.json", whileTrue())
		res := execute(t, FixCommand, "", "--checks=avoid-while-true", path)
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "for (;;)")
		assert.NotContains(t, res.stdout, "while (true)")
		assert.Contains(t, readText(t, path), "while (true)")
	})

	t.Run("write", func(t *testing.T) {
		path := writeDoc(t, "a.json", whileTrue())
		res := execute(t, FixCommand, "", "-w", "--checks=avoid-while-true", path)
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Empty(t, res.stdout)
		assert.Equal(t, "{\n    for (;;)\n    {\n        break;\n    }\n    A();\n}", readText(t, path))
	})

	t.Run("diff", func(t *testing.T) {
		path := writeDoc(t, "a.json", whileTrue())
		res := execute(t, FixCommand, "", "-d", "--checks=avoid-while-true", path)
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "-    while (true)\n")
		assert.Contains(t, res.stdout, "+    for (;;)\n")
	})

	t.Run("write and diff", func(t *testing.T) {
		path := writeDoc(t, "a.json", whileTrue())
		res := execute(t, FixCommand, "", "-w", "-d", path)
		assert.Equal(t, 2, res.code)
	})
}

func TestFmtCommand(t *testing.T) {
	raw := syntax.BlockOf(callStmt("A"), callStmt("B"))
	formatted := formatter.Format(raw, nil).FullText()
	require.NotEqual(t, raw.FullText(), formatted)

	t.Run("list", func(t *testing.T) {
		messy := writeDoc(t, "messy.json", raw)
		tidy := writeDoc(t, "tidy.json", formatter.Format(raw, nil))
		res := execute(t, FmtCommand, "", "-l", messy, tidy)
		assert.Equal(t, 1, res.code)
		assert.Equal(t, messy+"\n", res.stdout)
	})

	t.Run("print", func(t *testing.T) {
		res := execute(t, FmtCommand, "", writeDoc(t, "messy.json", raw))
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, formatted, res.stdout)
	})

	t.Run("write msgpack", func(t *testing.T) {
		path := writeDoc(t, "messy.msgpack", raw)
		res := execute(t, FmtCommand, "", "-w", path)
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, formatted, readText(t, path))
	})

	t.Run("indent size", func(t *testing.T) {
		v := viper.New()
		v.Set("format.indent-size", 2)
		cmd := FmtCommand(WithViper(v))
		var stdout, stderr bytes.Buffer
		cmd.SetArgs([]string{writeDoc(t, "messy.json", raw)})
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		require.Equal(t, 0, run(cmd, &stderr), stderr.String())
		assert.Equal(t, "{\n  A();\n  B();\n}", stdout.String())
	})
}

func TestRefactorCommand(t *testing.T) {
	root := formatter.Format(syntax.BlockOf(callStmt("A"), callStmt("B")), nil)
	src := root.FullText()
	start := strings.Index(src, "A();")
	sel := fmt.Sprintf("%d:%d", start, start+len("A();"))

	t.Run("list", func(t *testing.T) {
		res := execute(t, RefactorCommand, "", "--list", "--span", sel, writeDoc(t, "a.json", root))
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "wrap-in-try-catch")
		assert.Contains(t, res.stdout, "wrap-in-region")
		assert.NotContains(t, res.stdout, "wrap-in-else-clause")
	})

	t.Run("tree write", func(t *testing.T) {
		path := writeDoc(t, "a.json", root)
		res := execute(t, RefactorCommand, "", "--name", "wrap-in-try-catch", "--span", sel, "-w", path)
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, readText(t, path), "catch (System.Exception ex)")
	})

	t.Run("lines", func(t *testing.T) {
		res := execute(t, RefactorCommand, "", "--name", "wrap-in-condition", "--symbol", "TRACE",
			"--span", sel, writeDoc(t, "a.json", root))
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "{\n    #if TRACE\n    A();\n    #endif\n    B();\n}", res.stdout)
	})

	t.Run("lines cannot be written", func(t *testing.T) {
		res := execute(t, RefactorCommand, "", "--name", "wrap-in-region", "--span", sel, "-w", writeDoc(t, "a.json", root))
		assert.Equal(t, 2, res.code)
		assert.Contains(t, res.stderr, "cannot be written")
	})

	t.Run("not applicable", func(t *testing.T) {
		res := execute(t, RefactorCommand, "", "--name", "wrap-in-else-clause", "--span", sel, writeDoc(t, "a.json", root))
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "wrap-in-else-clause")
	})

	t.Run("unknown", func(t *testing.T) {
		res := execute(t, RefactorCommand, "", "--name", "extract-method", "--span", sel, writeDoc(t, "a.json", root))
		assert.Equal(t, 2, res.code)
		assert.Contains(t, res.stderr, `unknown refactoring "extract-method"`)
	})
}

func TestParseSpan(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
		wantErr    bool
	}{
		{in: "3:7", start: 3, end: 7},
		{in: "5", start: 5, end: 5},
		{in: " 1 : 2 ", start: 1, end: 2},
		{in: "7:3", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "a:b", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSpan(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, got.Start)
			assert.Equal(t, tt.end, got.End)
		})
	}
}

func TestRulesCommand(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		res := execute(t, RulesCommand, "")
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "ANALYZER")
		assert.Contains(t, res.stdout, "avoid-while-true")
		assert.Contains(t, res.stdout, "wrap-in-try-catch")
	})

	t.Run("analyzer", func(t *testing.T) {
		res := execute(t, RulesCommand, "", "add-braces")
		assert.Equal(t, 0, res.code, res.stderr)
		assert.True(t, strings.HasPrefix(res.stdout, "add-braces ("))
		assert.Contains(t, res.stdout, "multiline-only")
	})

	t.Run("refactoring", func(t *testing.T) {
		res := execute(t, RulesCommand, "", "wrap-in-condition")
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "DEBUG")
	})

	t.Run("guide", func(t *testing.T) {
		res := execute(t, RulesCommand, "", "--guide")
		assert.Equal(t, 0, res.code, res.stderr)
		assert.NotEmpty(t, res.stdout)
	})

	t.Run("unknown", func(t *testing.T) {
		res := execute(t, RulesCommand, "", "no-such-rule")
		assert.Equal(t, 2, res.code)
	})
}
