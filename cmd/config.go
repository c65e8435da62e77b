// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/luthersystems/fixkit/formatter"
	"github.com/luthersystems/fixkit/lint"
)

// lintConfig builds the analyzer selection from the rules section of the
// configuration. A non-empty checks list restricts the run to those
// analyzers, including ones that are off by default.
func (c *cmdConfig) lintConfig(checks string) (*lint.Config, error) {
	cfg := &lint.Config{
		Disable:  c.v.GetStringSlice("rules.disable"),
		Severity: make(map[string]lint.Severity),
		Options:  make(map[string]lint.Options),
	}
	for _, name := range strings.Split(checks, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Enable = append(cfg.Enable, name)
		}
	}
	for name, s := range c.v.GetStringMapString("rules.severity") {
		sev, err := lint.ParseSeverity(s)
		if err != nil {
			return nil, fmt.Errorf("rules.severity.%s: %w", name, err)
		}
		cfg.Severity[name] = sev
	}
	for name, raw := range c.v.GetStringMap("rules.options") {
		opts, err := cast.ToStringMapE(raw)
		if err != nil {
			return nil, fmt.Errorf("rules.options.%s: %w", name, err)
		}
		cfg.Options[name] = lint.Options(opts)
	}
	if err := cfg.Validate(c.analyzers); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatConfig returns the layout settings of rewritten nodes.
func (c *cmdConfig) formatConfig() (*formatter.Config, error) {
	cfg := formatter.DefaultConfig()
	if c.v.IsSet("format.indent-size") {
		n := c.v.GetInt("format.indent-size")
		if n <= 0 {
			return nil, fmt.Errorf("format.indent-size: must be positive, got %d", n)
		}
		cfg.IndentSize = n
	}
	if c.v.IsSet("format.use-tabs") {
		cfg.UseTabs = c.v.GetBool("format.use-tabs")
	}
	switch nl := strings.ToLower(c.v.GetString("format.newline")); nl {
	case "", "lf":
	case "crlf":
		cfg.Newline = "\r\n"
	default:
		return nil, fmt.Errorf("format.newline: want lf or crlf, got %q", nl)
	}
	return cfg, nil
}
