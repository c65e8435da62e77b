// Copyright © 2024 The ELPS authors

package lint

import (
	"fmt"
	"strings"
)

// Options holds named analyzer options.
type Options map[string]any

// Bool returns option name as a bool. Strings such as "true" are accepted.
func (o Options) Bool(name string) bool {
	switch v := o[name].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true") || v == "1"
	}
	return false
}

// String returns option name as a string.
func (o Options) String(name string) string {
	switch v := o[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Config selects the analyzers of a run and overrides their severities and
// options.
type Config struct {
	// Enable lists analyzers to run. An empty list runs every analyzer
	// that is not disabled by default.
	Enable []string

	// Disable lists analyzers that never run.
	Disable []string

	// Severity overrides default severities by analyzer name.
	Severity map[string]Severity

	// Options overrides option values by analyzer name.
	Options map[string]Options
}

// Enabled returns the analyzers of all that the configuration runs, in
// order. A nil Config runs the analyzers that are not disabled by default.
func (c *Config) Enabled(all []*Analyzer) []*Analyzer {
	var enable, disable map[string]bool
	if c != nil {
		enable = nameSet(c.Enable)
		disable = nameSet(c.Disable)
	}
	var out []*Analyzer
	for _, a := range all {
		switch {
		case disable[a.Name]:
		case len(enable) > 0:
			if enable[a.Name] {
				out = append(out, a)
			}
		case !a.Disabled:
			out = append(out, a)
		}
	}
	return out
}

// Validate reports configured analyzer names that are not in all.
func (c *Config) Validate(all []*Analyzer) error {
	if c == nil {
		return nil
	}
	known := make(map[string]bool, len(all))
	for _, a := range all {
		known[a.Name] = true
	}
	var unknown []string
	check := func(name string) {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	for _, n := range c.Enable {
		check(n)
	}
	for _, n := range c.Disable {
		check(n)
	}
	for n := range c.Severity {
		check(n)
	}
	for n := range c.Options {
		check(n)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown analyzers: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (c *Config) options(a *Analyzer) Options {
	out := make(Options, len(a.Options))
	for k, v := range a.Options {
		out[k] = v
	}
	if c != nil {
		for k, v := range c.Options[a.Name] {
			out[k] = v
		}
	}
	return out
}

func (c *Config) severity(a *Analyzer) Severity {
	if c != nil {
		if s, ok := c.Severity[a.Name]; ok && s != severityUnset {
			return s
		}
	}
	return a.DefaultSeverity()
}

func nameSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[strings.TrimSpace(n)] = true
	}
	return m
}
