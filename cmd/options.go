// Copyright © 2024 The ELPS authors

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luthersystems/fixkit/diagnostic"
	"github.com/luthersystems/fixkit/lint"
)

// Option configures an exported command factory (LintCommand, FixCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	v         *viper.Viper
	analyzers []*lint.Analyzer
}

// WithViper reads settings from v instead of the global viper instance.
func WithViper(v *viper.Viper) Option {
	return func(c *cmdConfig) { c.v = v }
}

// WithAnalyzers adds analyzers to the built-in catalog, so that embedders
// can run their own rules through the same commands.
func WithAnalyzers(analyzers ...*lint.Analyzer) Option {
	return func(c *cmdConfig) { c.analyzers = append(c.analyzers, analyzers...) }
}

func newCmdConfig(opts []Option) *cmdConfig {
	c := &cmdConfig{analyzers: lint.DefaultAnalyzers()}
	for _, opt := range opts {
		opt(c)
	}
	if c.v == nil {
		c.v = viper.GetViper()
	}
	return c
}

func (c *cmdConfig) logger(cmd *cobra.Command) *slog.Logger {
	return newLogger(cmd.ErrOrStderr(), c.v.GetBool("verbose"))
}

func (c *cmdConfig) colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(c.v.GetString("color"))
}

func (c *cmdConfig) lookup(name string) (*lint.Analyzer, bool) {
	for _, a := range c.analyzers {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
