// Copyright © 2024 The ELPS authors

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fixkit",
	Short: "fixkit: code analysis rules and fixes over host syntax trees",
	Long: `fixkit recognizes code shapes in the syntax tree of a C#-like source
file, reports them as diagnostics and rewrites them with code fixes.

Input files are host documents: the syntax tree and the semantic facts of
one source file, written by a compiler host as JSON (.json) or msgpack
(.msgpack, .mpk).

Getting started:
  fixkit lint Program.json           Report diagnostics
  fixkit fix -w Program.json         Apply every fix in place
  fixkit fix -d Program.json         Show what the fixes would change
  fixkit refactor --name wrap-in-try-catch --span 120:180 Program.json
  fixkit fmt -l ./...                List documents whose layout differs
  fixkit rules                       List rules and refactorings
  fixkit rules add-braces            Show the documentation of a rule

Configuration is read from $HOME/.fixkit.yaml or --config, and from
FIXKIT_* environment variables. See "fixkit rules --guide".`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// exitError ends the process with code. A nil err prints nothing, which is
// how commands report findings they already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// usageError is a bad invocation.
func usageError(format string, a ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, a...)}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(run(rootCmd, os.Stderr))
}

func run(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "fixkit:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(stderr, "fixkit:", err)
	return 2
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fixkit.yaml)")
	rootCmd.PersistentFlags().String("color", "auto",
		`Control colored output: "auto", "always", or "never".`)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr.")
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(LintCommand(), FixCommand(), RefactorCommand(), FmtCommand(), RulesCommand())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := loadConfig(viper.GetViper(), cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "fixkit:", err)
		os.Exit(2)
	}
}

// loadConfig points v at the config file and the FIXKIT_ environment. A
// missing default config file is not an error.
func loadConfig(v *viper.Viper, file string) error {
	v.SetEnvPrefix("FIXKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(".fixkit")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger returns the logger of a command run. Debug output needs
// --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
