// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fillmore-labs.com/nullishguard/internal/config"
	"fillmore-labs.com/nullishguard/internal/diagfmt"
	"fillmore-labs.com/nullishguard/internal/lint"
	"fillmore-labs.com/nullishguard/internal/logging"
	"fillmore-labs.com/nullishguard/internal/run"
)

// Exit codes.
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitError       = 2
)

// errDiagnostics signals that diagnostics remain after the run.
var errDiagnostics = errors.New("diagnostics reported")

// errUsage is returned for invalid flag values.
var errUsage = errors.New("invalid usage")

// Execute runs the command line interface with args and returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	switch {
	case err == nil:
		return exitOK

	case errors.Is(err, errDiagnostics):
		return exitDiagnostics

	default:
		fmt.Fprintln(stderr, "nullishguard:", err)

		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	var cfgFile string

	cmd := &cobra.Command{
		Use:   "nullishguard [paths...]",
		Short: "Report optional chains and nullish coalescing on values that are never nullish",
		Long: `nullishguard checks TypeScript sources for optional chains (?.) and nullish
coalescing (??) whose left operand can never be null or undefined, and removes
them with --fix. Directories are searched recursively, skipping node_modules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}

			if err := readConfig(v, cfgFile); err != nil {
				return err
			}

			return execute(cmd.Context(), v, args, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is .nullishguard.yaml in the current or home directory)")
	flags.Bool("fix", false, "apply suggested fixes")
	flags.String("format", "pretty", "output format: pretty or json")
	flags.String("color", "auto", "colorize output: auto, on or off")
	flags.String("tsconfig", "", "path of tsconfig.json, discovered per directory when empty")
	flags.Bool("generated", false, "check generated files")
	flags.Bool("optional-chain", true, "report unnecessary optional chains")
	flags.Bool("nullish-coalesce", true, "report unnecessary nullish coalescing")
	flags.Int("max-passes", lint.DefaultMaxPasses, "maximum number of fix passes per file")
	flags.Int("concurrency", 0, "number of files processed in parallel (default GOMAXPROCS)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-file", "", "write JSON logs to this file")

	return cmd
}

// readConfig reads the optional configuration file and the NULLISHGUARD_ environment.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("config file %q: %w", cfgFile, err)
		}

		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".nullishguard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("NULLISHGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

func execute(ctx context.Context, v *viper.Viper, args []string, stdout, stderr io.Writer) error {
	colored, err := useColor(v.GetString("color"))
	if err != nil {
		return err
	}

	format := v.GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("%w: unknown format %q", errUsage, format)
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:      v.GetString("log-level"),
		Color:      colored,
		File:       v.GetString("log-file"),
		MaxSizeMB:  10,
		MaxBackups: 3,
	}, zapcore.AddSync(stderr))
	if err != nil {
		return err
	}

	defer func() { _ = closeLog() }()

	l, err := newLinter(v)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	fix := v.GetBool("fix")
	logger.Debug("Starting run", zap.Strings("paths", paths), zap.Bool("fix", fix), zap.String("tsconfig", l.TSConfig))

	results, err := l.Run(ctx, paths, fix)
	if err != nil {
		logger.Error("Run failed", zap.Error(err))

		return err
	}

	problems := 0

	for _, r := range results {
		problems += len(r.Diagnostics)

		if r.Changed {
			logger.Info("Fixed file", zap.String("file", r.Path), zap.Int("passes", r.Passes), zap.Int("applied", r.Applied))
		}

		for _, s := range r.Skipped {
			logger.Debug("Skipped fix", zap.String("file", r.Path), zap.String("fix", s.Message), zap.String("reason", s.Reason))
		}
	}

	logger.Debug("Run finished", zap.Int("files", len(results)), zap.Int("diagnostics", problems))

	base, err := os.Getwd()
	if err != nil {
		// paths are shown as given
		logger.Warn("Can't determine working directory", zap.Error(err))

		base = ""
	}

	switch format {
	case "json":
		err = diagfmt.JSON(stdout, results, base)

	default:
		err = diagfmt.Pretty(stdout, results, diagfmt.PrettyOpts{Color: colored, Base: base, Summary: true})
	}

	if err != nil {
		return err
	}

	if problems > 0 {
		return errDiagnostics
	}

	return nil
}

func newLinter(v *viper.Viper) (*lint.Linter, error) {
	opts := run.DefaultOptions()
	opts.Checks.Set(config.OptionalChainCheck, v.GetBool("optional-chain"))
	opts.Checks.Set(config.NullishCoalesceCheck, v.GetBool("nullish-coalesce"))
	opts.Behavior.Set(config.IncludeGenerated, v.GetBool("generated"))

	l := lint.New(opts)
	l.MaxPasses = v.GetInt("max-passes")
	l.Concurrency = v.GetInt("concurrency")

	if tsconfig := v.GetString("tsconfig"); tsconfig != "" {
		path, err := homedir.Expand(tsconfig)
		if err != nil {
			return nil, fmt.Errorf("tsconfig %q: %w", tsconfig, err)
		}

		l.TSConfig = path
	}

	return l, nil
}

func useColor(mode string) (bool, error) {
	switch strings.ToLower(mode) {
	case "auto", "":
		return !color.NoColor, nil

	case "on", "always", "true":
		return true, nil

	case "off", "never", "false":
		return false, nil

	default:
		return false, fmt.Errorf("%w: unknown color mode %q", errUsage, mode)
	}
}
