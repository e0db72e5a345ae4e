/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/google/arith/core/expr"
	"github.com/google/arith/core/server"
	"github.com/google/arith/core/suite"
	"github.com/google/arith/core/views"
)

// appFlags holds the global command line flags.
type appFlags struct {
	LogLevel    string
	Parallelism int
	Addr        string
}

func (flags *appFlags) AsCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Value:       "info",
			Usage:       "Log level (debug, info, warn, error).",
			EnvVars:     []string{"ARITH_LOG_LEVEL"},
			Destination: &flags.LogLevel,
		},
		&cli.IntFlag{
			Name:        "parallelism",
			Value:       0,
			Usage:       "Number of suite cases evaluated at once; 0 means GOMAXPROCS.",
			EnvVars:     []string{"ARITH_PARALLELISM"},
			Destination: &flags.Parallelism,
		},
	}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().Timestamp().Str("service", "arith").Logger().
		Level(lvl)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	var flags appFlags
	var logger zerolog.Logger

	suiteOptions := func() suite.Options {
		opts := suite.DefaultOptions()
		if flags.Parallelism > 0 {
			opts.Parallelism = flags.Parallelism
		}
		return opts
	}

	return &cli.App{
		Name:      "arith",
		Usage:     "Evaluate arithmetic expressions.",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     (&flags).AsCliFlags(),
		Before: func(c *cli.Context) error {
			logger = newLogger(stderr, flags.LogLevel)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "eval",
				Usage:     "Evaluate each argument and print its value.",
				ArgsUsage: "EXPR...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("eval: no expression given", 2)
					}
					failed := 0
					for _, source := range c.Args().Slice() {
						v, err := expr.Evaluate(source)
						if err != nil {
							failed++
							fmt.Fprintf(stdout, "%s = error: %v\n", source, err)
							continue
						}
						fmt.Fprintf(stdout, "%s = %s\n", source, views.FormatValue(v))
					}
					if failed > 0 {
						return cli.Exit(fmt.Sprintf("eval: %d of %d expressions failed", failed, c.NArg()), 1)
					}
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream of an expression.",
				ArgsUsage: "EXPR",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("tokens: expected exactly one expression", 2)
					}
					for _, tok := range expr.Tokenize(c.Args().First()) {
						fmt.Fprintf(stdout, "%4d  %-12s %s\n", tok.Pos, tok.Type, tok.Value)
					}
					return nil
				},
			},
			{
				Name:      "tree",
				Usage:     "Print an expression with every operation parenthesized.",
				ArgsUsage: "EXPR",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("tree: expected exactly one expression", 2)
					}
					compiled, err := expr.Compile(c.Args().First())
					if err != nil {
						return cli.Exit(fmt.Sprintf("tree: %v", err), 1)
					}
					fmt.Fprintln(stdout, compiled.String())
					return nil
				},
			},
			{
				Name:  "samples",
				Usage: "Run the built-in sample expressions against their reference answers.",
				Action: func(c *cli.Context) error {
					return runSuite(c.Context, stdout, logger, suite.Samples(), suiteOptions())
				},
			},
			{
				Name:      "suite",
				Usage:     "Run suite files (.csv, .textproto).",
				ArgsUsage: "FILE...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("suite: no file given", 2)
					}
					var cases []suite.Case
					for _, path := range c.Args().Slice() {
						loaded, err := suite.LoadFile(path)
						if err != nil {
							return cli.Exit(fmt.Sprintf("suite: %v", err), 1)
						}
						logger.Debug().Str("file", path).Int("cases", len(loaded)).Msg("loaded suite")
						cases = append(cases, loaded...)
					}
					return runSuite(c.Context, stdout, logger, cases, suiteOptions())
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the calculator page and JSON API.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "addr",
						Value:       ":8080",
						Usage:       "Listen address.",
						EnvVars:     []string{"ARITH_ADDR"},
						Destination: &flags.Addr,
					},
				},
				Action: func(c *cli.Context) error {
					srv, err := server.NewServer(logger, suite.Samples(), suiteOptions())
					if err != nil {
						return err
					}
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()
					return srv.ListenAndServe(ctx, flags.Addr)
				},
			},
		},
	}
}

// runSuite prints one line per case in the style
// "Expression #i: expr = got = want" and fails if any case fails.
func runSuite(ctx context.Context, w io.Writer, logger zerolog.Logger, cases []suite.Case, opts suite.Options) error {
	report, err := suite.Run(ctx, cases, opts)
	if err != nil {
		return err
	}
	for i, res := range report.Results {
		got := views.FormatValue(res.Got)
		if res.Err != nil {
			got = views.NewErrorInfo(res.Err).Kind
		}
		want := res.Case.WantError
		if want == "" {
			want = views.FormatValue(res.Case.Want)
		}
		status := "ok"
		if !res.Pass {
			status = "FAIL: " + res.Reason
		}
		fmt.Fprintf(w, "Expression #%d: %s = %s = %s  %s\n", i, res.Case.Expression, got, want, status)
	}
	logger.Info().Int("passed", report.Passed()).Int("total", len(report.Results)).Msg("suite finished")
	if err := report.Err(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		// cli.HandleExitCoder has already printed the message and exited.
	}
}
