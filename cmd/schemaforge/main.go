// Package main provides the CLI entry point for schemaforge, a tool
// that extracts a content-addressed intermediate representation from
// annotated Go type declarations.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/flizzeri/schemaforge/log"
	"github.com/flizzeri/schemaforge/pipeline"
	"github.com/flizzeri/schemaforge/primitive"
	"github.com/flizzeri/schemaforge/profile"
	"github.com/flizzeri/schemaforge/version"
)

func main() {
	pipelineCfg := pipeline.NewConfig()
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	var format string

	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "schemaforge [flags]",
		Short: "Extract a content-addressed IR from annotated Go declarations",
		Long: `schemaforge walks entity-tagged Go type declarations, resolves their
structural shape, validates docblock annotations against it, and lowers
the result into a deterministic, content-hashed intermediate
representation suitable for downstream schema tooling.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Printf("schemaforge %s (%s, %s/%s)\n", version.Version, version.Revision, version.GoOS, version.GoArch)

				return nil
			}

			return run(pipelineCfg, logCfg, profileCfg, format)
		},
	}

	pipelineCfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	profileCfg.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&format, "format", "text", "diagnostic output format: text or json")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version information and exit")

	for _, registerCompletions := range []func(*cobra.Command) error{
		pipelineCfg.RegisterCompletions,
		logCfg.RegisterCompletions,
		profileCfg.RegisterCompletions,
	} {
		if err := registerCompletions(rootCmd); err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(pipelineCfg *pipeline.Config, logCfg *log.Config, profileCfg *profile.Config, format string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	logger := slog.New(handler)

	profiler := profileCfg.NewProfiler()
	if err := profiler.Start(); err != nil {
		return fmt.Errorf("starting profiler: %w", err)
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			logger.Error("stopping profiler", "error", err)
		}
	}()

	opts := pipelineCfg.NewExtractOptions()

	bar := progressbar.Default(-1, "extracting")

	result := pipeline.Extract(context.Background(), opts,
		pipeline.WithProgressHook(func(done, total int) {
			if bar.GetMax() != total {
				bar.ChangeMax(total)
			}

			_ = bar.Set(done)
		}),
	)

	_ = bar.Finish()

	diags := result.Diagnostics()

	if format == "json" {
		if err := renderJSON(os.Stdout, diags); err != nil {
			return err
		}
	} else {
		renderText(os.Stdout, diags, isatty.IsTerminal(os.Stdout.Fd()))
	}

	if result.IsErr() {
		return fmt.Errorf("extraction failed with %d diagnostic(s)", len(diags))
	}

	return nil
}

func renderJSON(w io.Writer, diags []primitive.Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(diags)
}

// renderText renders diags as one line per diagnostic, grouped implicitly
// by the order the pipeline produced them in. Colors are applied only when
// colorEnabled is true, so callers can disable them for non-TTY output.
func renderText(w io.Writer, diags []primitive.Diagnostic, colorEnabled bool) {
	errorColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	infoColor := color.New(color.FgCyan)

	for _, d := range diags {
		var c *color.Color

		switch d.Category {
		case primitive.CategoryError:
			c = errorColor
		case primitive.CategoryWarning:
			c = warnColor
		default:
			c = infoColor
		}

		line := fmt.Sprintf("[%s] %s: %s", d.Category, d.Code, d.Message)
		if d.Location != nil {
			line += fmt.Sprintf(" (%s:%d)", d.Location.File, d.Location.StartLine)
		}

		if colorEnabled {
			c.Fprintln(w, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
}
