// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdwatch CLI.
// See docs/ARCHITECTURE § CLI Surface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdwatch/internal/app"
	"github.com/pdiddy/mdwatch/internal/history"
	"github.com/pdiddy/mdwatch/internal/probe"
	"github.com/pdiddy/mdwatch/internal/render"
	"github.com/pdiddy/mdwatch/internal/status"
	"github.com/pdiddy/mdwatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command: watch a source file and rebuild on save.
var rootCmd = &cobra.Command{
	Use:   "mdwatch [source] [output-name]",
	Short: "Watch a markdown file and rebuild it with pandoc on every save",
	Long: `mdwatch watches one markdown source file and converts it with pandoc on
every save: to PDF through a LaTeX engine, or to a standalone styled HTML
document when no engine is installed. A template and a bibliography are
picked up automatically while the configured files exist.

Run it against a file and leave it in a terminal; interrupt it to stop.
Use --once for a single conversion.`,
	Args:         cobra.MaximumNArgs(2),
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdwatch.yaml or ~/.config/mdwatch/config.yaml)")

	addRootFlags(rootCmd)
}

// addRootFlags registers the per-run flags. Split out so tests can build a
// fresh command without sharing rootCmd's flag state.
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("once", "o", false, "convert once and exit instead of watching")
	cmd.Flags().BoolP("watch", "w", false, "watch for changes (the default)")
	cmd.Flags().String("template", "", "pandoc template, used while the file exists")
	cmd.Flags().String("bibliography", "", "bibliography file, used while the file exists")
	cmd.Flags().Bool("history", false, "record each build in the history database")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdwatch"))
		}
	}

	defaults := types.DefaultRenderOptions()
	viper.SetDefault("render.language", defaults.Language)
	viper.SetDefault("render.font_size", defaults.FontSize)
	viper.SetDefault("render.margin", defaults.Margin)
	viper.SetDefault("render.highlight_style", defaults.HighlightStyle)
	viper.SetDefault("render.stylesheet", defaults.Stylesheet)
	viper.SetDefault("history.path", history.DefaultPath)

	viper.SetEnvPrefix("MDWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the immutable run configuration from positional
// arguments, flags, and the config file, in that precedence order.
func buildConfig(cmd *cobra.Command, args []string) types.Config {
	cfg := types.Config{
		SourcePath: types.DefaultSource,
		OutputName: types.DefaultOutput,
		Watch:      true,
		Render: types.RenderOptions{
			Language:       viper.GetString("render.language"),
			FontSize:       viper.GetString("render.font_size"),
			Margin:         viper.GetString("render.margin"),
			HighlightStyle: viper.GetString("render.highlight_style"),
			Stylesheet:     viper.GetString("render.stylesheet"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
	}

	if len(args) > 0 {
		cfg.SourcePath = args[0]
	}
	if len(args) > 1 {
		cfg.OutputName = args[1]
	}

	cfg.TemplatePath = flagOrConfig(cmd, "template", "template_path")
	cfg.BibliographyPath = flagOrConfig(cmd, "bibliography", "bibliography_path")

	if once, _ := cmd.Flags().GetBool("once"); once {
		cfg.Watch = false
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		cfg.Watch = true
	}
	if recorded, _ := cmd.Flags().GetBool("history"); recorded {
		cfg.History.Enabled = true
	}

	return cfg
}

// flagOrConfig prefers an explicitly set flag over the config file value.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := buildConfig(cmd, args)
	rep := status.New(os.Stderr)

	deps := probe.Run()
	if err := probe.Check(deps, cfg.Watch); err != nil {
		return err
	}
	if !deps.EnginePresent() {
		rep.Warnf("no LaTeX engine found (pdflatex or xelatex): falling back to HTML output")
	}

	var hist *history.Store
	if cfg.History.Enabled {
		var err error
		hist, err = history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, deps, render.NewRunner(), rep, hist)
	if !cfg.Watch {
		return a.Once(ctx)
	}
	return a.Watch(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
