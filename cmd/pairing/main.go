package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"svw.info/pairing/internal/assets"
	"svw.info/pairing/internal/config"
	"svw.info/pairing/internal/infrastructure/storage"
	"svw.info/pairing/internal/usecase"
)

var (
	// Global flags
	configPath string
	resultsDir string
	assetsDir  string
	levelStr   string
	seed       int64

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pairing",
	Short: "Image pairing experiment",
	Long: `pairing shows a participant target images and a shuffled row of images to
match against them, in two parts presented in random order, and writes the
pairing to results/<code>_<YYYY-MM-DD_HH-MM-SS>.txt.

Run "pairing serve" for the browser version or "pairing play" in a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("results-dir") {
			cfg.ResultsDir = resultsDir
		}
		if flags.Changed("assets-dir") {
			cfg.AssetsDir = assetsDir
		}
		if flags.Changed("log-level") {
			cfg.LogLevel = levelStr
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		return cfg.Validate()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&resultsDir, "results-dir", "results", "directory result files are written to")
	pf.StringVar(&assetsDir, "assets-dir", "", "image directory (default: images next to the binary or in the working directory)")
	pf.StringVar(&levelStr, "log-level", "info", "debug|info|warn|error")
	pf.Int64Var(&seed, "seed", 0, "base random seed; session n uses seed+n (0 = random)")

	rootCmd.AddCommand(serveCmd, playCmd, resultsCmd)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// newService wires storage and the phase sets into a session service and
// returns it with the resolved image directory.
func newService(logger *slog.Logger) (*usecase.Service, string, error) {
	root, err := assets.ResolveRoot(cfg.AssetsDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve assets: %w", err)
	}
	sets := assets.DefaultSets()
	if missing := assets.Verify(root, sets); len(missing) > 0 {
		logger.Warn("images missing", "dir", root, "count", len(missing), "first", missing[0])
	}
	uc := usecase.NewService(storage.NewFS(cfg.ResultsDir), sets, logger)
	uc.Seed = cfg.Seed
	return uc, root, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
