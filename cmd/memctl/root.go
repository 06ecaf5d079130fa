package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

// logger is the global logger. It discards everything until --verbose
// promotes it to a stderr text handler.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect the tiered memory allocator",
	Long: `memctl drives the memkit allocator: segregated fixed-size pools for
small requests, a coalescing arena for medium requests, and direct OS
reservations for large ones. It replays allocation scenarios and prints
the allocator's diagnostic dumps.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "YAML allocator config (defaults to the built-in layout)")
}

// loadConfig resolves the allocator configuration from --config.
func loadConfig() (*alloc.Config, error) {
	if configPath == "" {
		cfg := alloc.DefaultConfig
		return &cfg, nil
	}
	return alloc.Load(configPath)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
