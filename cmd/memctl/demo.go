package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memkit/alloc"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replay an allocation scenario across all three tiers",
		Long: `The demo command initializes an allocator, services a mix of small,
medium, and oversized requests, exhausts one size class to show the
arena rescue path, prints both diagnostic dumps, releases everything,
and tears the allocator down.

Example:
  memctl demo
  memctl demo --config layout.yaml --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a := alloc.New(cfg)
	if err := a.Init(); err != nil {
		return err
	}

	// The classic driver: an int, a double, an array of ten ints.
	pi, err := a.Alloc(4)
	if err != nil {
		return err
	}
	pd, err := a.Alloc(8)
	if err != nil {
		return err
	}
	pa, err := a.Alloc(40)
	if err != nil {
		return err
	}
	logger.Debug("pool allocations", "int", len(pi), "double", len(pd), "array", len(pa))

	// Exhaust one class: every request that finds the pool full is rescued
	// by the arena. With the default layout the int and the double already
	// hold two 16-byte slots, so the last three requests fall through.
	var small [][]byte
	for range cfg.ClassCap + 1 {
		p, err := a.Alloc(16)
		if err != nil {
			return err
		}
		small = append(small, p)
	}
	logger.Debug("class exhaustion", "requests", len(small),
		"fallbacks", a.Stats().PoolFallbacks)

	// A medium request carved from the arena and an oversized one
	// delegated to the OS.
	mid, err := a.Alloc(2048)
	if err != nil {
		return err
	}
	big, err := a.Alloc(15 << 20)
	if err != nil {
		return err
	}
	logger.Debug("large allocations", "arena", len(mid), "os", len(big))

	a.DumpStats(os.Stdout)
	a.DumpBlocks(os.Stdout)

	a.Free(pa)
	a.Free(pd)
	a.Free(pi)
	for _, p := range small {
		a.Free(p)
	}
	a.Free(mid)
	a.Free(big)

	st := a.Stats()
	a.Destroy()

	p := message.NewPrinter(language.English)
	p.Printf("Serviced %d allocations (%d bytes): %d from pools, %d from the arena, %d from the OS\n",
		st.AllocCalls, st.BytesHandedOut, st.PoolHits, st.ArenaHits, st.OSReservations)
	return nil
}
