package alloc

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/memkit/internal/format"
)

// Config describes the allocator layout: the fixed pool classes, the
// arena, and the OS delegation threshold. Different layouts trade pool hit
// rate against internal fragmentation; DefaultConfig is the classic shape.
type Config struct {
	// Classes are the pool block sizes in ascending order. Each must be a
	// positive multiple of 8.
	Classes []int `yaml:"classes"`

	// ClassCap is the slot count of every pool.
	ClassCap int `yaml:"class_capacity"`

	// ArenaSize is the byte size of the coalescing arena region.
	ArenaSize int `yaml:"arena_size"`

	// OSThreshold is the largest request the arena accepts; anything
	// greater is delegated to the OS directly.
	OSThreshold int `yaml:"os_threshold"`
}

// Predefined configurations.
var (
	// DefaultConfig is the classic layout: six pools of ten blocks, a
	// 4 KiB arena, and a 10 MiB OS threshold.
	DefaultConfig = Config{
		Classes:     []int{16, 32, 64, 128, 256, 512},
		ClassCap:    10,
		ArenaSize:   4096,
		OSThreshold: 10 << 20,
	}

	// ConfigFineGrained doubles the class count, deepens every pool to 32
	// blocks, and quadruples the arena, for workloads dominated by small,
	// varied requests.
	ConfigFineGrained = Config{
		Classes:     []int{8, 16, 24, 32, 48, 64, 96, 128, 192, 256, 384, 512},
		ClassCap:    32,
		ArenaSize:   16384,
		OSThreshold: 10 << 20,
	}
)

// Load reads a YAML config file. Fields absent from the file keep their
// DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig
	cfg.Classes = slices.Clone(DefaultConfig.Classes)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// maxClass returns the largest pool block size, the pool/arena boundary.
func (c *Config) maxClass() int {
	return c.Classes[len(c.Classes)-1]
}

func (c *Config) validate() error {
	if len(c.Classes) == 0 {
		return fmt.Errorf("%w: no size classes", ErrBadConfig)
	}
	prev := 0
	for _, class := range c.Classes {
		if class <= 0 || class%format.CellAlignment != 0 {
			return fmt.Errorf("%w: class %d is not a positive multiple of %d",
				ErrBadConfig, class, format.CellAlignment)
		}
		if class <= prev {
			return fmt.Errorf("%w: classes must be strictly ascending", ErrBadConfig)
		}
		prev = class
	}
	if c.ClassCap <= 0 {
		return fmt.Errorf("%w: class capacity must be positive", ErrBadConfig)
	}
	if c.ArenaSize < format.BlockHeaderSize+format.CellAlignment {
		return fmt.Errorf("%w: arena size %d cannot hold a single block",
			ErrBadConfig, c.ArenaSize)
	}
	if c.OSThreshold < c.maxClass() {
		return fmt.Errorf("%w: os threshold %d below largest class %d",
			ErrBadConfig, c.OSThreshold, c.maxClass())
	}
	return nil
}
