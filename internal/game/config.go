package game

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gen-ca/internal/core"
	"gen-ca/internal/life"
)

// Edge names accepted by Config.Edge.
const (
	EdgeLoop   = "loop"
	EdgeDeath  = "death"
	EdgeTomb   = "tomb"
	EdgeUndead = "undead"
)

// Config controls the controller's initial state.
type Config struct {
	Width  int
	Height int

	// Rule is a rule string or preset name.
	Rule string
	// Edge is one of loop, death, tomb or undead.
	Edge string
	// Speed indexes the tick interval table.
	Speed    int
	AutoStop bool

	// Seed and Density drive Seeder.Randomize.
	Seed    int64
	Density float64

	// Clock drives the ticker. Nil means real time.
	Clock core.Clock
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    70,
		Height:   70,
		Rule:     "B3/S23",
		Edge:     EdgeLoop,
		Speed:    1,
		AutoStop: true,
		Seed:     42,
		Density:  0.5,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Invalid values are ignored.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply returns a copy of c with the keys in cfg overriding its fields.
// Invalid values are ignored.
func (c Config) Apply(cfg map[string]string) Config {
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && strings.TrimSpace(v) != "" {
		c.Rule = v
	}
	if v, ok := cfg["edge"]; ok {
		if _, _, err := edgePolicy(v); err == nil {
			c.Edge = normalize(v)
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Speed = parsed
		}
	}
	if v, ok := cfg["autostop"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.AutoStop = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

// Settings collects repeated -set key=value flags for Config.Apply.
type Settings map[string]string

func (s Settings) String() string {
	parts := make([]string, 0, len(s))
	for _, k := range slices.Sorted(maps.Keys(s)) {
		parts = append(parts, k+"="+s[k])
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value. Keys are lowercased; a later value for the same
// key wins.
func (s Settings) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("setting %q: want key=value", v)
	}
	s[normalize(key)] = strings.TrimSpace(value)
	return nil
}

// edgePolicy maps an edge name to the grid policy and the cell read beyond
// the border.
func edgePolicy(name string) (core.Edge, life.Cell, error) {
	switch normalize(name) {
	case EdgeLoop:
		return core.EdgeLoop, life.Death, nil
	case EdgeDeath:
		return core.EdgeClamp, life.Death, nil
	case EdgeTomb:
		return core.EdgeClamp, life.Tomb, nil
	case EdgeUndead:
		return core.EdgeClamp, life.Undead, nil
	}
	return 0, 0, ErrUnknownEdge
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
