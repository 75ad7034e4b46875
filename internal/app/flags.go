package app

import (
	"flag"

	"gen-ca/internal/game"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Game game.Config
	// Settings holds -set key=value overrides applied on top of Game.
	Settings game.Settings

	Scale    int
	TPS      int
	HUDWidth int
	// Pattern is loaded at startup: fixed-width text when Width is set,
	// packed text otherwise.
	Pattern string
	Width   int
	Verbose bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Game: game.DefaultConfig(), Settings: game.Settings{}, Scale: 8, TPS: 60, HUDWidth: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Game.Width, "w", c.Game.Width, "grid columns")
	fs.IntVar(&c.Game.Height, "h", c.Game.Height, "grid rows")
	fs.StringVar(&c.Game.Rule, "rule", c.Game.Rule, "rule string or preset name")
	fs.StringVar(&c.Game.Edge, "edge", c.Game.Edge, "edge mode: loop, death, tomb or undead")
	fs.IntVar(&c.Game.Speed, "speed", c.Game.Speed, "speed index (0 slowest, 3 fastest)")
	fs.BoolVar(&c.Game.AutoStop, "autostop", c.Game.AutoStop, "stop when a step changes nothing")
	fs.Int64Var(&c.Game.Seed, "seed", c.Game.Seed, "seed for random soups")
	fs.Float64Var(&c.Game.Density, "density", c.Game.Density, "live share of random soups")
	fs.Var(c.Settings, "set", "game setting as key=value (w, h, rule, edge, speed, autostop, seed, density); repeatable")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width, 0 hides it")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern to load at startup")
	fs.IntVar(&c.Width, "bits", c.Width, "fixed-width bits per cell for -pattern; 0 reads packed text")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "debug logging")
}

// GameConfig returns the game configuration with -set overrides applied.
func (c *Config) GameConfig() game.Config {
	return c.Game.Apply(c.Settings)
}

// LoadPattern loads the configured startup pattern into ctrl, if any.
func (c *Config) LoadPattern(ctrl *game.Controller) error {
	switch {
	case c.Pattern == "":
		return nil
	case c.Width > 0:
		return ctrl.Load(c.Pattern, c.Width)
	default:
		return ctrl.Import(c.Pattern)
	}
}
