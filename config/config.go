package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Viewer configures cmd/viewer. Environment variables set the defaults,
// command-line flags override them.
type Viewer struct {
	Character   string        `env:"CHAR2D_CHARACTER" envDefault:"knight.character.yaml"`
	AssetsDir   string        `env:"CHAR2D_ASSETS_DIR" envDefault:"assets"`
	Animation   string        `env:"CHAR2D_ANIMATION" envDefault:"default"`
	Script      string        `env:"CHAR2D_SCRIPT"`
	FramePeriod time.Duration `env:"CHAR2D_FRAME_PERIOD" envDefault:"100ms"`
	TPS         int           `env:"CHAR2D_TPS" envDefault:"60"`
	Scale       float64       `env:"CHAR2D_SCALE" envDefault:"4"`
	LogLevel    string        `env:"CHAR2D_LOG_LEVEL" envDefault:"info"`
}

// Load reads the environment, then parses args against fs.
func Load(fs *flag.FlagSet, args []string) (Viewer, error) {
	cfg, err := env.ParseAs[Viewer]()
	if err != nil {
		return Viewer{}, fmt.Errorf("config: env: %w", err)
	}

	fs.StringVar(&cfg.Character, "character", cfg.Character, "character descriptor (*.character.yaml)")
	fs.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "directory sprite-sheet paths are relative to")
	fs.StringVar(&cfg.Animation, "anim", cfg.Animation, "initial animation")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "director script driving the animation (optional)")
	fs.DurationVar(&cfg.FramePeriod, "period", cfg.FramePeriod, "time each animation frame stays up")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "pixel zoom")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return Viewer{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Viewer{}, err
	}
	return cfg, nil
}

func (v Viewer) Validate() error {
	if v.Character == "" {
		return fmt.Errorf("config: character is required")
	}
	if v.FramePeriod <= 0 {
		return fmt.Errorf("config: frame period must be positive, got %s", v.FramePeriod)
	}
	if v.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", v.TPS)
	}
	if v.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %g", v.Scale)
	}
	return nil
}

// TickDelta is the simulated time of one tick.
func (v Viewer) TickDelta() time.Duration {
	return time.Second / time.Duration(v.TPS)
}
