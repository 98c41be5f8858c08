// Package settings holds the runtime options recognized by the command
// processors. Options can be toggled at runtime by commands and are seeded
// from the environment on startup.
package settings

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings is the mutable option set shared by a processor and its commands.
//
// Annotate is the annotation verbosity: markers for editor frontends are
// emitted only when it exceeds 2.
type Settings struct {
	Annotate    int  `env:"BYEBUG_ANNOTATE" envDefault:"0"`
	Basename    bool `env:"BYEBUG_BASENAME" envDefault:"false"`
	TracingPlus bool `env:"BYEBUG_TRACING_PLUS" envDefault:"false"`
	AutoList    int  `env:"BYEBUG_AUTOLIST" envDefault:"0"`
	Testing     bool `env:"BYEBUG_TESTING" envDefault:"false"`
}

// New returns settings with all options at their zero defaults.
func New() *Settings {
	return &Settings{}
}

// FromEnv loads settings from BYEBUG_* environment variables.
func FromEnv() (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parse settings from env: %w", err)
	}
	return s, nil
}
