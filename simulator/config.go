package main

import (
	"flag"
	"fmt"
	"time"
)

// Config holds parameters for the simulated dispatch module.
type Config struct {
	Level   float64
	Ramp    bool
	Fail    string
	Latency time.Duration
	Verbose bool
}

func parseFlags() Config {
	var cfg Config
	flag.Float64Var(&cfg.Level, "level", 1, "activity level for every series")
	flag.BoolVar(&cfg.Ramp, "ramp", false, "ramp activity from zero to level over the period")
	flag.StringVar(&cfg.Fail, "fail", "", "answer dispatch requests with this error")
	flag.DurationVar(&cfg.Latency, "latency", 0, "artificial delay before answering")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "log requests to stderr")
	flag.Parse()
	return cfg
}

// Validate checks the flag combination is usable.
func (c *Config) Validate() error {
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative")
	}
	return nil
}
