package config

import (
	"flag"
	"fmt"
	"strings"
)

// DefaultPath is the config file read when no -config flag is given.
const DefaultPath = "stickfigure.yaml"

// Parse loads the file named by -config in args, applies STICK_*
// environment overrides, then parses args on fs with the config flags bound,
// so precedence is flags > environment > file > defaults. Register any
// command-specific flags on fs before calling Parse.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	path := configPath(args)
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	fs.String("config", path, "config file path")
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath finds -config (or --config) without parsing the other flags.
func configPath(args []string) string {
	for i := 0; i < len(args); i++ {
		a := strings.TrimPrefix(args[i], "-")
		a = strings.TrimPrefix(a, "-")
		if a == "config" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "config="); ok {
			return v
		}
		if args[i] == "--" {
			break
		}
	}
	return DefaultPath
}
