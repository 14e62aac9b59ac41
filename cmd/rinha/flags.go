package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"rinha/interpreter-go/pkg/driver"
)

var errHelpRequested = errors.New("help requested")

// globalOptions holds flags that override rinha.yml.
type globalOptions struct {
	configPath string
	newline    bool
	color      string
	logLevel   string
	maxDepth   int

	set map[string]bool
}

func parseGlobalFlags(args []string) (*globalOptions, []string, error) {
	opts := &globalOptions{set: make(map[string]bool)}
	fs := flag.NewFlagSet("rinha", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to rinha.yml")
	fs.BoolVar(&opts.newline, "newline", false, "append a newline after every print")
	fs.StringVar(&opts.color, "color", "", "auto, always or never")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "maximum program tree depth")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, errHelpRequested
		}
		return nil, nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	opts.color = strings.ToLower(strings.TrimSpace(opts.color))
	if opts.set["color"] && !driver.ColorMode(opts.color).IsValid() {
		return nil, nil, fmt.Errorf("invalid --color %q (want auto, always or never)", opts.color)
	}
	if opts.set["max-depth"] && opts.maxDepth <= 0 {
		return nil, nil, fmt.Errorf("invalid --max-depth %d (must be positive)", opts.maxDepth)
	}
	if opts.set["log-level"] {
		if _, err := driver.ParseLogLevel(opts.logLevel); err != nil {
			return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	return opts, fs.Args(), nil
}

// resolveConfig loads --config or the nearest rinha.yml above start, then
// applies flag overrides.
func (o *globalOptions) resolveConfig(start string) (*driver.Config, error) {
	var cfg *driver.Config
	var err error
	if o.configPath != "" {
		cfg, err = driver.LoadConfig(o.configPath)
	} else {
		cfg, err = driver.DiscoverConfig(start)
	}
	if err != nil {
		return nil, err
	}
	if o.set["newline"] {
		cfg.PrintNewline = o.newline
	}
	if o.set["color"] {
		cfg.Color = driver.ColorMode(o.color)
	}
	if o.set["log-level"] {
		level, _ := driver.ParseLogLevel(o.logLevel)
		cfg.LogLevel = level
	}
	if o.set["max-depth"] {
		cfg.MaxDepth = o.maxDepth
	}
	return cfg, nil
}
