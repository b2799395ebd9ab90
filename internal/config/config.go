package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hypoth-org/hypoth-ui-sub001/internal/app"
)

// Config captures runtime configuration for the gallery application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envScreen   = "HYPOTH_UI_SCREEN"
	envWidth    = "HYPOTH_UI_WIDTH"
	envHeight   = "HYPOTH_UI_HEIGHT"
	envLatency  = "HYPOTH_UI_LATENCY_MS"
	envDebounce = "HYPOTH_UI_DEBOUNCE_MS"
	envVerbose  = "HYPOTH_UI_VERBOSE"
	envTrace    = "HYPOTH_UI_TRACE"
	envLogFile  = "HYPOTH_UI_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("hypoth-ui-gallery", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	screen := fs.String("screen", envOrDefault(env, envScreen, ""), "initial gallery screen (listbox, select, combobox, tree, pininput)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	latency := fs.Int("latency", envOrInt(env, envLatency, 200), "simulated suggestion source latency in milliseconds")
	debounce := fs.Int("debounce", envOrInt(env, envDebounce, 300), "combobox input debounce in milliseconds")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print behavior callbacks to the footer")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *latency < 0 {
		return Config{}, fmt.Errorf("latency must be >= 0 (got %d)", *latency)
	}
	if *debounce < 0 {
		return Config{}, fmt.Errorf("debounce must be >= 0 (got %d)", *debounce)
	}

	cfg := Config{
		App: app.Config{
			Screen:     *screen,
			Width:      *width,
			Height:     *height,
			LatencyMS:  *latency,
			DebounceMS: *debounce,
			Verbose:    *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"screen":   *screen,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"latency":  strconv.Itoa(*latency),
			"debounce": strconv.Itoa(*debounce),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	switch cfg.App.Screen {
	case "", "listbox", "select", "combobox", "tree", "pininput":
		return nil
	default:
		return fmt.Errorf("unknown screen %q", cfg.App.Screen)
	}
}
