package commands

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/config"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

const APP = "parent-sheets"

// Command is the interface implemented by every CLI command.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *pflag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

type Options struct {
	Debug  bool
	Config *config.Config
}

// command holds the options common to every command that accesses the template spreadsheet.
type command struct {
	workdir     string
	credentials string
	url         string
	store       string
	debug       bool

	flags *pflag.FlagSet
}

var baseCommand = command{
	workdir:     DEFAULT_WORKDIR,
	credentials: DEFAULT_CREDENTIALS,
	url:         "",
	store:       "sheet",
	debug:       false,
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

func (c *command) flagset(name string) *pflag.FlagSet {
	flagset := pflag.NewFlagSet(name, pflag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, settings, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.url, "url", c.url, "Template spreadsheet URL")
	flagset.StringVar(&c.store, "store", c.store, "Where the settings are kept: 'sheet' (template spreadsheet metadata) or 'file' (work directory)")

	c.flags = flagset

	return flagset
}

// configure applies the configuration to every option that was not set on the command line.
func (c *command) configure(options *Options) {
	if options == nil {
		return
	}

	c.debug = options.Debug

	cfg := options.Config
	if cfg == nil {
		return
	}

	set := func(flag string, field *string, value string) {
		if value != "" && (c.flags == nil || !c.flags.Changed(flag)) {
			*field = value
		}
	}

	set("workdir", &c.workdir, cfg.Workdir)
	set("credentials", &c.credentials, cfg.Credentials)
	set("url", &c.url, cfg.URL)
	set("store", &c.store, cfg.Store)

	c.debug = c.debug || cfg.Debug
}

// validate checks the common options and returns the template spreadsheet ID.
func (c *command) validate() (string, error) {
	if strings.TrimSpace(c.credentials) == "" {
		return "", fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.url) == "" {
		return "", fmt.Errorf("--url is a required option")
	}

	switch c.store {
	case "sheet", "file":
	default:
		return "", fmt.Errorf("invalid --store '%v' - expected 'sheet' or 'file'", c.store)
	}

	return spreadsheetID(c.url)
}

func spreadsheetID(url string) (string, error) {
	match := spreadsheetURL.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func helpOptions(flagset *pflag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *pflag.Flag) {
		fmt.Printf("    --%-14s %s\n", f.Name, f.Usage)
	})
}

func debugf(format string, args ...any) {
	logging.Get(APP).Debug().Msgf(format, args...)
}

func infof(format string, args ...any) {
	logging.Get(APP).Info().Msgf(format, args...)
}

func warnf(format string, args ...any) {
	logging.Get(APP).Warn().Msgf(format, args...)
}

// Defaults returns the built-in configuration, overridden by the configuration file and the
// environment.
func Defaults() config.Config {
	return config.Config{
		Workdir:      DEFAULT_WORKDIR,
		Credentials:  DEFAULT_CREDENTIALS,
		Store:        "sheet",
		LogRetention: DEFAULT_LOG_RETENTION,
	}
}
