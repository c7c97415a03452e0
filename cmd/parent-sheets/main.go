package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/commands"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/config"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.ShowCmd,
	&commands.SetCmd,
	&commands.ProtectionsCmd,
	&commands.ClearCmd,
	&commands.CreateCmd,
	&commands.UpdateRangeCmd,
	&commands.UpdateSheetCmd,
	&commands.UpdateAllCmd,
}

var options = commands.Options{
	Debug: false,
}

var file = commands.DEFAULT_CONFIG

var help = commands.NewHelp(cli)

func main() {
	pflag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	pflag.StringVar(&file, "config", file, "TOML configuration file")
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	cfg, err := config.Load(file, commands.Defaults())
	if err != nil {
		fmt.Printf("\n   ERROR: %v\n\n", err)
		os.Exit(1)
	}

	options.Config = cfg
	options.Debug = options.Debug || cfg.Debug

	logging.Setup(options.Debug)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := parse(pflag.Args())
	if cmd == nil {
		help.Execute(ctx, &options)
		os.Exit(1)
	}

	if err := cmd.Execute(ctx, &options); err != nil {
		fmt.Printf("\n   ERROR: %v\n\n", err)
		cancel()
		os.Exit(1)
	}
}

// parse finds the command named by the first argument and parses its flags from the rest.
func parse(args []string) commands.Command {
	if len(args) == 0 {
		return nil
	}

	list := append([]commands.Command{help}, cli...)

	for _, c := range list {
		if c.Name() == args[0] {
			flagset := c.FlagSet()
			if err := flagset.Parse(args[1:]); err != nil {
				return nil
			}

			return c
		}
	}

	fmt.Printf("\n   ERROR: unknown command '%v'\n", args[0])

	return nil
}
