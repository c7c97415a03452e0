package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var ProtectionsCmd = Protections{
	command: baseCommand,
}

type Protections struct {
	command
}

func (cmd *Protections) Name() string {
	return "protections"
}

func (cmd *Protections) Description() string {
	return "Sets whether protections are applied to the child spreadsheets"
}

func (cmd *Protections) Usage() string {
	return "--url <url> [yes|no]"
}

func (cmd *Protections) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] protections [options] --url <URL> [yes|no]\n", APP)
	fmt.Println()
	fmt.Println("  When enabled, the update commands replace the range and sheet protections in the child spreadsheets")
	fmt.Println("  with those of the template. Prompts for yes/no if the value is omitted.")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *Protections) FlagSet() *pflag.FlagSet {
	return cmd.flagset("protections")
}

func (cmd *Protections) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	id, err := cmd.validate()
	if err != nil {
		return err
	}

	value := ""
	if args := cmd.args(); len(args) > 0 {
		value = args[0]
	} else if v, ok, err := ask(settings.ProtectionBool, ""); err != nil {
		return err
	} else if !ok {
		infof("%v unchanged", settings.ProtectionBool)
		return nil
	} else {
		value = v
	}

	if _, err := settings.ParseBool(value); err != nil {
		return err
	}

	session, err := cmd.connect(ctx, id)
	if err != nil {
		return err
	}

	return save(ctx, session.settings, settings.ProtectionBool, value)
}
