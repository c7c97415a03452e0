package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var ClearCmd = Clear{
	command: baseCommand,
}

type Clear struct {
	command
}

func (cmd *Clear) Name() string {
	return "clear"
}

func (cmd *Clear) Description() string {
	return "Clears all the settings stored with the template spreadsheet"
}

func (cmd *Clear) Usage() string {
	return "--url <url>"
}

func (cmd *Clear) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] clear [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Removes the user names, admin e-mails, Drive folder ID, title suffix and protections settings")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *Clear) FlagSet() *pflag.FlagSet {
	return cmd.flagset("clear")
}

func (cmd *Clear) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	id, err := cmd.validate()
	if err != nil {
		return err
	}

	session, err := cmd.connect(ctx, id)
	if err != nil {
		return err
	}

	if err := settings.Clear(ctx, session.settings); err != nil {
		return err
	}

	infof("cleared settings for %v", session.template.Title())

	return nil
}
