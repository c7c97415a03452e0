package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var ShowCmd = Show{
	command: baseCommand,
}

type Show struct {
	command
}

func (cmd *Show) Name() string {
	return "show"
}

func (cmd *Show) Description() string {
	return "Displays the settings stored with the template spreadsheet"
}

func (cmd *Show) Usage() string {
	return "--url <url>"
}

func (cmd *Show) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] show [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Displays the current settings")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *Show) FlagSet() *pflag.FlagSet {
	return cmd.flagset("show")
}

func (cmd *Show) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	id, err := cmd.validate()
	if err != nil {
		return err
	}

	session, err := cmd.connect(ctx, id)
	if err != nil {
		return err
	}

	s, err := settings.Load(ctx, session.settings)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %v\n", titleStyle.Render(session.template.Title()))
	fmt.Println()
	show(os.Stdout, s)
	fmt.Println()

	return nil
}

func show(w io.Writer, s *settings.Settings) {
	for _, k := range settings.Kinds {
		v := s.Value(k)
		if v == "" {
			v = "-"
		} else if k == settings.TitleAppend {
			v = fmt.Sprintf("%q", v)
		}

		fmt.Fprintf(w, "  %-16s %v\n", k.Key(), v)
	}
}
