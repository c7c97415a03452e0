package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var UpdateAllCmd = UpdateAll{
	update: baseUpdate,
}

type UpdateAll struct {
	update
}

func (cmd *UpdateAll) Name() string {
	return "update-all"
}

func (cmd *UpdateAll) Description() string {
	return "Replaces every sheet in every child spreadsheet with the template sheets"
}

func (cmd *UpdateAll) Usage() string {
	return "--url <url>"
}

func (cmd *UpdateAll) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] update-all [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Replaces every sheet of each spreadsheet in the Drive folder with a copy of the template sheet with the")
	fmt.Println("  same name. This makes a large number of API calls and may be slow (or be rate limited) for a large")
	fmt.Println("  template or a folder with many spreadsheets - consider update-sheet or update-range instead.")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *UpdateAll) FlagSet() *pflag.FlagSet {
	return cmd.flagset("update-all")
}

func (cmd *UpdateAll) Execute(ctx context.Context, options *Options) error {
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

	sheets, err := session.template.Sheets(ctx)
	if err != nil {
		return err
	}

	warnf("updating all %v sheets is resource intensive and may take a while", len(sheets))

	var protections []propagate.Protection
	if s.Protect {
		if protections, err = sheetProtections(ctx, session.template, sheets); err != nil {
			return err
		}
	}

	return cmd.run(ctx, cmd.Name(), session, s, plan{
		target:      "*",
		sources:     sheets,
		protections: protections,
	})
}
