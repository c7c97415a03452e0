package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var UpdateSheetCmd = UpdateSheet{
	update: baseUpdate,
	sheet:  "",
}

type UpdateSheet struct {
	update
	sheet string
}

func (cmd *UpdateSheet) Name() string {
	return "update-sheet"
}

func (cmd *UpdateSheet) Description() string {
	return "Replaces a sheet in every child spreadsheet with the template sheet"
}

func (cmd *UpdateSheet) Usage() string {
	return "--url <url> --sheet <sheet>"
}

func (cmd *UpdateSheet) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] update-sheet [options] --url <URL> --sheet <sheet>\n", APP)
	fmt.Println()
	fmt.Println("  Replaces the sheet with the same name in each spreadsheet in the Drive folder with a copy of the template")
	fmt.Println("  sheet, keeping the sheet position. If protections are enabled, the sheet protection of the template sheet")
	fmt.Println("  replaces the sheet protection in the child spreadsheets.")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *UpdateSheet) FlagSet() *pflag.FlagSet {
	flagset := cmd.flagset("update-sheet")

	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Template sheet to propagate")

	return flagset
}

func (cmd *UpdateSheet) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	id, err := cmd.validate()
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
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

	sheet, ok := propagate.FindSheet(sheets, cmd.sheet)
	if !ok {
		return fmt.Errorf("template spreadsheet has no sheet '%v'", cmd.sheet)
	}

	var protections []propagate.Protection
	if s.Protect {
		if protections, err = sheetProtections(ctx, session.template, []propagate.Sheet{sheet}); err != nil {
			return err
		}
	}

	return cmd.run(ctx, cmd.Name(), session, s, plan{
		target:      sheet.Title,
		sources:     []propagate.Sheet{sheet},
		protections: protections,
	})
}
