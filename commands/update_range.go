package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var UpdateRangeCmd = UpdateRange{
	update: baseUpdate,
	sheet:  "",
	cell:   "",
}

type UpdateRange struct {
	update
	sheet string
	cell  string
}

func (cmd *UpdateRange) Name() string {
	return "update-range"
}

func (cmd *UpdateRange) Description() string {
	return "Copies the named range(s) containing a cell of the template to every child spreadsheet"
}

func (cmd *UpdateRange) Usage() string {
	return "--url <url> --sheet <sheet> --cell <A1>"
}

func (cmd *UpdateRange) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] update-range [options] --url <URL> --sheet <sheet> --cell <cell>\n", APP)
	fmt.Println()
	fmt.Println("  Finds every named range on the template sheet that contains the cell and copies the contents of those")
	fmt.Println("  ranges to the sheet with the same name in each spreadsheet in the Drive folder. Sheets that do not exist")
	fmt.Println("  in a child spreadsheet are created. If protections are enabled, the range protections that lie inside")
	fmt.Println("  the named ranges replace the matching protections in the child spreadsheets.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s update-range --url \"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms\" --sheet Budget --cell C4\n", APP)
	fmt.Println()
}

func (cmd *UpdateRange) FlagSet() *pflag.FlagSet {
	flagset := cmd.flagset("update-range")

	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Template sheet holding the cell")
	flagset.StringVar(&cmd.cell, "cell", cmd.cell, "Cell (A1 notation) inside the named range(s) to update")

	return flagset
}

func (cmd *UpdateRange) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	id, err := cmd.validate()
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
	}

	point, err := propagate.ParseCell(cmd.cell)
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

	sheet, ok := propagate.FindSheet(sheets, cmd.sheet)
	if !ok {
		return fmt.Errorf("template spreadsheet has no sheet '%v'", cmd.sheet)
	}

	named, err := session.template.NamedRegions(ctx)
	if err != nil {
		return err
	}

	regions := propagate.FindContainingRegions(point, onSheet(named, sheet.Title))
	if len(regions) == 0 {
		return propagate.ErrNoNamedRange
	}

	for _, r := range regions {
		infof("named range %v", r)
	}

	var protections []propagate.Protection
	if s.Protect {
		list, err := session.template.Protections(ctx, sheet)
		if err != nil {
			return err
		}

		protections = rangeProtections(list, regions)
	}

	return cmd.run(ctx, cmd.Name(), session, s, plan{
		target:      fmt.Sprintf("%v!%v", sheet.Title, strings.ToUpper(strings.TrimSpace(cmd.cell))),
		sources:     []propagate.Sheet{sheet},
		regions:     regions,
		protections: protections,
	})
}

// onSheet returns the regions on the named sheet.
func onSheet(regions []propagate.Region, title string) []propagate.Region {
	list := []propagate.Region{}
	for _, r := range regions {
		if r.Sheet == title {
			list = append(list, r)
		}
	}

	return list
}
