package propagate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

// Propagator copies template sheets (or regions of them) into a set of target documents and,
// optionally, reconciles their protections. Targets are processed strictly sequentially.
type Propagator struct {
	Reconciler *Reconciler
}

// Propagate copies each of the source sheets of the template into every target.
//
// If regions is empty the whole sheet is replaced, otherwise only the cells inside the regions
// are copied. If protections is nil the protections on the targets are left as they are.
//
// A failure on one (target, sheet) pair is recorded in the report and does not stop the others.
func (p *Propagator) Propagate(ctx context.Context, template Document, sources []Sheet, targets []Document, regions []Region, protections []Protection) *Report {
	log := logging.Get("propagate")
	report := Report{}

	for _, target := range targets {
		for _, sheet := range sources {
			if err := ctx.Err(); err != nil {
				report.failed(target, sheet.Title, err)
				return &report
			}

			created, warnings, err := p.update(ctx, template, sheet, target, regions, protections)

			for _, w := range warnings {
				log.Warn().Str("document", target.Title()).Str("sheet", sheet.Title).Msg(w)
				report.warn(target, sheet.Title, w)
			}

			switch {
			case err != nil:
				log.Error().Err(err).Str("document", target.Title()).Str("sheet", sheet.Title).Msg("update failed")
				report.failed(target, sheet.Title, err)

			case created:
				log.Info().Str("document", target.Title()).Str("sheet", sheet.Title).Msg("created")
				report.created(target, sheet.Title)

			default:
				log.Info().Str("document", target.Title()).Str("sheet", sheet.Title).Msg("updated")
				report.updated(target, sheet.Title)
			}
		}
	}

	return &report
}

// update runs one propagation cycle for a (target, sheet) pair. The duplicate made by the copy
// is always removed before returning, whichever way the cycle ends.
func (p *Propagator) update(ctx context.Context, template Document, source Sheet, target Document, regions []Region, protections []Protection) (created bool, warnings []string, err error) {
	if err = sweep(ctx, target, source.Title); err != nil {
		return
	}

	duplicate, err := template.CopySheetTo(ctx, source, target)
	if err != nil {
		err = fmt.Errorf("error copying sheet '%v' (%w)", source.Title, err)
		return
	}

	carrier := &duplicate

	defer func() {
		if carrier != nil {
			if e := target.DeleteSheet(context.WithoutCancel(ctx), *carrier); e != nil && err == nil {
				err = fmt.Errorf("error removing temporary sheet '%v' (%w)", carrier.Title, e)
			}
		}
	}()

	if err = target.MarkTemporary(ctx, duplicate); err != nil {
		err = fmt.Errorf("error tagging temporary sheet '%v' (%w)", duplicate.Title, err)
		return
	}

	sheets, err := target.Sheets(ctx)
	if err != nil {
		return
	}

	canonical, exists := findOther(sheets, source.Title, duplicate.ID)
	if !exists {
		if err = target.UnmarkTemporary(ctx, duplicate); err != nil {
			err = fmt.Errorf("error untagging '%v' (%w)", duplicate.Title, err)
			return
		}

		if err = target.RenameSheet(ctx, duplicate, source.Title); err != nil {
			err = fmt.Errorf("error renaming '%v' (%w)", duplicate.Title, err)
			return
		}

		canonical = duplicate
		canonical.Title = source.Title
		carrier = nil
		created = true
	} else if len(regions) > 0 {
		if canonical, err = grow(ctx, target, canonical, regions); err != nil {
			return
		}

		for _, r := range regions {
			if err = target.CopyRange(ctx, duplicate, canonical, r); err != nil {
				err = fmt.Errorf("error updating range %v (%w)", r.A1(), err)
				return
			}
		}
	} else {
		if canonical, err = resize(ctx, target, canonical, duplicate.Rows, duplicate.Columns); err != nil {
			return
		}

		all := Region{StartRow: 1, StartCol: 1, EndRow: duplicate.Rows, EndCol: duplicate.Columns}
		if err = target.CopyRange(ctx, duplicate, canonical, all); err != nil {
			err = fmt.Errorf("error updating sheet '%v' (%w)", canonical.Title, err)
			return
		}
	}

	if protections != nil && p.Reconciler != nil {
		for _, protection := range protections {
			if protection.Sheet != source.Title {
				continue
			}

			if e := p.Reconciler.Reconcile(ctx, target, canonical, protection); errors.Is(e, ErrPermissionDenied) {
				warnings = append(warnings, fmt.Sprintf("cannot apply protections (%v)", e))
			} else if e != nil {
				err = e
				return
			}
		}
	}

	return
}

// resize trims excess trailing rows and columns from the sheet, or appends missing ones, so that
// its grid matches the given dimensions.
func resize(ctx context.Context, doc Document, sheet Sheet, rows, columns int) (Sheet, error) {
	if sheet.Rows > rows {
		if err := doc.DeleteRows(ctx, sheet, rows+1, sheet.Rows-rows); err != nil {
			return sheet, fmt.Errorf("error deleting rows from '%v' (%w)", sheet.Title, err)
		}
	} else if sheet.Rows < rows {
		if err := doc.AppendRows(ctx, sheet, rows-sheet.Rows); err != nil {
			return sheet, fmt.Errorf("error adding rows to '%v' (%w)", sheet.Title, err)
		}
	}

	if sheet.Columns > columns {
		if err := doc.DeleteColumns(ctx, sheet, columns+1, sheet.Columns-columns); err != nil {
			return sheet, fmt.Errorf("error deleting columns from '%v' (%w)", sheet.Title, err)
		}
	} else if sheet.Columns < columns {
		if err := doc.AppendColumns(ctx, sheet, columns-sheet.Columns); err != nil {
			return sheet, fmt.Errorf("error adding columns to '%v' (%w)", sheet.Title, err)
		}
	}

	sheet.Rows = rows
	sheet.Columns = columns

	return sheet, nil
}

// grow appends rows and columns to the sheet until every region fits inside its grid. Existing
// rows and columns are never removed.
func grow(ctx context.Context, doc Document, sheet Sheet, regions []Region) (Sheet, error) {
	rows, columns := sheet.Rows, sheet.Columns
	for _, r := range regions {
		rows = max(rows, r.EndRow)
		columns = max(columns, r.EndCol)
	}

	if rows == sheet.Rows && columns == sheet.Columns {
		return sheet, nil
	}

	return resize(ctx, doc, sheet, rows, columns)
}

// sweep deletes the temporary sheets left behind by an earlier run that was terminated part way
// through a cycle. Only sheets tagged with MarkTemporary are removed: an untagged 'Copy of' sheet
// may belong to a user and is left alone.
func sweep(ctx context.Context, doc Document, title string) error {
	log := logging.Get("propagate")

	temporary, err := doc.TemporarySheets(ctx)
	if err != nil {
		return err
	}

	sheets, err := doc.Sheets(ctx)
	if err != nil {
		return err
	}

	for _, s := range sheets {
		switch {
		case slices.Contains(temporary, s.ID):
			log.Warn().Str("document", doc.Title()).Str("sheet", s.Title).Msg("removing leftover temporary sheet")
			if err := doc.DeleteSheet(ctx, s); err != nil {
				return fmt.Errorf("error removing leftover sheet '%v' (%w)", s.Title, err)
			}

		case s.Title == CopyPrefix+title:
			log.Debug().Str("document", doc.Title()).Str("sheet", s.Title).Msg("keeping untagged copy")
		}
	}

	return nil
}

func findOther(sheets []Sheet, title string, exclude int64) (Sheet, bool) {
	for _, s := range sheets {
		if s.Title == title && s.ID != exclude {
			return s, true
		}
	}

	return Sheet{}, false
}
