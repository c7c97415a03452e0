package propagate

import (
	"context"
	"fmt"
	"strings"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

// DefaultSheet is the title of the starter sheet the host adds to a new spreadsheet (in an
// English locale).
const DefaultSheet = "Sheet1"

// Provisioner creates child spreadsheets and seeds them from the template.
type Provisioner struct {
	Store      DocumentStore
	Propagator *Propagator

	// Sources selects the template sheets copied into a new spreadsheet. Every sheet is copied
	// when it is nil.
	Sources func([]Sheet) []Sheet
}

// CreateDocuments creates one spreadsheet per name (with the optional suffix appended to the
// title), moves it into the container and copies the template sheets into it. The starter sheet(s) the host
// created the spreadsheet with are then removed unless the template has a sheet with the same
// title.
//
// A failure while creating one spreadsheet is recorded in the report and the remaining names are
// still processed.
func (p *Provisioner) CreateDocuments(ctx context.Context, containerID string, template Document, names []string, suffix string) ([]Document, *Report, error) {
	log := logging.Get("provision")

	if strings.TrimSpace(containerID) == "" {
		return nil, nil, ErrNoFolder
	}

	titles := []string{}
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			titles = append(titles, name+suffix)
		}
	}

	if len(titles) == 0 {
		return nil, nil, ErrNoNames
	}

	sources, err := template.Sheets(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to retrieve template sheets (%w)", err)
	}

	if p.Sources != nil {
		sources = p.Sources(sources)
	}

	created := []Document{}
	report := Report{}

	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			report.failed(nil, "", fmt.Errorf("%v: %w", title, err))
			break
		}

		doc, err := p.Store.Create(ctx, title)
		if err != nil {
			log.Error().Err(err).Str("title", title).Msg("create failed")
			report.Failed = append(report.Failed, Entry{Document: title, Message: err.Error()})
			continue
		}

		if err := p.Store.AddToContainer(ctx, doc.ID(), containerID); err != nil {
			log.Error().Err(err).Str("title", title).Str("id", doc.ID()).Msg("created spreadsheet left outside the folder")
			report.failed(doc, "", fmt.Errorf("spreadsheet '%v' (%v) was created but could not be added to the folder, move or delete it by hand (%w)", title, doc.ID(), err))
			continue
		}

		created = append(created, doc)

		starters, err := doc.Sheets(ctx)
		if err != nil {
			report.failed(doc, "", err)
			continue
		}

		seeded := p.Propagator.Propagate(ctx, template, sources, []Document{doc}, nil, nil)
		report.Merge(seeded)

		for _, s := range starters {
			if _, ok := FindSheet(sources, s.Title); !ok {
				if err := removeSheet(ctx, doc, s.Title); err != nil {
					report.failed(doc, s.Title, err)
				}
			}
		}

		log.Info().Str("title", title).Str("id", doc.ID()).Msg("created spreadsheet")
	}

	return created, &report, nil
}

func removeSheet(ctx context.Context, doc Document, title string) error {
	sheets, err := doc.Sheets(ctx)
	if err != nil {
		return err
	}

	if sheet, ok := FindSheet(sheets, title); ok {
		if err := doc.DeleteSheet(ctx, sheet); err != nil {
			return fmt.Errorf("error removing starter sheet '%v' (%w)", title, err)
		}
	}

	return nil
}
