package propagate

import (
	"context"
	"fmt"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

// ListDocuments opens every file in the container that can be opened as a spreadsheet. Files
// that cannot be opened (documents, images, folders, files shared without access) are skipped.
// An empty container yields an empty list, not an error.
func ListDocuments(ctx context.Context, store DocumentStore, containerID string) ([]Document, error) {
	log := logging.Get("folder")

	files, err := store.List(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("unable to list files in folder %v (%w)", containerID, err)
	}

	documents := []Document{}
	for _, f := range files {
		doc, err := store.Open(ctx, f.ID)
		if err != nil {
			log.Debug().Str("file", f.Name).Str("id", f.ID).Str("type", f.MimeType).Msg("skipping, not a spreadsheet")
			continue
		}

		documents = append(documents, doc)
	}

	log.Debug().Str("folder", containerID).Int("files", len(files)).Int("spreadsheets", len(documents)).Msg("listed folder")

	return documents, nil
}

// RequireDocuments is ListDocuments for callers about to propagate: a missing folder ID and an
// empty folder are validation errors.
func RequireDocuments(ctx context.Context, store DocumentStore, containerID string) ([]Document, error) {
	if containerID == "" {
		return nil, ErrNoFolder
	}

	documents, err := ListDocuments(ctx, store, containerID)
	if err != nil {
		return nil, err
	} else if len(documents) == 0 {
		return nil, ErrEmptyFolder
	}

	return documents, nil
}
