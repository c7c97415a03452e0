package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
)

const MimeTypeSpreadsheet = "application/vnd.google-apps.spreadsheet"

// Drive is a document store backed by Google Drive folders and the Sheets API.
type Drive struct {
	drive  *drive.Service
	sheets *sheets.Service
}

func NewDrive(d *drive.Service, s *sheets.Service) *Drive {
	return &Drive{
		drive:  d,
		sheets: s,
	}
}

func (d *Drive) Open(ctx context.Context, id string) (propagate.Document, error) {
	spreadsheet, err := OpenSpreadsheet(ctx, d.sheets, id)
	if err != nil {
		return nil, err
	}

	return spreadsheet, nil
}

func (d *Drive) Create(ctx context.Context, title string) (propagate.Document, error) {
	rq := sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: title,
		},
	}

	spreadsheet, err := d.sheets.Spreadsheets.Create(&rq).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create spreadsheet '%v' (%w)", title, wrap(err))
	}

	return &Spreadsheet{
		service: d.sheets,
		id:      spreadsheet.SpreadsheetId,
		title:   spreadsheet.Properties.Title,
	}, nil
}

// List returns every file in the folder that is not in the trash, following the result pages.
func (d *Drive) List(ctx context.Context, folderID string) ([]propagate.File, error) {
	page := ""
	files := []propagate.File{}
	query := fmt.Sprintf("'%v' in parents and trashed = false", escape(folderID))

	for {
		call := d.drive.Files.List().
			Q(query).
			Fields("nextPageToken", "files(id,name,mimeType)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)

		if page != "" {
			call.PageToken(page)
		}

		response, err := call.Do()
		if err != nil {
			return nil, wrap(err)
		}

		for _, f := range response.Files {
			files = append(files, propagate.File{
				ID:       f.Id,
				Name:     f.Name,
				MimeType: f.MimeType,
			})
		}

		if page = response.NextPageToken; page == "" {
			break
		}
	}

	return files, nil
}

// AddToContainer moves the file into the folder, removing it from its current parents.
func (d *Drive) AddToContainer(ctx context.Context, fileID string, folderID string) error {
	file, err := d.drive.Files.Get(fileID).Fields("parents").SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return wrap(err)
	}

	call := d.drive.Files.Update(fileID, &drive.File{}).
		AddParents(folderID).
		SupportsAllDrives(true).
		Context(ctx)

	if len(file.Parents) > 0 {
		call.RemoveParents(strings.Join(file.Parents, ","))
	}

	if _, err := call.Do(); err != nil {
		return wrap(err)
	}

	logging.Get("drive").Debug().Str("file", fileID).Str("folder", folderID).Msg("moved to folder")

	return nil
}

// Actor returns the e-mail address of the authorised user.
func (d *Drive) Actor(ctx context.Context) (string, error) {
	about, err := d.drive.About.Get().Fields("user(emailAddress)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to identify the authorised user (%w)", wrap(err))
	} else if about.User == nil {
		return "", fmt.Errorf("unable to identify the authorised user")
	}

	return about.User.EmailAddress, nil
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
