package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	gsheets "github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/google"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive"
)

var scopes = []string{SHEETS, DRIVE}

// session bundles the Google API clients for a command run against a template spreadsheet.
type session struct {
	store    *gsheets.Drive
	template *gsheets.Spreadsheet
	settings settings.Store
}

func (c *command) connect(ctx context.Context, spreadsheetID string) (*session, error) {
	client, err := authorize(ctx, c.credentials, c.tokens())
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%v)", err)
	}

	s, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	d, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	template, err := gsheets.OpenSpreadsheet(ctx, s, spreadsheetID)
	if err != nil {
		return nil, err
	}

	debugf("template spreadsheet - ID:%v  title:%v", template.ID(), template.Title())

	return &session{
		store:    gsheets.NewDrive(d, s),
		template: template,
		settings: c.settingsStore(s, spreadsheetID),
	}, nil
}

// settingsStore returns the developer metadata store of the template spreadsheet or, with
// --store file, a YAML file in the work directory named for the template spreadsheet.
func (c *command) settingsStore(s *sheets.Service, spreadsheetID string) settings.Store {
	if c.store == "file" {
		return settings.NewFileStore(filepath.Join(c.workdir, "settings", spreadsheetID+".yaml"))
	}

	return gsheets.NewMetadataStore(s, spreadsheetID)
}

// tokens is the path of the OAuth2 token file, derived from the credentials file name.
func (c *command) tokens() string {
	_, file := filepath.Split(c.credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(c.workdir, ".google", fmt.Sprintf("%s.tokens", name))
}

func oauthConfig(credentials string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scopes...)
}

func authorize(ctx context.Context, credentials string, tokens string) (*http.Client, error) {
	config, err := oauthConfig(credentials)
	if err != nil {
		return nil, err
	}

	token, err := tokenFromFile(tokens)
	if err != nil {
		return nil, fmt.Errorf("no authorisation token in %v - run '%v authorise' first (%v)", tokens, APP, err)
	}

	return config.Client(ctx, token), nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

func saveToken(file string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth2 token (%v)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
