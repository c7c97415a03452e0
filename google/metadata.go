package google

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// MetadataStore keeps settings as developer metadata attached to a spreadsheet, so that they
// travel with the template spreadsheet rather than with the machine running the commands.
type MetadataStore struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewMetadataStore(service *sheets.Service, spreadsheetID string) *MetadataStore {
	return &MetadataStore{
		service:       service,
		spreadsheetID: spreadsheetID,
	}
}

func (m *MetadataStore) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	values := map[string]string{}

	matched, err := m.search(ctx, keys...)
	if err != nil {
		return nil, err
	}

	for _, v := range matched {
		values[v.MetadataKey] = v.MetadataValue
	}

	return values, nil
}

func (m *MetadataStore) Set(ctx context.Context, key string, value string) error {
	matched, err := m.search(ctx, key)
	if err != nil {
		return err
	}

	requests := []*sheets.Request{}

	for i, v := range matched {
		if i == 0 {
			requests = append(requests, &sheets.Request{
				UpdateDeveloperMetadata: &sheets.UpdateDeveloperMetadataRequest{
					DataFilters: []*sheets.DataFilter{
						{DeveloperMetadataLookup: &sheets.DeveloperMetadataLookup{MetadataId: v.MetadataId}},
					},
					DeveloperMetadata: &sheets.DeveloperMetadata{
						MetadataValue: value,
					},
					Fields: "metadataValue",
				},
			})
		} else {
			requests = append(requests, deleteMetadata(v.MetadataId))
		}
	}

	if len(matched) == 0 {
		requests = append(requests, &sheets.Request{
			CreateDeveloperMetadata: &sheets.CreateDeveloperMetadataRequest{
				DeveloperMetadata: &sheets.DeveloperMetadata{
					MetadataKey:   key,
					MetadataValue: value,
					Location: &sheets.DeveloperMetadataLocation{
						Spreadsheet: true,
					},
					Visibility: "DOCUMENT",
				},
			},
		})
	}

	return m.batch(ctx, requests)
}

// Clear deletes all the keys in a single batch update.
func (m *MetadataStore) Clear(ctx context.Context, keys ...string) error {
	matched, err := m.search(ctx, keys...)
	if err != nil {
		return err
	}

	requests := []*sheets.Request{}
	for _, v := range matched {
		requests = append(requests, deleteMetadata(v.MetadataId))
	}

	if len(requests) == 0 {
		return nil
	}

	return m.batch(ctx, requests)
}

func (m *MetadataStore) search(ctx context.Context, keys ...string) ([]*sheets.DeveloperMetadata, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	rq := sheets.SearchDeveloperMetadataRequest{
		DataFilters: []*sheets.DataFilter{},
	}

	for _, k := range keys {
		rq.DataFilters = append(rq.DataFilters, &sheets.DataFilter{
			DeveloperMetadataLookup: &sheets.DeveloperMetadataLookup{
				MetadataKey:  k,
				LocationType: "SPREADSHEET",
			},
		})
	}

	response, err := m.service.Spreadsheets.DeveloperMetadata.Search(m.spreadsheetID, &rq).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve spreadsheet metadata (%w)", wrap(err))
	}

	list := []*sheets.DeveloperMetadata{}
	for _, v := range response.MatchedDeveloperMetadata {
		if v.DeveloperMetadata != nil {
			list = append(list, v.DeveloperMetadata)
		}
	}

	return list, nil
}

func (m *MetadataStore) batch(ctx context.Context, requests []*sheets.Request) error {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	if _, err := m.service.Spreadsheets.BatchUpdate(m.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to update spreadsheet metadata (%w)", wrap(err))
	}

	return nil
}

func deleteMetadata(id int64) *sheets.Request {
	return &sheets.Request{
		DeleteDeveloperMetadata: &sheets.DeleteDeveloperMetadataRequest{
			DataFilter: &sheets.DataFilter{
				DeveloperMetadataLookup: &sheets.DeveloperMetadataLookup{
					MetadataId: id,
				},
			},
		},
	}
}
