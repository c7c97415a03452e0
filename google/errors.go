package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
)

// wrap maps a Google API 'forbidden' response to propagate.ErrPermissionDenied so that callers
// can distinguish it from other failures with errors.Is.
func wrap(err error) error {
	var e *googleapi.Error

	if err == nil {
		return nil
	} else if errors.As(err, &e) && e.Code == http.StatusForbidden {
		return fmt.Errorf("%w (%v)", propagate.ErrPermissionDenied, e.Message)
	}

	return err
}
