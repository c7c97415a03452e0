package propagate

import (
	"errors"
)

var (
	ErrNoNamedRange     = errors.New("no named range found - please make sure the selected cell is part of a named range")
	ErrEmptyFolder      = errors.New("there are no spreadsheets in the target Drive folder - create at least one in the folder or use the 'create' command")
	ErrNoFolder         = errors.New("the Drive folder ID has not been set - use 'set folder <ID>'")
	ErrNoNames          = errors.New("at least one name is required - use 'set users <names>'")
	ErrPermissionDenied = errors.New("permission denied")
)
