package settings

import (
	"fmt"
	"strings"
)

// Kind identifies one of the persisted settings.
type Kind int

const (
	UserList Kind = iota
	AdminEmailList
	FolderID
	TitleAppend
	ProtectionBool
)

// Kinds lists every setting in display order.
var Kinds = []Kind{UserList, AdminEmailList, FolderID, TitleAppend, ProtectionBool}

// ParseKind accepts either the command line name of a setting (e.g. 'users') or its persisted
// key (e.g. 'USER_LIST').
func ParseKind(s string) (Kind, error) {
	v := strings.TrimSpace(s)

	for _, k := range Kinds {
		if strings.EqualFold(v, k.String()) || strings.EqualFold(v, k.Key()) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w '%v' - expected one of users, admins, folder, title-append or protections", ErrUnknownKind, s)
}

// Key is the name the setting is persisted under.
func (k Kind) Key() string {
	switch k {
	case UserList:
		return "USER_LIST"
	case AdminEmailList:
		return "ADMIN_EMAIL_LIST"
	case FolderID:
		return "FOLDER_ID"
	case TitleAppend:
		return "TITLE_APPEND"
	case ProtectionBool:
		return "PROTECTION_BOOL"
	default:
		panic(fmt.Sprintf("unknown setting kind %d", int(k)))
	}
}

func (k Kind) String() string {
	switch k {
	case UserList:
		return "users"
	case AdminEmailList:
		return "admins"
	case FolderID:
		return "folder"
	case TitleAppend:
		return "title-append"
	case ProtectionBool:
		return "protections"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Prompt is the text shown when asking for a new value interactively.
func (k Kind) Prompt() string {
	switch k {
	case UserList:
		return "Please enter a list of comma-separated names, or a single name, that will each have their own spreadsheet made from the template spreadsheet."
	case AdminEmailList:
		return "Please enter a list of comma-separated e-mail addresses, or a single address, that will be the editors of every protected sheet and range."
	case FolderID:
		return "Please enter the Google Drive folder ID. This is the alphanumeric code in the URL when you navigate to the Drive folder in question."
	case TitleAppend:
		return "Please enter the text you would like appended to the title of each user's spreadsheet."
	case ProtectionBool:
		return "Would you like changes in range and sheet protections to be applied to the target range(s) and sheet(s)?"
	default:
		panic(fmt.Sprintf("unknown setting kind %d", int(k)))
	}
}
