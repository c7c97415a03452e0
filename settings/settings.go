package settings

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Store persists settings as key/value strings.
type Store interface {
	// Get returns the values of those keys that are set. Missing keys are absent from the map.
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	Set(ctx context.Context, key string, value string) error
	// Clear removes the keys in a single operation.
	Clear(ctx context.Context, keys ...string) error
}

// Settings is a snapshot of the persisted settings, loaded once per command.
type Settings struct {
	Users       []string
	Admins      []string
	FolderID    string
	TitleAppend string
	Protect     bool
}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%-]+@[a-zA-Z\d\-]+.`)
var folderURL = regexp.MustCompile(`^https://drive.google.com/(?:drive/(?:u/[0-9]+/)?folders/)([^/?#]+)(?:[/?#].*)?$`)

// Keys returns the persisted keys of every setting.
func Keys() []string {
	keys := []string{}
	for _, k := range Kinds {
		keys = append(keys, k.Key())
	}

	return keys
}

func Load(ctx context.Context, store Store) (*Settings, error) {
	values, err := store.Get(ctx, Keys()...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve settings (%w)", err)
	}

	return &Settings{
		Users:       SplitList(values[UserList.Key()]),
		Admins:      SplitList(values[AdminEmailList.Key()]),
		FolderID:    strings.TrimSpace(values[FolderID.Key()]),
		TitleAppend: values[TitleAppend.Key()],
		Protect:     values[ProtectionBool.Key()] == "true",
	}, nil
}

// Value returns the setting formatted the way it is persisted, or "" if it is not set.
func (s Settings) Value(k Kind) string {
	switch k {
	case UserList:
		return strings.Join(s.Users, ",")
	case AdminEmailList:
		return strings.Join(s.Admins, ",")
	case FolderID:
		return s.FolderID
	case TitleAppend:
		return s.TitleAppend
	case ProtectionBool:
		return fmt.Sprintf("%v", s.Protect)
	default:
		return ""
	}
}

// Set validates and saves a single setting. Nothing is saved if the value is invalid. An empty
// title suffix removes the setting, so child spreadsheets are titled with just the name.
func Set(ctx context.Context, store Store, k Kind, value string) error {
	v, err := normalise(k, value)
	if err != nil {
		return err
	}

	if k == TitleAppend && v == "" {
		if err := store.Clear(ctx, k.Key()); err != nil {
			return fmt.Errorf("unable to clear %v (%w)", k, err)
		}

		return nil
	}

	if err := store.Set(ctx, k.Key(), v); err != nil {
		return fmt.Errorf("unable to save %v (%w)", k, err)
	}

	return nil
}

// Clear removes every setting.
func Clear(ctx context.Context, store Store) error {
	if err := store.Clear(ctx, Keys()...); err != nil {
		return fmt.Errorf("unable to clear settings (%w)", err)
	}

	return nil
}

func normalise(k Kind, value string) (string, error) {
	switch k {
	case UserList:
		list := SplitList(value)
		if len(list) == 0 {
			return "", fmt.Errorf("%v: %w", k, ErrEmptyValue)
		}

		return strings.Join(list, ","), nil

	case AdminEmailList:
		list := SplitList(value)
		if len(list) == 0 {
			return "", fmt.Errorf("%v: %w", k, ErrEmptyValue)
		} else if err := ValidateEmails(list); err != nil {
			return "", err
		}

		return strings.Join(list, ","), nil

	case FolderID:
		id := strings.TrimSpace(value)
		if match := folderURL.FindStringSubmatch(id); len(match) > 1 {
			id = match[1]
		}

		if id == "" {
			return "", fmt.Errorf("%v: %w", k, ErrEmptyValue)
		}

		return id, nil

	case TitleAppend:
		return value, nil

	case ProtectionBool:
		b, err := ParseBool(value)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%v", b), nil

	default:
		return "", fmt.Errorf("%w %d", ErrUnknownKind, int(k))
	}
}

// SplitList splits a comma separated list, trimming each entry and dropping blank ones. There
// is no escaping: names containing a comma cannot be represented.
func SplitList(s string) []string {
	list := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}

	return list
}

// ValidateEmails checks every address and returns an ErrInvalidEmail naming the first one that
// is not valid.
func ValidateEmails(emails []string) error {
	for _, email := range emails {
		if !emailRegex.MatchString(email) {
			return fmt.Errorf("%w '%v'", ErrInvalidEmail, email)
		}

		domain := email[strings.LastIndex(email, "@")+1:]
		if _, err := idna.Lookup.ToASCII(strings.TrimSpace(domain)); err != nil {
			return fmt.Errorf("%w '%v' (%v)", ErrInvalidEmail, email, err)
		}
	}

	return nil
}

// ParseBool accepts yes/no/y/n/true/false in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return true, nil

	case "no", "n", "false":
		return false, nil

	default:
		return false, fmt.Errorf("%w (%q)", ErrInvalidBool, s)
	}
}
