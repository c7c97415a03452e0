package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var SetCmd = Set{
	command: baseCommand,
}

type Set struct {
	command
}

func (cmd *Set) Name() string {
	return "set"
}

func (cmd *Set) Description() string {
	return "Sets one of the user names, admin e-mails, Drive folder ID or title suffix settings"
}

func (cmd *Set) Usage() string {
	return "--url <url> <users|admins|folder|title-append|protections> [value]"
}

func (cmd *Set) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] set [options] --url <URL> <setting> [value]\n", APP)
	fmt.Println()
	fmt.Println("  Sets a value stored with the template spreadsheet. If the value is omitted it is prompted for,")
	fmt.Println("  showing the existing entry.")
	fmt.Println()
	fmt.Println("  Settings:")
	fmt.Println()
	fmt.Println("    users         Comma separated list of names, one child spreadsheet is created per name")
	fmt.Println("    admins        Comma separated list of e-mail addresses that can edit every protected sheet and range")
	fmt.Println("    folder        Google Drive folder ID (or folder URL) holding the child spreadsheets")
	fmt.Println("    title-append  Optional text appended to each name to make the title of a child spreadsheet,")
	fmt.Println("                  an empty value (\"\") removes it")
	fmt.Println("    protections   yes/no, whether protections are propagated to the child spreadsheets")
	fmt.Println()
	fmt.Println("  Names cannot contain commas.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s set --url \"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms\" users \"Alice, Bob\"\n", APP)
	fmt.Printf("    %s set --url \"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms\" title-append \" - 2024\"\n", APP)
	fmt.Println()
}

func (cmd *Set) FlagSet() *pflag.FlagSet {
	return cmd.flagset("set")
}

func (cmd *Set) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	args := cmd.args()
	if len(args) < 1 {
		return fmt.Errorf("missing setting - expected one of users, admins, folder, title-append or protections")
	}

	kind, err := settings.ParseKind(args[0])
	if err != nil {
		return err
	}

	id, err := cmd.validate()
	if err != nil {
		return err
	}

	session, err := cmd.connect(ctx, id)
	if err != nil {
		return err
	}

	value := strings.Join(args[1:], " ")
	if len(args) < 2 {
		current, err := settings.Load(ctx, session.settings)
		if err != nil {
			return err
		}

		v, ok, err := ask(kind, current.Value(kind))
		if err != nil {
			return err
		} else if !ok {
			infof("%v unchanged", kind)
			return nil
		}

		value = v
	}

	return save(ctx, session.settings, kind, value)
}

// args returns the positional arguments left after parsing the flags.
func (c *command) args() []string {
	if c.flags == nil {
		return nil
	}

	return c.flags.Args()
}

func ask(kind settings.Kind, existing string) (string, bool, error) {
	if !interactive() {
		return "", false, fmt.Errorf("%v: %w", kind, settings.ErrEmptyValue)
	}

	if kind == settings.ProtectionBool {
		existing = ""
	}

	return prompt(stdin, os.Stdout, kind.Prompt(), existing)
}

func save(ctx context.Context, store settings.Store, kind settings.Kind, value string) error {
	if err := settings.Set(ctx, store, kind, value); err != nil {
		return err
	}

	infof("%v updated", kind)

	return nil
}
