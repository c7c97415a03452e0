package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

var CreateCmd = Create{
	update: baseUpdate,
}

type Create struct {
	update
}

func (cmd *Create) Name() string {
	return "create"
}

func (cmd *Create) Description() string {
	return "Creates a copy of the template spreadsheet for each user name"
}

func (cmd *Create) Usage() string {
	return "--url <url>"
}

func (cmd *Create) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] create [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Creates a spreadsheet titled <name><title-append> in the Drive folder for each of the 'users' names and")
	fmt.Println("  copies every sheet of the template except the log sheet into it. The 'users' and 'folder' settings")
	fmt.Println("  must be set first, 'title-append' is optional (see 'set').")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *Create) FlagSet() *pflag.FlagSet {
	return cmd.flagset("create")
}

func (cmd *Create) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	id, err := cmd.validate()
	if err != nil {
		return err
	}

	session, err := cmd.connect(ctx, id)
	if err != nil {
		return err
	}

	s, err := settings.Load(ctx, session.settings)
	if err != nil {
		return err
	}

	if s.FolderID == "" {
		return propagate.ErrNoFolder
	}

	if len(s.Users) == 0 {
		return propagate.ErrNoNames
	}

	if cmd.dryrun {
		fmt.Println()
		fmt.Println("  Dry run, nothing will be created")
		fmt.Println()
		for _, name := range s.Users {
			fmt.Printf("  %v%v\n", name, s.TitleAppend)
		}
		fmt.Println()

		return nil
	}

	provisioner := propagate.Provisioner{
		Store:      session.store,
		Propagator: &propagate.Propagator{},
		Sources:    cmd.withoutLogSheet,
	}

	created, report, err := provisioner.CreateDocuments(ctx, s.FolderID, session.template, s.Users, s.TitleAppend)
	if err != nil {
		return err
	}

	debugf("created %v of %v spreadsheets", len(created), len(s.Users))

	return cmd.finish(ctx, cmd.Name(), fmt.Sprintf("%v", len(s.Users)), session, report)
}
