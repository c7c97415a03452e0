package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// Help prints the list of commands or the detailed help for a single command.
type Help struct {
	cli   []Command
	flags *pflag.FlagSet
	out   io.Writer
}

func NewHelp(cli []Command) *Help {
	return &Help{
		cli: cli,
		out: os.Stdout,
	}
}

func (h *Help) Name() string {
	return "help"
}

func (h *Help) Description() string {
	return "Displays the usage guide or the help for a command"
}

func (h *Help) Usage() string {
	return "[command]"
}

func (h *Help) Help() {
	fmt.Fprintln(h.out)
	fmt.Fprintf(h.out, "  Usage: %s help [command]\n", APP)
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "  Displays the usage guide, or the detailed help for the command")
	fmt.Fprintln(h.out)
}

func (h *Help) FlagSet() *pflag.FlagSet {
	h.flags = pflag.NewFlagSet("help", pflag.ExitOnError)

	return h.flags
}

func (h *Help) Execute(ctx context.Context, options *Options) error {
	if h.flags != nil && h.flags.NArg() > 0 {
		name := h.flags.Arg(0)

		if name == h.Name() {
			h.Help()
			return nil
		}

		for _, c := range h.cli {
			if c.Name() == name {
				c.Help()
				return nil
			}
		}

		return fmt.Errorf("unknown command '%v'", name)
	}

	h.usage()

	return nil
}

func (h *Help) usage() {
	w := h.out

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Usage: %s [--debug] [--config <file>] <command> [options]\n", APP)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Keeps a set of child spreadsheets in a Google Drive folder in line with a template spreadsheet.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Commands:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    %-14s %s\n", h.Name(), h.Description())
	for _, c := range h.cli {
		fmt.Fprintf(w, "    %-14s %s\n", c.Name(), c.Description())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Getting started:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    1. authorise                  grant access to Google Sheets and Drive")
	fmt.Fprintln(w, "    2. set users|folder|title-append  names, Drive folder and title suffix for the child spreadsheets")
	fmt.Fprintln(w, "    3. create                     create a child spreadsheet for each name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Updating:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    update-range   copies the named range(s) containing a cell")
	fmt.Fprintln(w, "    update-sheet   replaces a sheet")
	fmt.Fprintln(w, "    update-all     replaces every sheet (resource intensive, use only for large scale changes)")
	fmt.Fprintln(w, "    protections    whether the template protections are applied to the child spreadsheets")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Use '%s help <command>' for the options of a command.\n", APP)
	fmt.Fprintln(w)
}
