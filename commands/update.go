package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	gsheets "github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/google"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/settings"
)

const DEFAULT_LOG_RETENTION = 30

// update holds the options shared by the commands that write to the child spreadsheets.
type update struct {
	command

	report       string
	logRange     string
	logRetention uint
	dryrun       bool
}

// plan is what an update command propagates: the template sheets, the regions (none for whole
// sheets) and the protection descriptors (nil to leave protections alone).
type plan struct {
	target      string
	sources     []propagate.Sheet
	regions     []propagate.Region
	protections []propagate.Protection
}

var baseUpdate = update{
	command:      baseCommand,
	report:       "",
	logRange:     "",
	logRetention: DEFAULT_LOG_RETENTION,
	dryrun:       false,
}

func (u *update) flagset(name string) *pflag.FlagSet {
	flagset := u.command.flagset(name)

	flagset.StringVar(&u.report, "report", u.report, "Writes the update report to a YAML file")
	flagset.StringVar(&u.logRange, "log-range", u.logRange, "Template spreadsheet range for a run log e.g. 'Log!A1:G'. The log sheet is never propagated")
	flagset.UintVar(&u.logRetention, "log-retention", u.logRetention, fmt.Sprintf("Log sheet records older than 'log-retention' days are automatically pruned. Defaults to %v", u.logRetention))
	flagset.BoolVar(&u.dryrun, "dry-run", u.dryrun, "Lists the spreadsheets and sheets that would be updated without changing anything")

	return flagset
}

func (u *update) configure(options *Options) {
	u.command.configure(options)

	if options == nil || options.Config == nil {
		return
	}

	cfg := options.Config

	if cfg.LogRange != "" && (u.flags == nil || !u.flags.Changed("log-range")) {
		u.logRange = cfg.LogRange
	}

	if cfg.LogRetention > 0 && (u.flags == nil || !u.flags.Changed("log-retention")) {
		u.logRetention = cfg.LogRetention
	}
}

func (u *update) validate() (string, error) {
	id, err := u.command.validate()
	if err != nil {
		return "", err
	}

	if u.logRange != "" {
		if _, err := gsheets.LogSheet(u.logRange); err != nil {
			return "", err
		}
	}

	return id, nil
}

// run propagates the plan to every spreadsheet in the configured Drive folder.
func (u *update) run(ctx context.Context, name string, session *session, s *settings.Settings, p plan) error {
	targets, err := propagate.RequireDocuments(ctx, session.store, s.FolderID)
	if err != nil {
		return err
	}

	targets = exclude(targets, session.template.ID())
	if len(targets) == 0 {
		return propagate.ErrEmptyFolder
	}

	sources := u.withoutLogSheet(p.sources)

	debugf("%v  targets:%v  sheets:%v  regions:%v  protections:%v", name, len(targets), len(sources), len(p.regions), p.protections != nil)

	if u.dryrun {
		dryrun(targets, sources, p.regions, p.protections)
		return nil
	}

	reconciler, err := u.reconciler(ctx, session, s)
	if err != nil {
		return err
	}

	propagator := propagate.Propagator{
		Reconciler: reconciler,
	}

	report := propagator.Propagate(ctx, session.template, sources, targets, p.regions, p.protections)

	return u.finish(ctx, name, p.target, session, report)
}

func (u *update) reconciler(ctx context.Context, session *session, s *settings.Settings) (*propagate.Reconciler, error) {
	actor, err := session.store.Actor(ctx)
	if err != nil {
		return nil, err
	}

	return &propagate.Reconciler{
		Actor:  actor,
		Admins: s.Admins,
	}, nil
}

// finish prints the report, writes the report file and run log and returns an error if any
// update failed.
func (u *update) finish(ctx context.Context, name string, target string, session *session, report *propagate.Report) error {
	now := time.Now()

	printReport(os.Stdout, fmt.Sprintf("%v %v", name, session.template.Title()), report)

	if u.report != "" {
		if err := writeReport(u.report, name, session.template.Title(), report, now); err != nil {
			warnf("error writing report to %v (%v)", u.report, err)
		} else {
			infof("report written to %v", u.report)
		}
	}

	if u.logRange != "" {
		record := gsheets.LogRecord{
			Timestamp: now,
			Command:   name,
			Target:    target,
			Updated:   len(report.Updated),
			Created:   len(report.Created),
			Failed:    len(report.Failed),
			Warnings:  len(report.Warnings),
		}

		if err := session.template.AppendLog(ctx, u.logRange, record); err != nil {
			warnf("%v", err)
		} else if _, err := session.template.PruneLog(ctx, u.logRange, u.logRetention, now); err != nil {
			warnf("%v", err)
		}
	}

	if !report.OK() {
		return fmt.Errorf("%v of %v updates failed", len(report.Failed), len(report.Failed)+len(report.Updated)+len(report.Created))
	}

	return nil
}

func (u *update) withoutLogSheet(sheets []propagate.Sheet) []propagate.Sheet {
	if u.logRange == "" {
		return sheets
	}

	title, err := gsheets.LogSheet(u.logRange)
	if err != nil {
		return sheets
	}

	list := []propagate.Sheet{}
	for _, s := range sheets {
		if !strings.EqualFold(strings.TrimSpace(s.Title), strings.TrimSpace(title)) {
			list = append(list, s)
		}
	}

	return list
}

// exclude removes the template spreadsheet from the targets, for when it is kept in the same
// folder as the child spreadsheets.
func exclude(documents []propagate.Document, id string) []propagate.Document {
	list := []propagate.Document{}
	for _, d := range documents {
		if d.ID() != id {
			list = append(list, d)
		}
	}

	return list
}

func dryrun(targets []propagate.Document, sheets []propagate.Sheet, regions []propagate.Region, protections []propagate.Protection) {
	fmt.Println()
	fmt.Println("  Dry run, nothing will be changed")
	fmt.Println()

	for _, t := range targets {
		fmt.Printf("  %v\n", t.Title())
		for _, s := range sheets {
			fmt.Printf("    %v\n", s.Title)
		}
	}

	if len(regions) > 0 {
		fmt.Println()
		fmt.Println("  Ranges:")
		for _, r := range regions {
			fmt.Printf("    %v\n", r)
		}
	}

	if protections != nil {
		fmt.Println()
		fmt.Printf("  Protections: %v\n", len(protections))
		for _, p := range protections {
			scope := p.Sheet
			if p.Region != nil {
				scope = p.Region.A1()
			}

			fmt.Printf("    %-24v %v\n", scope, strings.Join(p.Editors, ","))
		}
	}

	fmt.Println()
}

// sheetProtections returns the whole-sheet protections of the template sheets.
func sheetProtections(ctx context.Context, template propagate.Document, sheets []propagate.Sheet) ([]propagate.Protection, error) {
	list := []propagate.Protection{}
	for _, sheet := range sheets {
		protections, err := template.Protections(ctx, sheet)
		if err != nil {
			return nil, err
		}

		for _, p := range protections {
			if p.IsSheet() {
				list = append(list, p)
			}
		}
	}

	return list, nil
}

// rangeProtections returns the range protections lying entirely within any of the regions.
func rangeProtections(protections []propagate.Protection, regions []propagate.Region) []propagate.Protection {
	list := []propagate.Protection{}
	for _, p := range protections {
		if p.IsSheet() {
			continue
		}

		for _, r := range regions {
			if p.Region.Within(r) {
				list = append(list, p)
				break
			}
		}
	}

	return list
}
