package propagate

import (
	"fmt"
)

// Entry is a single line of a propagation report.
type Entry struct {
	DocumentID string `yaml:"document-id"`
	Document   string `yaml:"document"`
	Sheet      string `yaml:"sheet,omitempty"`
	Message    string `yaml:"message,omitempty"`
}

// Report summarises a propagation run. Updated lists pairs that were written over an existing
// sheet, Created the pairs where the sheet did not exist in the target yet.
type Report struct {
	Updated  []Entry `yaml:"updated,omitempty"`
	Created  []Entry `yaml:"created,omitempty"`
	Failed   []Entry `yaml:"failed,omitempty"`
	Warnings []Entry `yaml:"warnings,omitempty"`
}

func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}

	r.Updated = append(r.Updated, other.Updated...)
	r.Created = append(r.Created, other.Created...)
	r.Failed = append(r.Failed, other.Failed...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

func (r *Report) Summary() string {
	return fmt.Sprintf("updated:%v  created:%v  failed:%v  warnings:%v", len(r.Updated), len(r.Created), len(r.Failed), len(r.Warnings))
}

func (r *Report) updated(doc Document, sheet string) {
	r.Updated = append(r.Updated, entry(doc, sheet, ""))
}

func (r *Report) created(doc Document, sheet string) {
	r.Created = append(r.Created, entry(doc, sheet, ""))
}

func (r *Report) failed(doc Document, sheet string, err error) {
	r.Failed = append(r.Failed, entry(doc, sheet, err.Error()))
}

func (r *Report) warn(doc Document, sheet string, msg string) {
	r.Warnings = append(r.Warnings, entry(doc, sheet, msg))
}

func entry(doc Document, sheet string, msg string) Entry {
	e := Entry{
		Sheet:   sheet,
		Message: msg,
	}

	if doc != nil {
		e.DocumentID = doc.ID()
		e.Document = doc.Title()
	}

	return e
}
