package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/propagate"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// reportFile is the layout of the --report YAML file.
type reportFile struct {
	Command   string            `yaml:"command"`
	Template  string            `yaml:"template"`
	Timestamp string            `yaml:"timestamp"`
	Summary   string            `yaml:"summary"`
	Report    *propagate.Report `yaml:"report"`
}

func printReport(w io.Writer, title string, report *propagate.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %v\n", titleStyle.Render(title))
	fmt.Fprintln(w)

	if report.OK() {
		fmt.Fprintf(w, "  %v\n", okStyle.Render(report.Summary()))
	} else {
		fmt.Fprintf(w, "  %v\n", failedStyle.Render(report.Summary()))
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, e := range report.Warnings {
			fmt.Fprintf(w, "  %v %v\n", warningStyle.Render("WARN "), line(e))
		}
	}

	if len(report.Failed) > 0 {
		fmt.Fprintln(w)
		for _, e := range report.Failed {
			fmt.Fprintf(w, "  %v %v\n", failedStyle.Render("ERROR"), line(e))
		}
	}

	fmt.Fprintln(w)
}

func line(e propagate.Entry) string {
	switch {
	case e.Sheet != "" && e.Message != "":
		return fmt.Sprintf("%v  %v  %v", e.Document, e.Sheet, e.Message)
	case e.Sheet != "":
		return fmt.Sprintf("%v  %v", e.Document, e.Sheet)
	default:
		return fmt.Sprintf("%v  %v", e.Document, e.Message)
	}
}

func writeReport(file string, command string, template string, report *propagate.Report, now time.Time) error {
	bytes, err := yaml.Marshal(reportFile{
		Command:   command,
		Template:  template,
		Timestamp: now.Format(time.DateTime),
		Summary:   report.Summary(),
		Report:    report,
	})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return err
		}
	}

	return os.WriteFile(file, bytes, 0660)
}
