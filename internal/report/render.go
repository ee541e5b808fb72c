package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/jsoncloak/jsoncloak/internal/engine"
	"github.com/jsoncloak/jsoncloak/internal/types"
)

type PrintOptions struct {
	NoColor bool
	DryRun  bool
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// PrintText writes one line per file followed by the summary footer.
func PrintText(w io.Writer, res engine.Result, opts PrintOptions) {
	if len(res.Outcomes) == 0 {
		fmt.Fprintln(w, "No JSON files found")
	}
	for _, o := range res.Outcomes {
		content := status(o.Content, opts.NoColor)
		rename := status(o.Rename, opts.NoColor)
		if o.Rename == "" {
			rename = "-"
		}
		line := fmt.Sprintf("%-9s %-9s %s", content, rename, o.Path)
		if o.NewPath != o.Path {
			line += " -> " + o.NewPath
		}
		if o.Failed() {
			line += fmt.Sprintf("  [%s] %s", o.ErrorKind, o.Error)
		}
		fmt.Fprintln(w, line)
	}
	printFooter(w, res, opts)
}

// PrintTable renders outcomes as a bordered table.
func PrintTable(w io.Writer, res engine.Result, opts PrintOptions) {
	if len(res.Outcomes) == 0 {
		fmt.Fprintln(w, "No JSON files found")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("PATH", "CONTENT", "RENAME", "NEW PATH", "ERROR")
		for _, o := range res.Outcomes {
			rename := status(o.Rename, opts.NoColor)
			if o.Rename == "" {
				rename = "-"
			}
			newPath := ""
			if o.NewPath != o.Path {
				newPath = o.NewPath
			}
			_ = table.Append([]string{o.Path, status(o.Content, opts.NoColor), rename, newPath, o.Error})
		}
		_ = table.Render()
	}
	printFooter(w, res, opts)
}

func printFooter(w io.Writer, res engine.Result, opts PrintOptions) {
	s := res.Summary()
	fmt.Fprintln(w)
	if opts.DryRun {
		fmt.Fprintf(w, "Dry run: %d to encrypt, %d to rename (nothing written)\n", s.Planned, countRename(res, types.StatusPlanned))
	} else {
		fmt.Fprintf(w, "Encrypted: %d, renamed: %d, skipped: %d, cached: %d, failed: %d\n",
			s.Encrypted, s.Renamed, s.Skipped, s.Cached, s.Failed)
	}
	if res.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", res.Duration.Seconds())
	}
	fmt.Fprintf(w, "Files found: %d\n", res.FilesFound)
}

func countRename(res engine.Result, st types.Status) int {
	n := 0
	for _, o := range res.Outcomes {
		if o.Rename == st {
			n++
		}
	}
	return n
}

func status(s types.Status, noColor bool) string {
	if noColor || s == "" {
		return string(s)
	}
	switch s {
	case types.StatusEncrypted, types.StatusRenamed:
		return okStyle.Render(string(s))
	case types.StatusFailed:
		return failStyle.Render(string(s))
	case types.StatusPlanned, types.StatusCached:
		return infoStyle.Render(string(s))
	default:
		return skipStyle.Render(string(s))
	}
}

// Document is the machine-readable report written by WriteJSON.
type Document struct {
	Root       string          `json:"root"`
	DryRun     bool            `json:"dry_run"`
	FilesFound int             `json:"files_found"`
	Duration   string          `json:"duration"`
	Summary    engine.Summary  `json:"summary"`
	Outcomes   []types.Outcome `json:"outcomes"`
}

// WriteJSON writes the run as an indented JSON document.
func WriteJSON(w io.Writer, root string, res engine.Result, opts PrintOptions) error {
	doc := Document{
		Root:       root,
		DryRun:     opts.DryRun,
		FilesFound: res.FilesFound,
		Duration:   res.Duration.Round(time.Millisecond).String(),
		Summary:    res.Summary(),
		Outcomes:   res.Outcomes,
	}
	if doc.Outcomes == nil {
		doc.Outcomes = []types.Outcome{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
