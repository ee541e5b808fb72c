package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jsoncloak/jsoncloak/internal/engine"
)

// RunRecord is one line of the audit log: what a single run did to a data
// directory. Contents of files are never recorded.
type RunRecord struct {
	Timestamp   time.Time      `json:"timestamp"`
	RunID       string         `json:"run_id"`
	Root        string         `json:"root"`
	DryRun      bool           `json:"dry_run,omitempty"`
	FilesFound  int            `json:"files_found"`
	Summary     engine.Summary `json:"summary"`
	Duration    string         `json:"duration"`
	FailedPaths []string       `json:"failed_paths,omitempty"`
	Renames     []Rename       `json:"renames,omitempty"`
}

// Rename maps an original relative path to its content-hash name.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog returns a log stored next to the data: inside .git when the
// root is a repository, otherwise as .jsoncloak_audit.jsonl in the root.
func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".jsoncloak_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "jsoncloak_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Malformed lines are skipped.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

func CreateRunRecord(root string, res engine.Result, dryRun bool) RunRecord {
	rec := RunRecord{
		Timestamp:  time.Now(),
		RunID:      uuid.NewString(),
		Root:       root,
		DryRun:     dryRun,
		FilesFound: res.FilesFound,
		Summary:    res.Summary(),
		Duration:   res.Duration.String(),
	}
	for _, o := range res.Outcomes {
		if o.Failed() {
			rec.FailedPaths = append(rec.FailedPaths, o.Path)
		}
		if o.NewPath != o.Path {
			rec.Renames = append(rec.Renames, Rename{From: o.Path, To: o.NewPath})
		}
	}
	return rec
}
