package types

// Status is the result of one pipeline stage for a file.
type Status string

const (
	// content stage
	StatusEncrypted Status = "encrypted"
	StatusSkipped   Status = "skipped"
	StatusCached    Status = "cached"
	StatusPlanned   Status = "planned"
	StatusFailed    Status = "failed"

	// rename stage
	StatusRenamed   Status = "renamed"
	StatusUnchanged Status = "unchanged"
)

// ErrorKind classifies a per-file failure.
type ErrorKind string

const (
	KindParse ErrorKind = "ParseError"
	KindIO    ErrorKind = "IOError"
)

// Outcome describes what happened to a single file during a run. Paths are
// relative to the data root. Rename is empty when the rename stage was never
// reached.
type Outcome struct {
	Path      string    `json:"path"`
	NewPath   string    `json:"new_path"`
	Content   Status    `json:"content"`
	Rename    Status    `json:"rename,omitempty"`
	Confused  bool      `json:"confused,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Failed reports whether either stage failed.
func (o Outcome) Failed() bool {
	return o.Content == StatusFailed || o.Rename == StatusFailed
}
