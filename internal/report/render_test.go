package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsoncloak/jsoncloak/internal/engine"
	"github.com/jsoncloak/jsoncloak/internal/types"
)

func sample() engine.Result {
	return engine.Result{
		FilesFound: 3,
		Duration:   1200 * time.Millisecond,
		Outcomes: []types.Outcome{
			{Path: "entity/pig.json", NewPath: "entity/0cc175b9c0f1b6a831c399e269772661.json", Content: types.StatusEncrypted, Rename: types.StatusRenamed, Confused: true},
			{Path: "manifest.json", NewPath: "manifest.json", Content: types.StatusSkipped, Rename: types.StatusSkipped},
			{Path: "entity/bad.json", NewPath: "entity/bad.json", Content: types.StatusFailed, ErrorKind: types.KindParse, Error: "parse entity/bad.json: unexpected EOF"},
		},
	}
}

func TestPrintText_NoFiles_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, engine.Result{Duration: 1200 * time.Millisecond}, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "No JSON files found") {
		t.Fatalf("expected friendly empty message; got: %q", out)
	}
	if !strings.Contains(out, "Files found: 0") {
		t.Fatalf("expected footer with files found; got: %q", out)
	}
}

func TestPrintText_WithOutcomes(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample(), PrintOptions{NoColor: true})
	out := buf.String()
	assert.Contains(t, out, "entity/pig.json -> entity/0cc175b9c0f1b6a831c399e269772661.json")
	assert.Contains(t, out, "[ParseError] parse entity/bad.json")
	assert.Contains(t, out, "Encrypted: 1, renamed: 1, skipped: 1, cached: 0, failed: 1")
	assert.Contains(t, out, "Duration: 1.20s")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintText_DryRunFooter(t *testing.T) {
	res := engine.Result{FilesFound: 1, Outcomes: []types.Outcome{
		{Path: "entity/a.json", NewPath: "entity/a.json", Content: types.StatusPlanned, Rename: types.StatusPlanned},
	}}
	var buf bytes.Buffer
	PrintText(&buf, res, PrintOptions{NoColor: true, DryRun: true})
	assert.Contains(t, buf.String(), "Dry run: 1 to encrypt, 1 to rename")
}

func TestPrintTable_WithOutcomes(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sample(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "CONTENT") {
		t.Fatalf("expected table header with CONTENT; got: %q", out)
	}
	if !strings.Contains(out, "entity/pig.json") {
		t.Fatalf("expected path in table; got: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected table borders; got: %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, "/pack", sample(), PrintOptions{}))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "/pack", doc.Root)
	assert.Equal(t, 3, doc.FilesFound)
	assert.Equal(t, "1.2s", doc.Duration)
	assert.Equal(t, 1, doc.Summary.Failed)
	require.Len(t, doc.Outcomes, 3)
	assert.Equal(t, types.KindParse, doc.Outcomes[2].ErrorKind)
	assert.Empty(t, doc.Outcomes[1].ErrorKind)
}

func TestWriteJSON_EmptyOutcomesIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, ".", engine.Result{}, PrintOptions{}))
	assert.Contains(t, buf.String(), `"outcomes": []`)
}
