package core

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Smoke(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "entity", "pig.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(`{"a":"b"}`), 0o644))

	res, err := Run(context.Background(), Config{Root: root, Policy: DefaultPolicy()})
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 1)

	want, err := Transform([]byte(`{"a":"b"}`), CommentsCompat, true)
	require.NoError(t, err)
	assert.Equal(t, "entity/"+HashName(want), res.Outcomes[0].NewPath)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, root, res, false))
	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, root, doc.Root)
	assert.False(t, doc.DryRun)
	assert.Equal(t, 1, doc.FilesFound)
	assert.Equal(t, 1, doc.Summary.Encrypted)
	assert.Equal(t, 1, doc.Summary.Renamed)
	assert.Equal(t, res.Outcomes, doc.Outcomes)
}

func TestWriteReport_DryRunEmpty(t *testing.T) {
	res, err := Run(context.Background(), Config{Root: t.TempDir(), Policy: DefaultPolicy(), DryRun: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "data", res, true))
	assert.Contains(t, buf.String(), `"dry_run": true`)
	assert.Contains(t, buf.String(), `"outcomes": []`)
}

func TestRun_EmptyRoot(t *testing.T) {
	res, err := Run(context.Background(), Config{Root: t.TempDir(), Policy: DefaultPolicy()})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %d", len(res.Outcomes))
	}
}
