package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/jsoncloak/jsoncloak/internal/jsonx"
)

// ConfusionSuffix is appended after the serialized body of files in a
// confusion folder. It is deliberately not a valid JSON continuation.
var ConfusionSuffix = []byte(`,{[
"13":"\u0071\u0065\u0077\u0062\u0074\u0072\u0077\u0064",
"
\u201c\u541b\u5b50\u52a0\u5bc6\u201d:"""
}]]}`)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalidUTF8 is returned by Transform for content that is not UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// Transform turns raw file content into its obfuscated form: strip comments,
// parse, escape every string and key, write compactly and optionally append
// the confusion suffix. A parse failure is returned unwrapped.
func Transform(raw []byte, mode jsonx.CommentMode, confuse bool) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return nil, ErrInvalidUTF8
	}
	text := jsonx.Strip(mode, string(raw))
	v, err := jsonx.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	out := jsonx.MarshalCompact(jsonx.Escape(v))
	if confuse {
		out = append(out, ConfusionSuffix...)
	}
	return out, nil
}

// EncryptFile rewrites the file at path in place. rel is used in errors.
func EncryptFile(path, rel string, mode jsonx.CommentMode, confuse bool) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: rel, Err: err}
	}
	out, err := Transform(raw, mode, confuse)
	if err != nil {
		return nil, &ParseError{Path: rel, Err: err}
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := writeFileAtomic(path, out, perm); err != nil {
		return nil, &IOError{Op: "write", Path: rel, Err: err}
	}
	return out, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path, so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
