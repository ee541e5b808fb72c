package engine

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
)

// ContentHash returns the lowercase hex MD5 of b. It names files, it does
// not protect them.
func ContentHash(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// RenameResult is the outcome of RenameToHash.
type RenameResult struct {
	Path      string
	Renamed   bool
	Duplicate bool // target already existed and was replaced
}

// RenameToHash renames the file at path to <md5>.json in the same directory.
// It is a no-op when the file already carries that name. rel is used in errors.
func RenameToHash(path, rel string) (RenameResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenameResult{Path: path}, &IOError{Op: "hash", Path: rel, Err: err}
	}
	target := filepath.Join(filepath.Dir(path), ContentHash(data)+".json")
	if filepath.Clean(target) == filepath.Clean(path) {
		return RenameResult{Path: path}, nil
	}
	_, statErr := os.Stat(target)
	if err := os.Rename(path, target); err != nil {
		return RenameResult{Path: path}, &IOError{Op: "rename", Path: rel, Err: err}
	}
	return RenameResult{Path: target, Renamed: true, Duplicate: statErr == nil}, nil
}
