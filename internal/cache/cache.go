package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
)

type DB struct {
	// Path relative to the data root -> fingerprint of the bytes jsoncloak wrote
	Entries map[string]string `json:"entries"`
}

// FileName is the cache file written under the data root. It has no .json
// suffix so runs never pick it up as input.
const FileName = ".jsoncloak.cache"

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "jsoncloak.cache")
	}
	return filepath.Join(root, FileName)
}

func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(p, b, 0644)
}

// Fingerprint is a fast non-cryptographic hash of b as 16 hex digits.
func Fingerprint(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// Hit reports whether rel is recorded with the fingerprint of data.
func (db DB) Hit(rel string, data []byte) bool {
	want, ok := db.Entries[rel]
	return ok && want == Fingerprint(data)
}
