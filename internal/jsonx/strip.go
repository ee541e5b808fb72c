package jsonx

import (
	"fmt"
	"regexp"
	"strings"
)

// CommentMode selects how comments are removed before parsing.
type CommentMode string

const (
	// CommentsCompat strips comment tokens anywhere in the text, including
	// inside string literals.
	CommentsCompat CommentMode = "compat"
	// CommentsAware leaves comment tokens inside string literals alone.
	CommentsAware CommentMode = "aware"
)

// ParseCommentMode maps a config value to a CommentMode. Empty means compat.
func ParseCommentMode(s string) (CommentMode, error) {
	switch CommentMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CommentsCompat:
		return CommentsCompat, nil
	case CommentsAware:
		return CommentsAware, nil
	}
	return "", fmt.Errorf("unknown comment mode %q (want compat or aware)", s)
}

var (
	lineComment  = regexp.MustCompile(`//.*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// Strip removes comments using the given mode.
func Strip(mode CommentMode, s string) string {
	if mode == CommentsAware {
		return StripCommentsAware(s)
	}
	return StripComments(s)
}

// StripComments removes // line comments, then /* */ block comments, then
// trims surrounding whitespace. It works on raw text: "http://x" inside a
// string value loses everything from the slashes to the end of the line.
func StripComments(s string) string {
	s = lineComment.ReplaceAllString(s, "")
	s = blockComment.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// StripCommentsAware removes comments outside of string literals only. An
// unterminated block comment swallows the rest of the input.
func StripCommentsAware(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				end := strings.IndexByte(s[i:], '\n')
				if end < 0 {
					i = len(s)
				} else {
					// keep the newline itself
					i += end - 1
				}
				continue
			case '*':
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					i = len(s)
				} else {
					i += 2 + end + 1
				}
				continue
			}
		}
		b.WriteByte(c)
	}
	return strings.TrimSpace(b.String())
}
