package walk

import (
	"bytes"
	"path/filepath"
	"strings"
)

// normalizeContent normalizes ignore-file content before parsing:
//
//  1. Strip UTF-8 BOMs (EF BB BF), looping for idempotency
//  2. Normalize CRLF to LF
//  3. Normalize standalone CR to LF (old Mac format)
//
// This keeps parsing consistent regardless of the file's origin platform.
func normalizeContent(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	for len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	return content
}

// trimTrailingWhitespace removes trailing spaces and tabs from a line,
// respecting backslash-escaped spaces per the gitignore spec:
//
//	"foo "    → "foo"    (trailing space stripped)
//	"foo\ "   → "foo "   (escaped space preserved, backslash removed)
//	"foo\\ "  → "foo\\"  (escaped backslash, unescaped space stripped)
func trimTrailingWhitespace(line string) string {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}

	if end == len(line) {
		return line
	}

	// Count consecutive backslashes immediately before the whitespace; an odd
	// count means the last one escapes the first space.
	bs := 0
	for i := end - 1; i >= 0 && line[i] == '\\'; i-- {
		bs++
	}
	if bs%2 == 1 && line[end] == ' ' {
		return line[:end-1] + " "
	}

	return line[:end]
}

// splitPath splits a slash-separated path into segments, dropping empty
// segments from leading, trailing, or doubled slashes.
func splitPath(path string) []string {
	if path == "" {
		return []string{}
	}

	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// slashPath converts an OS path to slash-separated form with no trailing
// slash (except for the bare filesystem root).
func slashPath(p string) string {
	p = filepath.ToSlash(p)
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// relativeTo returns path relative to dir (both slash-separated, as produced
// by slashPath) and whether path is at or below dir. An empty relative path
// means path == dir.
func relativeTo(dir, path string) (string, bool) {
	if dir == path {
		return "", true
	}

	prefix := dir
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return path[len(prefix):], true
}
