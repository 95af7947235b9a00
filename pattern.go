package walk

import (
	"strings"
)

// ParseWarning describes a pattern line that was skipped during parsing.
// Skipped lines never fail a walk; they are reported through the optional
// warning handler instead.
type ParseWarning struct {
	Pattern string // the problematic line, as written
	Message string // human-readable reason
	Line    int    // line number in the source file (1-indexed)
	Source  string // path of the file the line came from
}

// WarningHandler receives parse warnings as ignore files are loaded.
type WarningHandler func(warning ParseWarning)

// pattern is a single compiled ignore rule. Immutable once compiled.
type pattern struct {
	glob     string    // original line (for diagnostics)
	segments []segment // parsed segments for matching
	line     int       // line number in source file (1-indexed)
	negated  bool      // line started with !
	dirOnly  bool      // line ended with /
	anchored bool      // matches only relative to the pattern file's directory
}

// segment is one part of a pattern split by "/". A segment is either a
// literal, a glob (contains * ? [ or \), or a bare **.
type segment struct {
	value      string
	wildcard   bool // needs glob matching within the segment
	doubleStar bool // matches zero or more whole segments
}

// parsePattern parses a single ignore-file line. It returns a nil pattern for
// blank lines and comments, and a nil pattern plus a warning for lines that
// are malformed (empty after processing, trailing backslash, unterminated
// character class).
//
// When lower is true, literal pattern text is lowercased at compile time so
// matching only has to lower the candidate path.
func parsePattern(line string, lineNum int, lower bool) (*pattern, *ParseWarning) {
	line = trimTrailingWhitespace(line)

	if line == "" {
		return nil, nil
	}
	if strings.HasPrefix(line, "#") {
		return nil, nil
	}

	original := line

	// \! at the start escapes the bang; must be checked before !.
	negated := false
	if strings.HasPrefix(line, "\\!") {
		line = line[1:]
	} else if strings.HasPrefix(line, "!") {
		negated = true
		line = line[1:]
	}

	// \# after negation handling, so !\#foo works.
	if strings.HasPrefix(line, "\\#") {
		line = line[1:]
	}

	dirOnly := false
	if strings.HasSuffix(line, "/") {
		dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	if line == "" {
		return nil, &ParseWarning{
			Line:    lineNum,
			Pattern: original,
			Message: "pattern is empty after processing",
		}
	}

	// An odd number of trailing backslashes means a lone trailing \, which
	// never matches anything in git.
	if strings.HasSuffix(line, "\\") {
		bs := 0
		for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
			bs++
		}
		if bs%2 == 1 {
			return nil, &ParseWarning{
				Line:    lineNum,
				Pattern: original,
				Message: "trailing backslash is invalid (pattern never matches)",
			}
		}
	}

	anchored, line, emptyAfterSlash := determineAnchoring(line)
	if emptyAfterSlash {
		return nil, &ParseWarning{
			Line:    lineNum,
			Pattern: original,
			Message: "pattern is empty after removing leading slash",
		}
	}

	if lower {
		line = strings.ToLower(line)
	}

	segments, ok := parseSegments(line)
	if !ok {
		return nil, &ParseWarning{
			Line:    lineNum,
			Pattern: original,
			Message: "unterminated character class",
		}
	}

	return &pattern{
		glob:     original,
		line:     lineNum,
		negated:  negated,
		dirOnly:  dirOnly,
		anchored: anchored,
		segments: segments,
	}, nil
}

// determineAnchoring resolves the anchoring state of a pattern line.
// A pattern is anchored if it starts with / or contains an internal /
// (a **/ prefix keeps it floating). Returns the anchored flag, the trimmed
// line, and whether the line became empty after removing a leading slash.
func determineAnchoring(line string) (anchored bool, trimmed string, emptyAfterSlash bool) {
	if strings.HasPrefix(line, "/") {
		line = line[1:]
		if line == "" {
			return true, "", true
		}
		return true, line, false
	}
	if strings.Contains(line, "/") && !strings.HasPrefix(line, "**/") {
		return true, line, false
	}
	return false, line, false
}

// parseSegments splits a pattern by "/" and classifies each segment.
// Reports failure when any segment carries an unterminated character class.
func parseSegments(glob string) ([]segment, bool) {
	parts := strings.Split(glob, "/")
	segments := make([]segment, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		seg := segment{value: part}

		if part == "**" {
			seg.doubleStar = true
			seg.value = ""
		} else if strings.ContainsAny(part, "*?[\\") {
			if !validClassSyntax(part) {
				return nil, false
			}
			seg.wildcard = true
		}

		segments = append(segments, seg)
	}

	return segments, true
}

// validClassSyntax reports whether every [ in the segment opens a properly
// terminated character class. Escaped brackets are literals.
func validClassSyntax(part string) bool {
	for i := 0; i < len(part); i++ {
		switch part[i] {
		case '\\':
			i++ // skip the escaped character
		case '[':
			j := i + 1
			if j < len(part) && (part[j] == '!' || part[j] == '^') {
				j++
			}
			if j < len(part) && part[j] == ']' {
				j++ // a ] right after the opener is a literal
			}
			for j < len(part) && part[j] != ']' {
				if part[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(part) {
				return false
			}
			i = j
		}
	}
	return true
}

// String returns a debug representation of a pattern.
func (p *pattern) String() string {
	var flags []string
	if p.negated {
		flags = append(flags, "negated")
	}
	if p.dirOnly {
		flags = append(flags, "dirOnly")
	}
	if p.anchored {
		flags = append(flags, "anchored")
	}

	if len(flags) == 0 {
		return p.glob
	}
	return p.glob + " [" + strings.Join(flags, ",") + "]"
}
