// Package colons indents outline-numbered lines for wiki markup.
//
// A line that starts with a section marker such as "ยง1.2.3." gets one leading
// colon per nesting level below the top, so "ยง1.2.3.Title" becomes
// "::ยง1.2.3.Title". Every other line is returned untouched.
package colons

import "strings"

// Sigil opens every section marker. It is the UTF-8 section sign read back
// through a Thai code page, which is how the source documents arrive.
const Sigil = "ยง"

// Colonize rewrites every marked line in text. Lines are split and rejoined on
// "\n" only, so a missing or present trailing newline is preserved.
func Colonize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = colonizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func colonizeLine(line string) string {
	marker, rest, ok := MatchMarker(line)
	if !ok {
		return line
	}
	return strings.Repeat(":", Depth(marker)-1) + marker + rest
}

// MatchMarker splits line into a leading section marker and the remainder.
//
// The marker is the sigil followed by the longest run of ASCII digits and dots
// that ends in a dot, with at least one character of the run before that
// final dot. ok is false when line carries no such marker.
func MatchMarker(line string) (marker, rest string, ok bool) {
	if !strings.HasPrefix(line, Sigil) {
		return "", line, false
	}
	body := line[len(Sigil):]

	run := 0
	for run < len(body) && isIndexByte(body[run]) {
		run++
	}
	last := strings.LastIndexByte(body[:run], '.')
	if last < 1 {
		return "", line, false
	}

	end := len(Sigil) + last + 1
	return line[:end], line[end:], true
}

// Depth counts the dots in marker. A top-level marker ("ยง1.") has depth 1.
func Depth(marker string) int {
	return strings.Count(marker, ".")
}

func isIndexByte(b byte) bool {
	return b == '.' || ('0' <= b && b <= '9')
}
