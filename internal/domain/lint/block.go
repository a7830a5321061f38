package lint

import "strings"

// closerFor returns the closing delimiter for an opener, or 0.
func closerFor(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return 0
	}
}

// isCommentLine reports whether the trimmed line is a comment line.
func isCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "//") || strings.HasPrefix(t, "/*") || strings.HasPrefix(t, "*")
}

// lineBalance returns opens minus closes for one delimiter pair. Comment
// lines count as zero. Delimiters inside string literals are still counted.
func lineBalance(line string, open, close byte) int {
	if isCommentLine(line) {
		return 0
	}
	n := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case open:
			n++
		case close:
			n--
		}
	}
	return n
}

// clampedDepth walks the line left to right and never lets the running depth
// drop below zero, so a leading "}" (as in "} catch (e) {") does not cancel
// the opener that follows it.
func clampedDepth(line string, open, close byte) int {
	if isCommentLine(line) {
		return 0
	}
	depth := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case open:
			depth++
		case close:
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}

// FindBlockEnd returns the index of the line where the block opened on
// lines[start] closes. open is '{', '(' or '['.
//
// The start line seeds the depth with a clamped scan; every following line
// adds its net balance and the scan stops at the first line where the depth
// returns to zero. A start line with no opener, or whose block closes on
// the same line, ends on itself. If the delimiters never balance, the last
// line index is returned. The function never panics: an out-of-range start
// is clamped into the file, and an empty file yields 0.
func FindBlockEnd(lines []string, start int, open byte) int {
	if len(lines) == 0 {
		return 0
	}
	if start < 0 {
		start = 0
	}
	last := len(lines) - 1
	if start > last {
		return last
	}
	close := closerFor(open)
	if close == 0 {
		return start
	}

	depth := clampedDepth(lines[start], open, close)
	if depth <= 0 {
		return start
	}
	for i := start + 1; i <= last; i++ {
		depth += lineBalance(lines[i], open, close)
		if depth <= 0 {
			return i
		}
	}
	return last
}

// openerLine returns the first line at or after from, and at most limit
// lines further, that holds open. A line ending in ";" stops the search.
// Returns -1 when there is none.
func openerLine(lines []string, from, limit int, open byte) int {
	for i := max(from, 0); i < len(lines) && i <= from+limit; i++ {
		if !isCommentLine(lines[i]) && strings.IndexByte(lines[i], open) >= 0 {
			return i
		}
		if strings.HasSuffix(strings.TrimSpace(lines[i]), ";") {
			return -1
		}
	}
	return -1
}

// EnclosingBlockStarts returns the indices of lines holding the unmatched
// '{' openers that enclose lines[idx], innermost first. Scanning runs
// backward character by character, so "} catch (e) {" is recognized as the
// opener of the catch body.
func EnclosingBlockStarts(lines []string, idx int) []int {
	if idx <= 0 || len(lines) == 0 {
		return nil
	}
	if idx > len(lines) {
		idx = len(lines)
	}
	var starts []int
	depth := 0
	for i := idx - 1; i >= 0; i-- {
		line := lines[i]
		if isCommentLine(line) {
			continue
		}
		for j := len(line) - 1; j >= 0; j-- {
			switch line[j] {
			case '}':
				depth--
			case '{':
				depth++
				if depth > 0 {
					if len(starts) == 0 || starts[len(starts)-1] != i {
						starts = append(starts, i)
					}
					depth = 0
				}
			}
		}
	}
	return starts
}

// span is an inclusive, 0-based line range.
type span struct {
	start int
	end   int
}

// lines returns the number of lines covered by the span.
func (s span) lines() int {
	return s.end - s.start + 1
}
