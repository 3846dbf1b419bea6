package matching

import (
	"fmt"
	"regexp"
	"strings"
)

// pathChars is the character class allowed inside one path segment.
// Word characters plus the punctuation that may appear unescaped in a
// URI path segment.
const pathChars = `[\w\-.~%!$&'()*+,;=:@]`

const (
	segmentPattern      = `/(` + pathChars + `*)`
	multiSegmentPattern = `/(` + pathChars + `*(?:/` + pathChars + `*)*)`
)

var segmentRegexp = regexp.MustCompile(`^` + pathChars + `*$`)

// Score is the specificity score of a compiled pattern. Scores compare
// lexicographically: first by multi-segment wildcard count, then by
// single-segment wildcard count. A lower score is more specific and
// sorts earlier in the route list.
type Score struct {
	MultiWildcards int
	Wildcards      int
}

// Less reports whether s is strictly more specific than other.
func (s Score) Less(other Score) bool {
	if s.MultiWildcards != other.MultiWildcards {
		return s.MultiWildcards < other.MultiWildcards
	}
	return s.Wildcards < other.Wildcards
}

// Pattern is a compiled route pattern. Immutable once compiled and safe
// for concurrent use.
type Pattern struct {
	source string
	expr   string
	re     *regexp.Regexp
	score  Score
}

// Compile parses a route pattern into a Pattern. Each non-empty segment
// must consist only of allowed path characters; any other character
// fails compilation with an error naming the pattern.
func Compile(pattern string) (*Pattern, error) {
	var b strings.Builder
	b.Grow(len(pattern) + 5)
	b.WriteByte('^')

	var score Score
	for _, segment := range strings.Split(pattern, "/") {
		if segment == "" {
			continue
		}
		if !segmentRegexp.MatchString(segment) {
			return nil, fmt.Errorf("invalid character in route pattern %q", pattern)
		}

		switch segment {
		case "*":
			score.Wildcards++
			b.WriteString(segmentPattern)
		case "**":
			score.MultiWildcards++
			b.WriteString(multiSegmentPattern)
		default:
			b.WriteByte('/')
			b.WriteString(regexp.QuoteMeta(segment))
		}
	}
	b.WriteString(`/?$`)

	expr := b.String()
	re, err := regexp.Compile(expr)
	if err != nil {
		// The generated expression is built from validated segments.
		return nil, fmt.Errorf("route pattern %q compiled to invalid regexp: %w", pattern, err)
	}

	return &Pattern{
		source: pattern,
		expr:   expr,
		re:     re,
		score:  score,
	}, nil
}

// Match reports whether path matches the pattern. A trailing slash on
// the path is optional.
func (p *Pattern) Match(path string) bool {
	return p.re.MatchString(path)
}

// Score returns the pattern's specificity score.
func (p *Pattern) Score() Score {
	return p.score
}

// Regexp returns a fresh regexp instance for the pattern. The rewriter
// needs its own instance so capture groups can be addressed by position
// independently of the matcher.
func (p *Pattern) Regexp() *regexp.Regexp {
	return regexp.MustCompile(p.expr)
}

// String returns the original pattern source.
func (p *Pattern) String() string {
	return p.source
}
