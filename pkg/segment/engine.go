// Package segment implements the pattern library and segmentation engine for
// Diário Oficial editions. The engine applies one matcher per record kind to
// normalized document text in a single deterministic pass and produces the
// five typed record collections. Malformed candidates are dropped and
// counted, never raised: unmatched text is expected background content
// (section headers, signatures, unrelated announcements).
package segment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

// document is the engine's working view of one normalized edition: the
// contiguous text for span matchers, the line sequence for line-walking
// matchers, and the set of lines already consumed by the order line-scan
// pass (excluded from the regex subtype passes to avoid duplicate records).
type document struct {
	text       string
	lines      []string
	lineStarts []int
	consumed   []bool
}

func newDocument(text string) *document {
	lines := strings.Split(text, "\n")
	lineStarts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		lineStarts[i] = offset
		offset += len(line) + 1
	}
	return &document{
		text:       text,
		lines:      lines,
		lineStarts: lineStarts,
		consumed:   make([]bool, len(lines)),
	}
}

// lineAt returns the index of the line containing the given byte offset.
func (d *document) lineAt(offset int) int {
	idx := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// consume marks the half-open line range [from, to) as consumed.
func (d *document) consume(from, to int) {
	for i := from; i < to && i < len(d.consumed); i++ {
		d.consumed[i] = true
	}
}

// matcher extracts one record kind from a document. Matchers run in a fixed
// precedence order and append to the shared record set.
type matcher interface {
	name() string
	match(doc *document, out *gazette.RecordSet)
}

// Engine applies the pattern library to normalized edition text.
// An Engine is immutable after construction and safe for concurrent use:
// Segment only reads the compiled patterns and profile.
type Engine struct {
	profile  Profile
	matchers []matcher
}

// NewEngine creates an engine configured by the given profile. The order
// matchers are selected by the profile's strategy: line-scan as primary with
// the composed regexes as fallback over unconsumed spans, or regex-only.
func NewEngine(profile Profile) *Engine {
	engine := &Engine{profile: profile}
	engine.matchers = append(engine.matchers, &decreeMatcher{captureAnnex: profile.CaptureDecreeAnnex})

	switch profile.OrderStrategy {
	case StrategyRegex:
		engine.matchers = append(engine.matchers, &orderRegexMatcher{profile: profile})
	default:
		engine.matchers = append(engine.matchers,
			&orderLineScanMatcher{profile: profile},
			&orderRegexMatcher{profile: profile},
		)
	}

	engine.matchers = append(engine.matchers, &annulmentMatcher{}, &correctionMatcher{})
	return engine
}

// Default returns an engine with the most complete capture profile.
func Default() *Engine {
	return NewEngine(DefaultProfile())
}

// Segment runs a single pass over normalized edition text and returns the
// typed record collections. Pure: the same input always yields the same
// record set, so concurrent per-document calls need no coordination.
func (e *Engine) Segment(text string) gazette.RecordSet {
	doc := newDocument(text)
	var set gazette.RecordSet

	for _, m := range e.matchers {
		m.match(doc, &set)
	}

	// Order candidates are counted from anchor lines rather than inside the
	// matchers, so the line-scan and regex passes never double-count a
	// candidate recovered by the fallback.
	dropped := countOrderCandidates(doc) - len(set.Appointments) - len(set.Dismissals)
	if dropped > 0 {
		set.Diagnostics.DroppedOrders = dropped
	}

	return set
}

// Profile returns the profile the engine was built with.
func (e *Engine) Profile() Profile {
	return e.profile
}

// countOrderCandidates counts anchor lines whose verb classifies them as an
// appointment or dismissal candidate.
func countOrderCandidates(doc *document) int {
	count := 0
	for _, line := range doc.lines {
		if !orderAnchorPattern.MatchString(line) {
			continue
		}
		if appointmentVerbPattern.MatchString(line) || dismissalVerbPattern.MatchString(line) {
			count++
		}
	}
	return count
}

// whitespaceRunPattern collapses the space runs left behind when lines are
// joined or newlines replaced.
var whitespaceRunPattern = regexp.MustCompile(`[ \t]{2,}`)

// cleanField applies the systematic field cleanup: newlines become spaces,
// space runs collapse, surrounding whitespace is trimmed.
func cleanField(field string) string {
	field = strings.ReplaceAll(field, "\n", " ")
	field = whitespaceRunPattern.ReplaceAllString(field, " ")
	return strings.TrimSpace(field)
}

// orAbsent normalizes an optional field: empty becomes the absent sentinel.
func orAbsent(field string) string {
	if field == "" {
		return gazette.FieldAbsent
	}
	return field
}

// textBefore returns the prefix of s up to the earliest of the given
// separators, or all of s if none occurs.
func textBefore(s string, separators ...string) string {
	cut := len(s)
	for _, sep := range separators {
		if idx := strings.Index(s, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return s[:cut]
}
