// Package classifier inspects free-text backend answers and reports what kind
// of response they look like. Classification is best effort: the backend does
// not tag its answers, so the flags come from marker substrings and a single
// extraction pattern.
package classifier

import (
	"regexp"
	"strings"
)

// Kind names a response kind for logging.
type Kind string

const (
	KindPositionList     Kind = "position_list"
	KindEvaluationResult Kind = "evaluation_result"
)

// Marker is a language-specific literal that identifies a response kind.
type Marker struct {
	Kind     Kind
	Language string
	Text     string
}

// Markers lists every marker the classifier looks for.
var Markers = []Marker{
	{Kind: KindPositionList, Language: "en", Text: "AVAILABLE POSITIONS"},
	{Kind: KindPositionList, Language: "vi", Text: "DANH SÁCH CÁC VỊ TRÍ"},
	{Kind: KindEvaluationResult, Language: "en", Text: "CV EVALUATION"},
	{Kind: KindEvaluationResult, Language: "vi", Text: "KẾT QUẢ ĐÁNH GIÁ"},
}

var positionPattern = regexp.MustCompile(`(?:Position|Vị Trí):\s*(\w[\w\s]*?)(?:\n|$)`)

// Classification holds independent flags; more than one may be set.
type Classification struct {
	IsPositionList     bool
	IsEvaluationResult bool
	// Position is meaningful only when HasPosition is true.
	Position    string
	HasPosition bool
}

// Classify is a pure function of answer.
func Classify(answer string) Classification {
	var c Classification

	for _, m := range Markers {
		if !strings.Contains(answer, m.Text) {
			continue
		}
		switch m.Kind {
		case KindPositionList:
			c.IsPositionList = true
		case KindEvaluationResult:
			c.IsEvaluationResult = true
		}
	}

	c.Position, c.HasPosition = ExtractPosition(answer)

	return c
}

// ExtractPosition returns the first "Position: <value>" (or "Vị Trí: <value>")
// value found in text, trimmed.
func ExtractPosition(text string) (string, bool) {
	match := positionPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	value := strings.TrimSpace(match[1])
	if value == "" {
		return "", false
	}

	return value, true
}

// Kinds lists the kinds that matched, in a stable order.
func (c Classification) Kinds() []string {
	kinds := make([]string, 0, 2)
	if c.IsPositionList {
		kinds = append(kinds, string(KindPositionList))
	}
	if c.IsEvaluationResult {
		kinds = append(kinds, string(KindEvaluationResult))
	}
	return kinds
}
