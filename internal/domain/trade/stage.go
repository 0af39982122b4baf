package trade

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// OrderStage is the simplified workflow shown on the order detail view.
// The accounting service keeps arbitrary status records; the stage is only
// derived from the status label and never stored.
type OrderStage string

const (
	StageEditing   OrderStage = "EDITING"
	StagePreparing OrderStage = "PREPARING"
	StageDelivered OrderStage = "DELIVERED"
)

// Stages lists the stages in workflow order.
var Stages = []OrderStage{StageEditing, StagePreparing, StageDelivered}

// stageLabels are the labels the back office itself shows for each stage.
var stageLabels = map[OrderStage][]string{
	StageEditing:   {"Đang soạn", "Editing"},
	StagePreparing: {"Đang chuẩn bị", "Preparing"},
	StageDelivered: {"Đã giao", "Delivered"},
}

// stage label keywords, matched as whole words after FoldLabel
var stageKeywords = []struct {
	stage    OrderStage
	keywords []string
}{
	{StageDelivered, []string{"da giao", "hoan thanh", "delivered", "complete", "completed", "closed", "shipped", "finished", "done"}},
	{StagePreparing, []string{"chuan bi", "dang xu ly", "dang giao", "cho giao", "preparing", "prepared", "in progress", "processing", "ready", "in transit", "delivering"}},
	{StageEditing, []string{"soan", "moi", "edit", "editing", "draft", "new"}},
}

// words that negate the rest of a label ("Chưa hoàn thành", "Not delivered")
var negations = map[string]bool{"chua": true, "khong": true, "not": true, "non": true, "never": true}

// keywordWords holds every single word used by stageKeywords; a word made of
// a negating prefix plus one of them ("undelivered", "incomplete") negates too.
var keywordWords = func() map[string]bool {
	words := make(map[string]bool)
	for _, sk := range stageKeywords {
		for _, kw := range sk.keywords {
			for _, w := range strings.Fields(kw) {
				words[w] = true
			}
		}
	}
	return words
}()

// StageFromLabel maps a status label to a stage. Unknown and negated labels
// map to Editing.
func StageFromLabel(label string) OrderStage {
	if st, ok := ParseStageLabel(label); ok {
		return st
	}
	return StageEditing
}

// ParseStageLabel derives the stage named by label. It reports false for
// empty, unknown or negated labels.
func ParseStageLabel(label string) (OrderStage, bool) {
	words := labelWords(label)
	if len(words) == 0 || isNegated(words) {
		return "", false
	}
	for _, sk := range stageKeywords {
		for _, kw := range sk.keywords {
			if containsPhrase(words, strings.Fields(kw)) {
				return sk.stage, true
			}
		}
	}
	return "", false
}

// IsCanonicalLabel reports whether label is one of the stage's own labels,
// ignoring case, spacing and diacritics.
func (s OrderStage) IsCanonicalLabel(label string) bool {
	folded := FoldLabel(label)
	for _, l := range stageLabels[s] {
		if FoldLabel(l) == folded {
			return true
		}
	}
	return false
}

func labelWords(label string) []string {
	return strings.FieldsFunc(FoldLabel(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isNegated(words []string) bool {
	for _, w := range words {
		if negations[w] {
			return true
		}
		for _, prefix := range []string{"un", "in", "non"} {
			if rest, ok := strings.CutPrefix(w, prefix); ok && keywordWords[rest] {
				return true
			}
		}
	}
	return false
}

func containsPhrase(words, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			if words[i+j] != p {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Next returns the following stage and false when the stage is terminal.
func (s OrderStage) Next() (OrderStage, bool) {
	switch s {
	case StageEditing:
		return StagePreparing, true
	case StagePreparing:
		return StageDelivered, true
	}
	return s, false
}

// IsTerminal reports whether no further stage follows.
func (s OrderStage) IsTerminal() bool {
	_, ok := s.Next()
	return !ok
}

// Index returns the position of the stage in Stages, or -1.
func (s OrderStage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// MatchesLabel reports whether label positively names s. Unknown and
// negated labels match no stage.
func (s OrderStage) MatchesLabel(label string) bool {
	st, ok := ParseStageLabel(label)
	return ok && st == s
}

// FoldLabel lower-cases a label and strips Vietnamese diacritics so
// "Đã giao" and "da giao" compare equal.
func FoldLabel(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, label)
	if err != nil {
		out = label
	}
	out = strings.NewReplacer("đ", "d", "Đ", "d").Replace(out)
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
