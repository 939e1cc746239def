package gradebook

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// DefaultHeaderKeywords mark the column-title row above the student rows.
var DefaultHeaderKeywords = []string{"index", "student", "number", "no"}

// DefaultFooterKeywords mark the first row below the student rows.
// Turkish equivalents cover the templates this tool grew up with.
var DefaultFooterKeywords = []string{
	"total", "advisor", "average", "checker", "grade", "score",
	"toplam", "ortalama", "not ortalaması", "danışman", "puan",
}

// fold returns a case-folded copy of s for keyword comparison.
// Dotless ı is folded onto i so "DANIŞMAN" and "Danışman" compare equal.
// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return strings.ReplaceAll(cases.Fold().String(s), "ı", "i")
}

// keywordSet matches cell text against a fixed list of keywords.
// Keywords of two characters or fewer ("no") only match a whole word so that
// "Nora" or "Notes" do not count as a header.
type keywordSet struct {
	long  []string
	short []string
}

func newKeywordSet(keywords []string) keywordSet {
	var ks keywordSet
	for _, k := range keywords {
		k = fold(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if len([]rune(k)) <= 2 {
			ks.short = append(ks.short, k)
		} else {
			ks.long = append(ks.long, k)
		}
	}
	return ks
}

// match reports whether text contains one of the keywords.
func (ks keywordSet) match(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	folded := fold(text)
	for _, k := range ks.long {
		if strings.Contains(folded, k) {
			return true
		}
	}
	if len(ks.short) == 0 {
		return false
	}
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		for _, k := range ks.short {
			if w == k {
				return true
			}
		}
	}
	return false
}

func (ks keywordSet) empty() bool {
	return len(ks.long) == 0 && len(ks.short) == 0
}
