package gradebook

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellRefRegex matches A1-style references with optional $ anchors on column and row.
// Sheet prefixes are not part of the match: the reference after "Sheet1!" or
// "'My Sheet'!" shifts the same way as an unqualified one.
var cellRefRegex = regexp.MustCompile(`(\$?)([A-Z]{1,3})(\$?)([0-9]{1,7})`)

// TranslateFormula shifts every relative reference in formula by dRow rows and
// dCol columns, the way a spreadsheet does on fill-down. "$"-anchored parts stay.
// Text inside string literals, quoted sheet names and bracketed structured
// references is copied untouched. A reference that would move off the sheet, or
// a reference into an external workbook, yields an error wrapping
// ErrFormulaTranslate; callers fall back to the verbatim formula.
func TranslateFormula(formula string, dRow, dCol int) (string, error) {
	if formula == "" || (dRow == 0 && dCol == 0) {
		return formula, nil
	}

	var b strings.Builder
	b.Grow(len(formula) + 8)

	i := 0
	for i < len(formula) {
		switch formula[i] {
		case '"', '\'':
			j := skipQuoted(formula, i)
			if formula[i] == '\'' && i+1 < j && formula[i+1] == '[' {
				if _, inner := skipBracket(formula[:j], i+1); isExternalBook(inner) {
					return formula, fmt.Errorf("%w: external workbook reference [%s]", ErrFormulaTranslate, inner)
				}
			}
			b.WriteString(formula[i:j])
			i = j
		case '[':
			j, inner := skipBracket(formula, i)
			if isExternalBook(inner) {
				return formula, fmt.Errorf("%w: external workbook reference [%s]", ErrFormulaTranslate, inner)
			}
			b.WriteString(formula[i:j])
			i = j
		default:
			j := i
			for j < len(formula) && !strings.ContainsRune(`"'[`, rune(formula[j])) {
				j++
			}
			shifted, err := shiftRefs(formula, i, j, dRow, dCol)
			if err != nil {
				return formula, err
			}
			b.WriteString(shifted)
			i = j
		}
	}
	return b.String(), nil
}

// shiftRefs rewrites the references found in formula[start:end].
// The whole formula is passed so boundary checks can look past the segment.
func shiftRefs(formula string, start, end, dRow, dCol int) (string, error) {
	seg := formula[start:end]
	matches := cellRefRegex.FindAllStringSubmatchIndex(seg, -1)
	if len(matches) == 0 {
		return seg, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !isRefBoundary(formula, start+m[0], start+m[1]) {
			continue
		}
		colAbs := m[3] > m[2]
		rowAbs := m[7] > m[6]
		col, err := excelize.ColumnNameToNumber(seg[m[4]:m[5]])
		if err != nil {
			continue // "ZZZ9" and friends are names, not cells
		}
		row, err := strconv.Atoi(seg[m[8]:m[9]])
		if err != nil || row < 1 || row > excelize.TotalRows {
			continue
		}

		if !colAbs {
			col += dCol
		}
		if !rowAbs {
			row += dRow
		}
		if col < 1 || col > excelize.MaxColumns || row < 1 || row > excelize.TotalRows {
			return "", fmt.Errorf("%w: %s moves off the sheet", ErrFormulaTranslate, seg[m[0]:m[1]])
		}

		b.WriteString(seg[last:m[0]])
		if colAbs {
			b.WriteByte('$')
		}
		b.WriteString(ColToName(col))
		if rowAbs {
			b.WriteByte('$')
		}
		b.WriteString(strconv.Itoa(row))
		last = m[1]
	}
	b.WriteString(seg[last:])
	return b.String(), nil
}

// isRefBoundary reports whether formula[s:e] stands alone as a reference rather
// than being part of a function name (LOG10), a defined name or a sheet name.
func isRefBoundary(formula string, s, e int) bool {
	if s > 0 && isNameByte(formula[s-1]) {
		return false
	}
	if e < len(formula) {
		next := formula[e]
		if isNameByte(next) || next == '(' || next == '!' || next == '[' {
			return false
		}
	}
	return true
}

func isNameByte(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// skipQuoted returns the index just past the quoted run starting at i.
// A doubled quote character is an escaped quote.
func skipQuoted(s string, i int) int {
	q := s[i]
	j := i + 1
	for j < len(s) {
		if s[j] == q {
			if j+1 < len(s) && s[j+1] == q {
				j += 2
				continue
			}
			return j + 1
		}
		j++
	}
	return len(s)
}

// skipBracket returns the index just past the bracket group starting at i and
// the text between the outermost brackets.
func skipBracket(s string, i int) (int, string) {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return j + 1, s[i+1 : j]
			}
		}
	}
	return len(s), s[i+1:]
}

// isExternalBook tells an external workbook index ("[1]Sheet!A1") or path
// apart from a structured table reference ("Table1[Score]").
func isExternalBook(inner string) bool {
	if inner == "" {
		return false
	}
	if _, err := strconv.Atoi(inner); err == nil {
		return true
	}
	lower := strings.ToLower(inner)
	return strings.Contains(lower, ".xl") || strings.ContainsAny(inner, `/\`)
}

// RenameSheetRefs points every reference to sheet old at sheet title instead.
// Both Old!A1 and 'Old'!A1 forms are matched case-insensitively; the new
// prefix is always quoted since a title such as "A1.01" reads like a cell.
// String literals, structured references and external book references are
// left alone. It reports whether anything changed.
func RenameSheetRefs(formula, old, title string) (string, bool) {
	if old == "" || !strings.Contains(formula, "!") {
		return formula, false
	}
	prefix := quoteSheetName(title) + "!"

	var b strings.Builder
	b.Grow(len(formula) + len(prefix))
	changed := false
	i := 0
	for i < len(formula) {
		switch c := formula[i]; c {
		case '"':
			j := skipQuoted(formula, i)
			b.WriteString(formula[i:j])
			i = j
		case '\'':
			j := skipQuoted(formula, i)
			if j < len(formula) && formula[j] == '!' && strings.EqualFold(unquoteSheetName(formula[i:j]), old) {
				b.WriteString(prefix)
				i = j + 1
				changed = true
				continue
			}
			b.WriteString(formula[i:j])
			i = j
		case '[':
			j, _ := skipBracket(formula, i)
			b.WriteString(formula[i:j])
			i = j
		default:
			if startsSheetPrefix(formula, i, old) {
				b.WriteString(prefix)
				i += len(old) + 1
				changed = true
				continue
			}
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), changed
}

// startsSheetPrefix reports whether an unquoted "old!" begins at formula[i].
// A preceding name byte means the match is the tail of a longer name, and a
// preceding "]" marks a sheet in another workbook.
func startsSheetPrefix(formula string, i int, old string) bool {
	end := i + len(old)
	if end >= len(formula) || formula[end] != '!' || !strings.EqualFold(formula[i:end], old) {
		return false
	}
	return i == 0 || (!isNameByte(formula[i-1]) && formula[i-1] != ']')
}

func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func unquoteSheetName(quoted string) string {
	if len(quoted) < 2 {
		return ""
	}
	return strings.ReplaceAll(quoted[1:len(quoted)-1], "''", "'")
}
