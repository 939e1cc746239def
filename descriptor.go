package gradebook

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// descriptor.go - explicit template layout, loaded from YAML

// RowMode says whether a sheet follows the roster size.
type RowMode string

const (
	RowsRoster RowMode = "roster" // one row per student (default)
	RowsFixed  RowMode = "fixed"  // aggregate sheet, never resized
)

// SheetRule pins the layout of the sheets it applies to.
// A rule applies by exact Name, or by a When condition evaluated over
// {Name, Index, Primary}.
type SheetRule struct {
	Name         string  `yaml:"name"`
	When         string  `yaml:"when"`
	HeaderRow    int     `yaml:"header_row"`
	FooterRow    int     `yaml:"footer_row"`
	DataRows     int     `yaml:"data_rows"`
	FooterMarker string  `yaml:"footer_marker"`
	Rows         RowMode `yaml:"rows"`
}

// Fixed reports whether the rule keeps its sheet at template size.
func (r *SheetRule) Fixed() bool {
	return r != nil && r.Rows == RowsFixed
}

// ColumnLayout names the primary-sheet columns receiving roster data.
type ColumnLayout struct {
	Index   string `yaml:"index"`
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Surname string `yaml:"surname"`
}

// DefaultColumnLayout writes sequence, id, first and last name into A-D.
func DefaultColumnLayout() ColumnLayout {
	return ColumnLayout{Index: "A", ID: "B", Name: "C", Surname: "D"}
}

// columns resolves the layout to column numbers, filling blanks from the default.
func (c ColumnLayout) columns() ([4]int, error) {
	d := DefaultColumnLayout()
	names := [4]string{c.Index, c.ID, c.Name, c.Surname}
	defaults := [4]string{d.Index, d.ID, d.Name, d.Surname}
	var out [4]int
	for i, name := range names {
		if name == "" {
			name = defaults[i]
		}
		col, err := NameToCol(name)
		if err != nil {
			return out, fmt.Errorf("column layout: %w", err)
		}
		out[i] = col
	}
	return out, nil
}

// Descriptor is the explicit layout contract shipped next to a template.
// Anything it leaves unset falls back to the keyword heuristics.
type Descriptor struct {
	Version    int          `yaml:"version"`
	KeepSheets []string     `yaml:"keep_sheets"`
	Columns    ColumnLayout `yaml:"columns"`
	Sheets     []SheetRule  `yaml:"sheets"`

	eval ExpressionEvaluator
}

// LoadDescriptorFile loads a descriptor from a YAML file.
func LoadDescriptorFile(path string) (*Descriptor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening descriptor file: %w", err)
	}
	defer file.Close()

	return LoadDescriptor(file)
}

// LoadDescriptor loads a descriptor from an io.Reader.
func LoadDescriptor(r io.Reader) (*Descriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing YAML descriptor: %w", err)
	}
	if d.Version == 0 {
		d.Version = 1
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("validating descriptor: %w", err)
	}
	d.eval = NewExpressionEvaluator()
	return &d, nil
}

// LoadDescriptorString loads a descriptor from a YAML string.
func LoadDescriptorString(content string) (*Descriptor, error) {
	return LoadDescriptor(strings.NewReader(content))
}

// Validate checks the descriptor structure.
func (d *Descriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("descriptor is nil")
	}
	if d.Version != 1 {
		return fmt.Errorf("unsupported descriptor version %d", d.Version)
	}
	if _, err := d.Columns.columns(); err != nil {
		return err
	}
	for i, s := range d.Sheets {
		if err := validateRule(&s, i); err != nil {
			return err
		}
	}
	return nil
}

func validateRule(s *SheetRule, index int) error {
	label := fmt.Sprintf("sheets[%d]", index)
	if s.Name != "" {
		label += fmt.Sprintf(" '%s'", s.Name)
	}
	if s.Name == "" && s.When == "" {
		return fmt.Errorf("%s: either name or when is required", label)
	}
	if s.Name != "" && s.When != "" {
		return fmt.Errorf("%s: cannot specify both name and when", label)
	}
	if err := CheckExpression(s.When); err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	if s.HeaderRow < 0 || s.FooterRow < 0 || s.DataRows < 0 {
		return fmt.Errorf("%s: rows must not be negative", label)
	}
	if s.FooterRow > 0 && s.HeaderRow > 0 && s.FooterRow <= s.HeaderRow+1 {
		return fmt.Errorf("%s: footer_row %d leaves no data rows below header_row %d", label, s.FooterRow, s.HeaderRow)
	}
	if s.FooterRow > 0 && s.DataRows > 0 {
		return fmt.Errorf("%s: cannot specify both footer_row and data_rows", label)
	}
	switch s.Rows {
	case "", RowsRoster, RowsFixed:
	default:
		return fmt.Errorf("%s: rows must be %q or %q, got %q", label, RowsRoster, RowsFixed, s.Rows)
	}
	return nil
}

// RuleFor returns the first rule applying to the sheet at index, or nil.
// Rules whose condition fails to evaluate are skipped. RuleFor is safe for
// concurrent use.
func (d *Descriptor) RuleFor(name string, index int) *SheetRule {
	if d == nil {
		return nil
	}
	for i := range d.Sheets {
		rule := &d.Sheets[i]
		if rule.Name != "" {
			if rule.Name == name {
				return rule
			}
			continue
		}
		eval := d.eval
		if eval == nil {
			eval = NewExpressionEvaluator()
		}
		ok, err := eval.IsConditionTrue(rule.When, map[string]any{
			"Name":    name,
			"Index":   index,
			"Primary": index == 0,
		})
		if err == nil && ok {
			return rule
		}
	}
	return nil
}
