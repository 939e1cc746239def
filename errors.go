package gradebook

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRoster is returned when a class has no students to write.
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrMissingColumn is returned when a mapped roster column does not exist.
	ErrMissingColumn = errors.New("roster column not found")

	// ErrInvalidRegion is returned when a located table region fails its sanity checks.
	ErrInvalidRegion = errors.New("invalid table region")

	// ErrNoTemplate is returned when no template bytes were supplied.
	ErrNoTemplate = errors.New("no template supplied")

	// ErrFormulaTranslate is returned by TranslateFormula when a formula cannot be shifted.
	ErrFormulaTranslate = errors.New("formula cannot be translated")
)

// ClassError ties a processing failure to the class it happened in.
type ClassError struct {
	Class string
	Err   error
}

func (e *ClassError) Error() string {
	return fmt.Sprintf("class %q: %v", e.Class, e.Err)
}

func (e *ClassError) Unwrap() error { return e.Err }
