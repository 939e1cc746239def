package gradebook

import "fmt"

// BuildChecker derives the checker workbook from serialized full workbook
// bytes, keeping only sheets whose title is in keep (exact match). It returns
// nil bytes when none of those sheets exist, so no empty workbook is emitted.
func BuildChecker(full []byte, keep []string) ([]byte, error) {
	wb, err := OpenWorkbook(full)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	keepSet := make(map[string]bool, len(keep))
	for _, name := range keep {
		keepSet[name] = true
	}

	var drop []string
	kept := 0
	for _, sheet := range wb.Sheets() {
		if keepSet[sheet] {
			kept++
			continue
		}
		drop = append(drop, sheet)
	}
	if kept == 0 {
		return nil, nil
	}

	for _, sheet := range drop {
		if err := wb.file.DeleteSheet(sheet); err != nil {
			return nil, fmt.Errorf("delete sheet %q: %w", sheet, err)
		}
	}
	wb.file.SetActiveSheet(0)
	return wb.Bytes()
}
