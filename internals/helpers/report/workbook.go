// Package report renders tabular data as xlsx workbooks for exports and
// email attachments.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

func (s *Sheet) Add(cells ...any) {
	s.Rows = append(s.Rows, cells)
}

// Build writes the sheets into a new workbook and returns its bytes.
func Build(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("report: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E7FF"}},
	})
	if err != nil {
		return nil, fmt.Errorf("report: header style: %w", err)
	}

	for i, sh := range sheets {
		name := sh.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("report: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("report: new sheet %q: %w", name, err)
		}

		if err := writeRow(f, name, 1, toAny(sh.Headers)); err != nil {
			return nil, err
		}
		if len(sh.Headers) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(sh.Headers), 1)
			if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
				return nil, fmt.Errorf("report: style header: %w", err)
			}
			lastCol, _ := excelize.ColumnNumberToName(len(sh.Headers))
			_ = f.SetColWidth(name, "A", lastCol, 20)
		}
		for r, row := range sh.Rows {
			if err := writeRow(f, name, r+2, row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("report: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	if len(cells) == 0 {
		return nil
	}
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("report: cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
		return fmt.Errorf("report: row %d: %w", row, err)
	}
	return nil
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// Filename builds "<event>-<suffix>.xlsx" with a filesystem-safe event part.
func Filename(eventName, suffix string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, strings.TrimSpace(eventName))
	base = strings.Trim(base, "-")
	for strings.Contains(base, "--") {
		base = strings.ReplaceAll(base, "--", "-")
	}
	if base == "" {
		base = "event"
	}
	return base + "-" + suffix + ".xlsx"
}
