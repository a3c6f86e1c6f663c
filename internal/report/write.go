package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned for an output format other than csv, xlsx
// or json.
var ErrUnknownFormat = errors.New("unknown output format")

// WriteCSV writes one sheet as CSV with a header row.
func WriteCSV(w io.Writer, s *Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Headers); err != nil {
		return fmt.Errorf("writing %s header: %w", s.Name, err)
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return fmt.Errorf("writing %s rows: %w", s.Name, err)
	}
	return nil
}

// WriteXLSX writes all sheets into one workbook, one worksheet each, with a
// bold frozen header row.
func WriteXLSX(w io.Writer, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i := range sheets {
		s := &sheets[i]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return fmt.Errorf("naming sheet %s: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("adding sheet %s: %w", s.Name, err)
		}

		if err := writeSheet(f, s, header); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s *Sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.Name, "A1", &s.Headers); err != nil {
		return fmt.Errorf("writing %s header: %w", s.Name, err)
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", s.Name, i+1, err)
		}
	}

	if len(s.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("styling %s header: %w", s.Name, err)
		}
	}

	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WriteDir writes a result into dir and returns the created file paths.
// CSV produces one file per sheet, XLSX one workbook named after the
// operation, and JSON the raw result v named after the operation.
func WriteDir(dir, format, operation string, sheets []Sheet, v any) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	switch format {
	case FormatCSV:
		paths := make([]string, 0, len(sheets))
		for i := range sheets {
			path := filepath.Join(dir, sheets[i].Name+".csv")
			if err := writeFile(path, func(w io.Writer) error { return WriteCSV(w, &sheets[i]) }); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	case FormatXLSX:
		path := filepath.Join(dir, Stem(operation)+".xlsx")
		return []string{path}, writeFile(path, func(w io.Writer) error { return WriteXLSX(w, sheets) })
	case FormatJSON:
		path := filepath.Join(dir, Stem(operation)+".json")
		return []string{path}, writeFile(path, func(w io.Writer) error { return WriteJSON(w, v) })
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) //nolint:gosec // output path from trusted CLI flag
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
