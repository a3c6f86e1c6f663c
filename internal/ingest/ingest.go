// Package ingest decodes uploaded spreadsheets (CSV or XLSX) into link
// datasets.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/donaldgifford/network-link-manager/internal/metrics"
	"github.com/donaldgifford/network-link-manager/pkg/columns"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// Supported upload formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatXLS  = "xls"
)

var (
	magicZIP = []byte("PK\x03\x04")
	magicOLE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Upload is a named spreadsheet payload. Format may be empty, in which case
// it is taken from the file extension or sniffed from the content.
type Upload struct {
	Name    string `json:"name"`
	Format  string `json:"format,omitempty"`
	Sheet   string `json:"sheet,omitempty"`
	Content []byte `json:"content"`
}

// ReadFile loads a local spreadsheet as an Upload named after the file.
// sheet selects an xlsx worksheet and may be empty.
func ReadFile(path, sheet string) (*Upload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Upload{Name: filepath.Base(path), Sheet: sheet, Content: content}, nil
}

// Size returns the payload length in bytes.
func (u *Upload) Size() int {
	return len(u.Content)
}

// ParseError reports an upload that cannot be decoded as tabular data.
type ParseError struct {
	Name   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("parsing %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("parsing %s as %s: %v", e.Name, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LimitError reports an upload with more data rows than allowed.
type LimitError struct {
	Name string
	Rows int
	Max  int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s has %d rows, limit is %d", e.Name, e.Rows, e.Max)
}

// Sentinel causes wrapped by ParseError.
var (
	ErrEmptyUpload       = errors.New("upload is empty")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoHeader          = errors.New("no header row")
)

// Reader decodes uploads into datasets.
type Reader struct {
	maxRows int
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxRows caps the number of data rows accepted per upload.
func WithMaxRows(n int) Option {
	return func(r *Reader) {
		r.maxRows = n
	}
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table decodes u into a raw table. Fully blank rows are dropped, so row
// positions used for synthesized link ids count only non-blank rows.
func (r *Reader) Table(u *Upload) (*domain.Table, error) {
	format, err := DetectFormat(u)
	if err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("parse").Inc()
		return nil, &ParseError{Name: u.Name, Format: format, Err: err}
	}

	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = decodeCSV(u.Content)
	case FormatXLSX:
		rows, err = decodeXLSX(u.Content, u.Sheet)
	}
	if err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("parse").Inc()
		return nil, &ParseError{Name: u.Name, Format: format, Err: err}
	}

	t, err := toTable(rows)
	if err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("parse").Inc()
		return nil, &ParseError{Name: u.Name, Format: format, Err: err}
	}

	if r.maxRows > 0 && len(t.Rows) > r.maxRows {
		metrics.IngestErrorsTotal.WithLabelValues("too_many_rows").Inc()
		return nil, &LimitError{Name: u.Name, Rows: len(t.Rows), Max: r.maxRows}
	}

	metrics.IngestRowsTotal.WithLabelValues(format).Add(float64(len(t.Rows)))
	return t, nil
}

// Dataset decodes u and converts it into link records. Errors are
// *ParseError, *LimitError, *columns.SchemaError, or columns.ErrEmptyDataset
// alongside an empty dataset.
func (r *Reader) Dataset(u *Upload) (domain.Dataset, error) {
	t, err := r.Table(u)
	if err != nil {
		return nil, err
	}

	ds, err := columns.Dataset(t)
	if err != nil {
		var se *columns.SchemaError
		if errors.As(err, &se) {
			metrics.IngestErrorsTotal.WithLabelValues("schema").Inc()
		}
		return ds, err
	}
	return ds, nil
}

// DetectFormat resolves the format of u from its Format field, then the
// file extension, then the leading bytes. Legacy .xls workbooks are
// recognized and rejected.
func DetectFormat(u *Upload) (string, error) {
	if len(u.Content) == 0 {
		return "", ErrEmptyUpload
	}

	format := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(u.Format), "."))
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(u.Name), "."))
	}

	switch format {
	case FormatCSV, "txt":
		return FormatCSV, nil
	case FormatXLSX, "xlsm":
		return FormatXLSX, nil
	case FormatXLS:
		return FormatXLS, fmt.Errorf("%w: legacy .xls workbooks, save as .xlsx", ErrUnsupportedFormat)
	case "":
	default:
		return format, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	switch {
	case bytes.HasPrefix(u.Content, magicZIP):
		return FormatXLSX, nil
	case bytes.HasPrefix(u.Content, magicOLE):
		return FormatXLS, fmt.Errorf("%w: legacy .xls workbooks, save as .xlsx", ErrUnsupportedFormat)
	default:
		return FormatCSV, nil
	}
}

func toTable(rows [][]string) (*domain.Table, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	t := &domain.Table{Headers: rows[0]}
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
