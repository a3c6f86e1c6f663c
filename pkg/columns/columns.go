// Package columns maps heterogeneous spreadsheet headers onto the canonical
// link schema and converts validated tables into datasets.
package columns

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

// ErrEmptyDataset is returned alongside an empty dataset when a table has a
// valid header but no data rows. Callers treat it as a degenerate success.
var ErrEmptyDataset = errors.New("dataset has no rows")

// SchemaError reports required columns that are absent after
// canonicalization.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing columns: " + strings.Join(e.Missing, ", ")
}

// synonyms maps normalized header spellings to canonical column names.
// Extend by adding entries.
var synonyms = map[string]string{
	"source": domain.ColumnSource,
	"src":    domain.ColumnSource,

	"source port": domain.ColumnSourcePort,
	"src port":    domain.ColumnSourcePort,
	"sourceport":  domain.ColumnSourcePort,
	"srcport":     domain.ColumnSourcePort,

	"destination": domain.ColumnDestination,
	"dest":        domain.ColumnDestination,

	"destination port": domain.ColumnDestinationPort,
	"dest port":        domain.ColumnDestinationPort,
	"destinationport":  domain.ColumnDestinationPort,
	"destport":         domain.ColumnDestinationPort,
}

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// Canonicalize returns the canonical name for a header, or the trimmed
// header when no synonym matches.
func Canonicalize(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = separatorReplacer.Replace(key)
	key = strings.Join(strings.Fields(key), " ")

	if name, ok := synonyms[key]; ok {
		return name
	}
	return strings.TrimSpace(header)
}

// CanonicalizeTable returns a copy of t with canonical headers. Rows are
// shared with the input and must not be modified.
func CanonicalizeTable(t *domain.Table) *domain.Table {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = Canonicalize(h)
	}
	return &domain.Table{Headers: headers, Rows: t.Rows}
}

// Validate checks that every required column is present.
func Validate(t *domain.Table) error {
	var missing []string
	for _, c := range domain.RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Dataset canonicalizes and validates t, then converts its rows to link
// records. Records without a link id get "Row N" using the 1-based row
// position. A table with no rows yields an empty dataset and
// ErrEmptyDataset.
func Dataset(t *domain.Table) (domain.Dataset, error) {
	ct := CanonicalizeTable(t)
	if err := Validate(ct); err != nil {
		return nil, err
	}

	if len(ct.Rows) == 0 {
		return domain.Dataset{}, ErrEmptyDataset
	}

	ds := make(domain.Dataset, len(ct.Rows))
	for i := range ct.Rows {
		id := strings.TrimSpace(ct.Cell(i, domain.ColumnLinkID))
		if id == "" {
			id = "Row " + strconv.Itoa(i+1)
		}
		ds[i] = domain.LinkRecord{
			LinkID:          id,
			Source:          ct.Cell(i, domain.ColumnSource),
			SourcePort:      ct.Cell(i, domain.ColumnSourcePort),
			Destination:     ct.Cell(i, domain.ColumnDestination),
			DestinationPort: ct.Cell(i, domain.ColumnDestinationPort),
		}
	}
	return ds, nil
}

// Describe returns a user-facing message for a dataset error, naming the
// dataset.
func Describe(name string, err error) string {
	var se *SchemaError
	if errors.As(err, &se) {
		return fmt.Sprintf("%s missing columns: %s", name, strings.Join(se.Missing, ", "))
	}
	return fmt.Sprintf("%s: %v", name, err)
}
