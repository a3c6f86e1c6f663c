package columns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/network-link-manager/pkg/columns"
	domain "github.com/donaldgifford/network-link-manager/pkg/types"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "canonical source", header: "Source", want: "Source"},
		{name: "src lower", header: "src", want: "Source"},
		{name: "source padded", header: "  SOURCE  ", want: "Source"},
		{name: "source port underscore", header: "source_port", want: "Source Port"},
		{name: "src port dash", header: "Src-Port", want: "Source Port"},
		{name: "sourceport joined", header: "SourcePort", want: "Source Port"},
		{name: "srcport", header: "srcport", want: "Source Port"},
		{name: "collapsed whitespace", header: "source    port", want: "Source Port"},
		{name: "dest", header: "Dest", want: "Destination"},
		{name: "destination", header: "destination", want: "Destination"},
		{name: "dest port", header: "dest_port", want: "Destination Port"},
		{name: "destinationport", header: "DestinationPort", want: "Destination Port"},
		{name: "destport", header: "DESTPORT", want: "Destination Port"},
		{name: "unmatched left trimmed", header: "  Link ID ", want: "Link ID"},
		{name: "unmatched keeps case", header: "Circuit_Ref", want: "Circuit_Ref"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, columns.Canonicalize(tt.header))
		})
	}
}

func TestCanonicalizeTable_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := &domain.Table{Headers: []string{"src", "dest"}}
	out := columns.CanonicalizeTable(in)

	assert.Equal(t, []string{"src", "dest"}, in.Headers)
	assert.Equal(t, []string{"Source", "Destination"}, out.Headers)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		headers     []string
		wantMissing []string
	}{
		{
			name:    "all present",
			headers: []string{"Source", "Source Port", "Destination", "Destination Port"},
		},
		{
			name:        "missing ports",
			headers:     []string{"Source", "Destination"},
			wantMissing: []string{"Source Port", "Destination Port"},
		},
		{
			name:        "nothing recognizable",
			headers:     []string{"a", "b"},
			wantMissing: []string{"Source", "Source Port", "Destination", "Destination Port"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := columns.Validate(&domain.Table{Headers: tt.headers})
			if tt.wantMissing == nil {
				require.NoError(t, err)
				return
			}

			var se *columns.SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantMissing, se.Missing)
		})
	}
}

func TestDataset(t *testing.T) {
	t.Parallel()

	table := &domain.Table{
		Headers: []string{"src", "src_port", "dest", "dest port"},
		Rows: [][]string{
			{"R1", "Eth1/1", "R2", "Eth2/1"},
			{"R3", "", "R4"},
		},
	}

	ds, err := columns.Dataset(table)
	require.NoError(t, err)
	require.Len(t, ds, 2)

	assert.Equal(t, domain.LinkRecord{
		LinkID: "Row 1", Source: "R1", SourcePort: "Eth1/1", Destination: "R2", DestinationPort: "Eth2/1",
	}, ds[0])
	assert.Equal(t, "Row 2", ds[1].LinkID)
	assert.Empty(t, ds[1].SourcePort)
	assert.Empty(t, ds[1].DestinationPort, "short rows pad with absent cells")
}

func TestDataset_LinkIDColumn(t *testing.T) {
	t.Parallel()

	table := &domain.Table{
		Headers: []string{"Link ID", "Source", "Source Port", "Destination", "Destination Port"},
		Rows: [][]string{
			{"L-100", "R1", "Eth1/1", "R2", "Eth2/1"},
			{" ", "R1", "ae1", "R2", "ae2"},
		},
	}

	ds, err := columns.Dataset(table)
	require.NoError(t, err)
	assert.Equal(t, "L-100", ds[0].LinkID)
	assert.Equal(t, "Row 2", ds[1].LinkID, "blank ids are synthesized")
}

func TestDataset_FirstDuplicateHeaderWins(t *testing.T) {
	t.Parallel()

	table := &domain.Table{
		Headers: []string{"Source", "src", "Source Port", "Destination", "Destination Port"},
		Rows:    [][]string{{"first", "second", "p", "d", "q"}},
	}

	ds, err := columns.Dataset(table)
	require.NoError(t, err)
	assert.Equal(t, "first", ds[0].Source)
}

func TestDataset_SchemaError(t *testing.T) {
	t.Parallel()

	_, err := columns.Dataset(&domain.Table{
		Headers: []string{"Source", "Destination"},
		Rows:    [][]string{{"R1", "R2"}},
	})

	var se *columns.SchemaError
	require.ErrorAs(t, err, &se)
	assert.EqualError(t, err, "missing columns: Source Port, Destination Port")
	assert.Equal(t, "Main missing columns: Source Port, Destination Port", columns.Describe("Main", err))
}

func TestDataset_Empty(t *testing.T) {
	t.Parallel()

	ds, err := columns.Dataset(&domain.Table{
		Headers: []string{"Source", "Source Port", "Destination", "Destination Port"},
	})
	require.ErrorIs(t, err, columns.ErrEmptyDataset)
	assert.NotNil(t, ds)
	assert.Empty(t, ds)
}
