package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/claimload/pkg/claimload"
)

func TestFromCSV_Basic(t *testing.T) {
	data := []byte("Name,Region,Specialty\nNorth Clinic,Midwest,Primary Care\nSunrise Hospital,South,Cardiology\n")

	f, err := FromCSV(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Region", "Specialty"}, f.Columns)
	require.Equal(t, 2, f.RowCount())
	assert.Equal(t, []any{"North Clinic", "Midwest", "Primary Care"}, f.Rows[0])
}

func TestFromCSV_StripsBOMAndTrimsHeaders(t *testing.T) {
	data := []byte("\uFEFF Name , Region ,Specialty\na,b,c\n")

	f, err := FromCSV(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Region", "Specialty"}, f.Columns)
}

func TestFromCSV_NullTokens(t *testing.T) {
	data := []byte("A,B,C,D\nx,NA,NULL,\ny,N/A,NaN,null\n")

	f, err := FromCSV(data)
	require.NoError(t, err)

	assert.Equal(t, []any{"x", nil, nil, nil}, f.Rows[0])
	assert.Equal(t, []any{"y", nil, nil, nil}, f.Rows[1])
}

func TestFromCSV_ShortRecordPadsWithNulls(t *testing.T) {
	data := []byte("A,B,C\nonly\n")

	f, err := FromCSV(data)
	require.NoError(t, err)
	assert.Equal(t, []any{"only", nil, nil}, f.Rows[0])
}

func TestFromCSV_Empty(t *testing.T) {
	_, err := FromCSV(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, claimload.ErrParse))
}

func TestFromCSV_Malformed(t *testing.T) {
	data := []byte("A,B\n\"unterminated,x\n")

	_, err := FromCSV(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, claimload.ErrParse))
}

func TestRepairSingleColumn(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantCols []string
		wantRow  []any
	}{
		{
			name:     "semicolon delimited",
			data:     "\"Name;Region;Specialty\"\n\"North Clinic;Midwest;Primary Care\"\n",
			wantCols: []string{"Name", "Region", "Specialty"},
			wantRow:  []any{"North Clinic", "Midwest", "Primary Care"},
		},
		{
			name:     "pipe delimited",
			data:     "\"Name|Region|Specialty\"\n\"a|b|c\"\n",
			wantCols: []string{"Name", "Region", "Specialty"},
			wantRow:  []any{"a", "b", "c"},
		},
		{
			name:     "semicolon wins over pipe",
			data:     "\"Name;Region|Zone\"\n\"x;y|z\"\n",
			wantCols: []string{"Name", "Region|Zone"},
			wantRow:  []any{"x", "y|z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromCSV([]byte(tt.data))
			require.NoError(t, err)
			require.Len(t, f.Columns, 1, "fixture must parse as a single column")

			repaired := f.RepairSingleColumn()
			assert.Equal(t, tt.wantCols, repaired.Columns)
			require.Equal(t, 1, repaired.RowCount())
			assert.Equal(t, tt.wantRow, repaired.Rows[0])
		})
	}
}

func TestRepairSingleColumn_MultiColumnUnchanged(t *testing.T) {
	f, err := FromCSV([]byte("A,B\n1,2\n"))
	require.NoError(t, err)

	assert.Same(t, f, f.RepairSingleColumn())
}

func TestRepairSingleColumn_NullTokensInSplitCells(t *testing.T) {
	f, err := FromCSV([]byte("\"A;B;C\"\n\"x;NA;\"\n"))
	require.NoError(t, err)

	repaired := f.RepairSingleColumn()
	assert.Equal(t, []any{"x", nil, nil}, repaired.Rows[0])
}

func TestValidate(t *testing.T) {
	f := &Frame{Columns: []string{"Name", "Region"}}

	require.NoError(t, f.Validate([]string{"Name", "Region"}))
	require.NoError(t, f.Validate([]string{"Region"}))

	err := f.Validate([]string{"Name", "Specialty"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, claimload.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "Specialty")
	assert.Contains(t, err.Error(), "Region", "error should name the found columns")
}

func TestSelect(t *testing.T) {
	f, err := FromCSV([]byte("C,A,B\n3,1,2\n"))
	require.NoError(t, err)

	out, err := f.Select([]string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, out.Columns)
	assert.Equal(t, []any{"1", "2"}, out.Rows[0])
}

func TestSelect_MissingColumn(t *testing.T) {
	f := &Frame{Columns: []string{"A"}}

	_, err := f.Select([]string{"A", "Z"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, claimload.ErrSchemaMismatch))
}

func TestRename(t *testing.T) {
	f, err := FromCSV([]byte("first_name,last_name,extra\nAda,Reyes,x\n"))
	require.NoError(t, err)

	out, err := f.Rename([]string{"first_name", "last_name"}, []string{"FirstName", "LastName"})
	require.NoError(t, err)
	assert.Equal(t, []string{"FirstName", "LastName"}, out.Columns)
	assert.Equal(t, []any{"Ada", "Reyes"}, out.Rows[0])
}

func TestRename_LengthMismatch(t *testing.T) {
	f := &Frame{Columns: []string{"A", "B"}}

	_, err := f.Rename([]string{"A", "B"}, []string{"OnlyOne"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, claimload.ErrSchemaMismatch))
}
