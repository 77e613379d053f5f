package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePgpassFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pgpass")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("PGPASSFILE", path)
}

func TestLookupPgpass_ExactMatch(t *testing.T) {
	writePgpassFile(t, "warehouse:5432:claims:loader:sekret\n")

	assert.Equal(t, "sekret", lookupPgpass("warehouse", 5432, "claims", "loader"))
}

func TestLookupPgpass_Wildcards(t *testing.T) {
	writePgpassFile(t, "*:*:*:loader:anywhere\n")

	assert.Equal(t, "anywhere", lookupPgpass("other.host", 6000, "otherdb", "loader"))
	assert.Equal(t, "", lookupPgpass("other.host", 6000, "otherdb", "someone"))
}

func TestLookupPgpass_FirstMatchWins(t *testing.T) {
	writePgpassFile(t, "warehouse:5432:claims:loader:first\n*:*:*:*:second\n")

	assert.Equal(t, "first", lookupPgpass("warehouse", 5432, "claims", "loader"))
	assert.Equal(t, "second", lookupPgpass("elsewhere", 1, "x", "y"))
}

func TestLookupPgpass_SkipsCommentsAndBlanks(t *testing.T) {
	writePgpassFile(t, "# production credentials\n\nwarehouse:5432:claims:loader:pw\n")

	assert.Equal(t, "pw", lookupPgpass("warehouse", 5432, "claims", "loader"))
}

func TestLookupPgpass_EscapedColon(t *testing.T) {
	writePgpassFile(t, `warehouse:5432:claims:loader:pa\:ss`+"\n")

	assert.Equal(t, "pa:ss", lookupPgpass("warehouse", 5432, "claims", "loader"))
}

func TestLookupPgpass_MissingFile(t *testing.T) {
	t.Setenv("PGPASSFILE", filepath.Join(t.TempDir(), "nope"))

	assert.Equal(t, "", lookupPgpass("warehouse", 5432, "claims", "loader"))
}

func TestSplitPgpassLine(t *testing.T) {
	fields := splitPgpassLine(`h\:ost:5432:d\\b:user:pw`)
	require.Len(t, fields, 5)
	assert.Equal(t, "h:ost", fields[0])
	assert.Equal(t, `d\b`, fields[2])
}
