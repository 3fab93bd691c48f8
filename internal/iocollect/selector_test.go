package iocollect

import (
	"testing"

	"github.com/rbhughes/purr-petra/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeWhereClause(t *testing.T) {
	assert.Equal(t, "WHERE 1=1", makeWhereClause(nil))

	got := makeWhereClause([]string{"0123%", "4567"})
	assert.Equal(t,
		"WHERE 1=1 AND u.uwi LIKE '0123%' OR u.uwi LIKE '4567'", got)
}

func TestMakeIDInClauseNumeric(t *testing.T) {
	got := makeIDInClause([]string{"wsn"}, idents("12", "34"))
	assert.Equal(t, "WHERE 1=1 AND wsn IN (12,34)", got)
}

func TestMakeIDInClauseComposite(t *testing.T) {
	got := makeIDInClause([]string{"a", "b"}, idents("12-34"))
	assert.Equal(t,
		"WHERE 1=1 AND CAST(a AS VARCHAR) || '-' || CAST(b AS VARCHAR) IN ('12-34')",
		got)
}

// A single key still goes composite when any identifier is not a bare
// integer.
func TestMakeIDInClauseStringIdentifiers(t *testing.T) {
	got := makeIDInClause([]string{"uwi"}, idents("A-1", "B'2"))
	assert.Equal(t,
		"WHERE 1=1 AND CAST(uwi AS VARCHAR) IN ('A-1','B''2')", got)
}

func TestBuildSelectors(t *testing.T) {
	r := &recipe.Recipe{
		Selector:       "SELECT w.wsn AS w_wsn FROM well w _purrWHERE_",
		IdentifierKeys: []string{"w.wsn"},
	}
	got := buildSelectors(r, batchIdents(idents("1", "2", "3"), 2))
	require.Len(t, got, 2)
	assert.Equal(t,
		"SELECT w.wsn AS w_wsn FROM well w WHERE 1=1 AND w.wsn IN (1,2)",
		got[0])
	assert.Equal(t,
		"SELECT w.wsn AS w_wsn FROM well w WHERE 1=1 AND w.wsn IN (3)",
		got[1])
}
