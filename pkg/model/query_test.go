package model

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/vogdb/pkg/handler/request"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestBuild_NoFilters(t *testing.T) {
	q := newSearchQuery(request.EntitySpecies)
	sqlStr, args := q.build(request.Page{})

	assert.Contains(t, sqlStr, "SELECT s.taxon_id")
	assert.Contains(t, sqlStr, "ORDER BY s.taxon_id")
	assert.NotContains(t, sqlStr, "WHERE")
	assert.NotContains(t, sqlStr, "LIMIT")
	assert.Empty(t, args)
}

func TestBuild_PageArgsComeLast(t *testing.T) {
	q := newSearchQuery(request.EntityProtein)
	require.NoError(t, inSet(q, "p.taxon_id", []int64{3, 1, 3}))

	limit, offset := 10, 20
	sqlStr, args := q.build(request.Page{Limit: &limit, Offset: &offset})

	assert.Contains(t, sqlStr, "LIMIT ? OFFSET ?")
	assert.Equal(t, []interface{}{"[3,1]", 10, 20}, args)

	// build does not mutate the query
	_, again := q.build(request.Page{})
	assert.Equal(t, []interface{}{"[3,1]"}, again)
}

func TestBuild_JoinOrderIsStable(t *testing.T) {
	q := newSearchQuery(request.EntityVOG)
	q.join(edgeVogSpecies)
	q.join(edgeVogCategory)
	q.join(edgeVogSpecies)

	sqlStr, _ := q.build(request.Page{})
	cat := indexOf(sqlStr, "vog_category")
	sp := indexOf(sqlStr, "vog_species")
	require.True(t, cat >= 0 && sp >= 0)
	assert.Less(t, cat, sp)
}

func TestContainsAny(t *testing.T) {
	q := newSearchQuery(request.EntityProtein)
	q.containsAny("s.species_name", []string{"a", "b", "a"})

	require.Len(t, q.where, 1)
	assert.Equal(t, `(s.species_name LIKE ? ESCAPE '\' OR s.species_name LIKE ? ESCAPE '\')`, q.where[0])
	assert.Equal(t, []interface{}{"%a%", "%b%"}, q.args)

	q = newSearchQuery(request.EntityProtein)
	q.containsAny("s.species_name", nil)
	assert.Empty(t, q.where)
}

func TestDecodeLists(t *testing.T) {
	strs, err := decodeStrings(sql.NullString{String: `["b","a"]`, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, strs)

	strs, err = decodeStrings(sql.NullString{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, strs)

	ints, err := decodeInt64s(sql.NullString{String: `[30,10,20]`, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, ints)

	_, err = decodeInt64s(sql.NullString{String: `not json`, Valid: true})
	assert.Error(t, err)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
