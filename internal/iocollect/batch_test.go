package iocollect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idents(raws ...string) []ident {
	ids := make([]ident, len(raws))
	for i, raw := range raws {
		ids[i] = makeIdent(raw)
	}
	return ids
}

func raws(batch []ident) []string {
	out := make([]string, len(batch))
	for i, id := range batch {
		out[i] = id.raw
	}
	return out
}

func TestBatchNumeric(t *testing.T) {
	in := idents("621", "826", "831", "834", "835", "838", "846", "847", "848")
	got := batchIdents(in, 4)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"621", "826", "831", "834"}, raws(got[0]))
	assert.Equal(t, []string{"835", "838", "846", "847"}, raws(got[1]))
	assert.Equal(t, []string{"848"}, raws(got[2]))
}

// A group larger than the batch size stays whole: the 2- group of
// five exceeds max_size=4 and forms an oversized batch by itself.
func TestBatchCompoundGroupsStayWhole(t *testing.T) {
	in := idents(
		"1-62", "1-82", "2-83", "2-83", "2-83", "2-83", "2-84", "3-84", "4-84")
	got := batchIdents(in, 4)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"1-62", "1-82"}, raws(got[0]))
	assert.Equal(t, []string{"2-83", "2-83", "2-83", "2-83", "2-84"}, raws(got[1]))
	assert.Equal(t, []string{"3-84", "4-84"}, raws(got[2]))
}

// Concatenating the batches reproduces the input: same multiset, same
// order within each group, and no group split across batches.
func TestBatchInvariant(t *testing.T) {
	in := idents("5-1", "5-2", "6-1", "5-3", "7-1", "6-2", "8-1")
	for _, size := range []int{1, 2, 3, 4, 100} {
		got := batchIdents(in, size)

		var flat []string
		lastBatch := make(map[string]int)
		for bi, batch := range got {
			require.NotEmpty(t, batch, "size %d", size)
			for _, id := range batch {
				flat = append(flat, id.raw)
				g := id.group()
				if prev, seen := lastBatch[g]; seen {
					assert.Equal(t, prev, bi,
						"size %d: group %s split across batches", size, g)
				}
				lastBatch[g] = bi
			}
		}
		assert.ElementsMatch(t,
			[]string{"5-1", "5-2", "6-1", "5-3", "7-1", "6-2", "8-1"}, flat)
	}
}

func TestBatchEmpty(t *testing.T) {
	assert.Nil(t, batchIdents(nil, 10))
}

// Duplicate identifiers share a group token, so they always travel
// together even past the nominal size.
func TestBatchDuplicatesPreserved(t *testing.T) {
	got := batchIdents(idents("7", "7", "7"), 2)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"7", "7", "7"}, raws(got[0]))
}
