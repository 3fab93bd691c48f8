package iocollect

import (
	"testing"

	"github.com/rbhughes/purr-petra/pkg/decode"
	"github.com/rbhughes/purr-petra/pkg/petra"
	"github.com/rbhughes/purr-petra/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRows(t *testing.T) {
	r := &recipe.Recipe{
		Transforms: map[string]decode.Kind{"w_spud": decode.KindExcelDate},
	}
	res := &petra.Result{
		Columns: []petra.Column{
			{Name: "w_wsn", TypeName: "INTEGER"},
			{Name: "w_label", TypeName: "VARCHAR"},
			{Name: "w_spud", TypeName: "DOUBLE"},
		},
		Rows: [][]any{
			{int64(621), "  SMITH 1-A\x00 ", 25569.0},
			{int64(826), nil, nil},
		},
	}

	rows, err := decodeRows(res, r)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(621), rows[0]["w_wsn"])
	assert.Equal(t, "SMITH 1-A", rows[0]["w_label"])
	assert.Equal(t, "1970-01-01T00:00:00", rows[0]["w_spud"])
	assert.Nil(t, rows[1]["w_label"])
	assert.Nil(t, rows[1]["w_spud"])
}

func TestDecodeRowsPropagatesDecodeError(t *testing.T) {
	r := &recipe.Recipe{
		Transforms: map[string]decode.Kind{"l_digits": decode.KindLogCurveDigits},
	}
	res := &petra.Result{
		Columns: []petra.Column{{Name: "l_digits", TypeName: "BLOB"}},
		Rows:    [][]any{{[]byte{1, 2, 3}}},
	}

	_, err := decodeRows(res, r)
	require.Error(t, err)
	var de *decode.DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestAssemblePrefix(t *testing.T) {
	r := &recipe.Recipe{
		Prefixes: map[string]string{"w_": "well", "f_": "formation"},
	}
	row := map[string]any{
		"w_uwi":  "001",
		"f_top":  100.0,
		"orphan": "dropped",
	}

	doc := assemble(row, []string{"w_uwi", "f_top", "orphan"}, r)
	assert.Equal(t, map[string]any{
		"well":      map[string]any{"uwi": "001"},
		"formation": map[string]any{"top": 100.0},
	}, doc)
}

func TestAggregate(t *testing.T) {
	agg := recipe.Aggregators["dst_agg"]
	cols := []string{"w_wsn", "w_uwi", "f_testnum", "f_recov"}
	rows := []map[string]any{
		{"w_wsn": int64(1), "w_uwi": "001", "f_testnum": int64(1),
			"f_recov": []any{"mud"}},
		{"w_wsn": int64(1), "w_uwi": "001", "f_testnum": int64(2),
			"f_recov": []any{"oil", "water"}},
		{"w_wsn": int64(2), "w_uwi": "002", "f_testnum": int64(1),
			"f_recov": []any{}},
	}

	got := aggregate(rows, cols, agg)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, int64(1), first["w_wsn"])
	assert.Equal(t, "001", first["w_uwi"], "parent columns keep first-seen value")
	assert.Equal(t, []any{int64(1), int64(2)}, first["f_testnum"])
	assert.Equal(t, []any{"mud", "oil", "water"}, first["f_recov"],
		"flatten column concatenates per-row lists")

	second := got[1]
	assert.Equal(t, []any{}, second["f_recov"],
		"empty recovery list survives aggregation")
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "621", stringify(621.0))
	assert.Equal(t, "621", stringify(int64(621)))
	assert.Equal(t, "12-34", stringify("12-34"))
	assert.Equal(t, "12-34", stringify([]byte("12-34")))
	assert.Equal(t, "1.5", stringify(1.5))
}
