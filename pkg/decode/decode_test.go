package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"int", 42, int64(42)},
		{"int64", int64(-7), int64(-7)},
		{"float truncates", 2.9, int64(2)},
		{"digits string", "123", int64(123)},
		{"padded string", " 55 ", int64(55)},
		{"float string", "2.5", nil},
		{"garbage", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeInt(tt.in))
		})
	}
}

func TestSafeFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"float", 3.25, 3.25},
		{"int", 4, 4.0},
		{"string", "1.5", 1.5},
		{"nan string", "NaN", nil},
		{"garbage", "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFloat(tt.in))
		})
	}
}

func TestSafeString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"missing marker", "<NA>", nil},
		{"padded missing marker", " <NA> ", nil},
		{"plain", "hello", "hello"},
		{"trims", "  hi  ", "hi"},
		{"control chars", "a\x00b\x1Fc", "abc"},
		{"latin1 bytes", []byte{0xB0, 'F'}, "°F"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeString(tt.in))
		})
	}
}

// Control-char stripping and trimming are idempotent, so running the
// decoder on its own output must be a no-op.
func TestSafeStringIdempotent(t *testing.T) {
	inputs := []string{
		"plain", " padded ", "ctl\x07chars\x9F", "mixed \t text\n",
		"", "°F µm", "quote'quote", " <NA> ",
	}
	for _, in := range inputs {
		once := SafeString(in)
		assert.Equal(t, once, SafeString(once), "input %q", in)
	}
}

func TestMemoToString(t *testing.T) {
	assert.Nil(t, MemoToString(nil))
	assert.Nil(t, MemoToString("<NA>"))
	assert.Nil(t, MemoToString(" <NA> "))
	assert.Equal(t, "line one line two", MemoToString("line one\x00 line two"))
}

func TestBlobToHex(t *testing.T) {
	assert.Nil(t, BlobToHex(nil))
	assert.Equal(t, "0xdeadbeef", BlobToHex([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	assert.Equal(t, "0x", BlobToHex([]byte{}))
}

func TestExcelDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"epoch string", "25569", "1970-01-01T00:00:00"},
		{"epoch float", 25569.0, "1970-01-01T00:00:00"},
		{"next day", "25570", "1970-01-02T00:00:00"},
		{"half day", 25569.5, "1970-01-01T12:00:00"},
		{"sentinel", "1e30", nil},
		{"sentinel upper", "1E+30", nil},
		{"nil", nil, nil},
		{"garbage", "not-a-number", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExcelDate(tt.in))
		})
	}
}

func TestArrayOfInt(t *testing.T) {
	in := "1_purrDELIM__purrNULL__purrDELIM_3"
	assert.Equal(t, []any{int64(1), nil, int64(3)}, ArrayOfInt(in))
	assert.Nil(t, ArrayOfInt(nil))
}

func TestArrayOfExcelDate(t *testing.T) {
	in := "25569_purrDELIM_1e30"
	assert.Equal(t, []any{"1970-01-01T00:00:00", nil}, ArrayOfExcelDate(in))
}

func TestKindApplyUnknownIsIdentity(t *testing.T) {
	v, err := Kind("no_such_decoder").Apply("raw")
	require.NoError(t, err)
	assert.Equal(t, "raw", v)
}

func TestKindForType(t *testing.T) {
	assert.Equal(t, KindInt, KindForType("INTEGER"))
	assert.Equal(t, KindFloat, KindForType("double"))
	assert.Equal(t, KindString, KindForType("VARCHAR"))
	assert.Equal(t, KindMemo, KindForType("MEMO"))
	assert.Equal(t, KindIdentity, KindForType("TIMESTAMP"))
}
