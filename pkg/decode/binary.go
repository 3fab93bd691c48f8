package decode

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DecodeError indicates a binary layout assumption no longer holds for
// this data. It aborts the run instead of being swallowed.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// LogCurveDigits unpacks a log curve blob: a contiguous array of
// 8-byte little-endian floats. Non-finite values report a DecodeError;
// nil or empty input decodes to nil.
func LogCurveDigits(v any) (any, error) {
	b, ok := blobOf(v)
	if !ok || len(b) == 0 {
		return nil, nil
	}
	if len(b)%8 != 0 {
		return nil, &DecodeError{
			Op:  "log curve digits",
			Err: fmt.Errorf("blob length %d is not a multiple of 8", len(b)),
		}
	}
	vals := make([]float64, len(b)/8)
	for i := range vals {
		f := math.Float64frombits(
			binary.LittleEndian.Uint64(b[i*8 : i*8+8]),
		)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &DecodeError{
				Op:  "log curve digits",
				Err: fmt.Errorf("non-finite value at index %d", i),
			}
		}
		vals[i] = f
	}
	return vals, nil
}

var edgeQuotes = regexp.MustCompile(`^"|"$`)

// LogHeaderText decodes a LAS header blob: UTF-8 text with
// semicolon-separated fields, each wrapped in one pair of quotes,
// rejoined with newlines.
func LogHeaderText(v any) any {
	b, ok := blobOf(v)
	if !ok {
		return nil
	}
	fields := strings.Split(string(b), ";")
	for i, f := range fields {
		fields[i] = edgeQuotes.ReplaceAllString(f, "")
	}
	return strings.Join(fields, "\n")
}

// Congressional decodes Petra's fixed-layout congressional (legal
// description) blob into a record of township/range/section/footage
// fields. A field whose slice falls outside the blob decodes to nil
// for that field only.
func Congressional(v any) any {
	b, ok := blobOf(v)
	if !ok {
		return nil
	}
	return map[string]any{
		"township":            textField(b, 4, 6),
		"township_ns":         textField(b, 71, 72),
		"range":               textField(b, 21, 23),
		"range_ew":            textField(b, 70, 71),
		"section":             textField(b, 38, 54),
		"section_suffix":      textField(b, 54, 70),
		"meridian":            textField(b, 153, 155),
		"footage_ref":         textField(b, 137, 152),
		"spot":                textField(b, 96, 136),
		"footage_call_ns":     doubleField(b, 88),
		"footage_call_ns_ref": shortField(b, 76),
		"footage_call_ew":     doubleField(b, 80),
		"footage_call_ew_ref": shortField(b, 72),
		"remarks":             textField(b, 156, 412),
	}
}

// RecoveryRecords decodes a fixed-stride blob of 36-byte DST recovery
// entries: amount (float64 at 0), units (text at 8, 7 bytes) and
// description (text at 15, 21 bytes). Nil input decodes to an empty
// list so aggregation keeps zero-recovery rows visible.
func RecoveryRecords(v any) any {
	b, ok := blobOf(v)
	if !ok {
		return []any{}
	}
	recs := make([]any, 0, len(b)/36)
	for i := 0; i+36 <= len(b); i += 36 {
		chunk := b[i : i+36]
		recs = append(recs, map[string]any{
			"amount":       doubleField(chunk, 0),
			"units":        textField(chunk, 8, 15),
			"descriptions": textField(chunk, 15, 36),
		})
	}
	return recs
}

// TreatmentRecords decodes a fixed-stride blob of 110-byte well
// treatment entries. Field layout within each stride:
//
//	type       text    0:8
//	top        float64 8
//	base       float64 16
//	amount1    float64 24
//	units1     text    32:39
//	desc       text    39:60
//	agent      text    60:70
//	amount2    float64 70
//	units2     text    78:85
//	fmbrk      float64 85
//	num_stages int32   93
//	additive   text    97:102
//	inj_rate   float64 102
//
// Nil input decodes to an empty list.
func TreatmentRecords(v any) any {
	b, ok := blobOf(v)
	if !ok {
		return []any{}
	}
	recs := make([]any, 0, len(b)/110)
	for i := 0; i+110 <= len(b); i += 110 {
		chunk := b[i : i+110]
		recs = append(recs, map[string]any{
			"type":       textField(chunk, 0, 8),
			"top":        doubleField(chunk, 8),
			"base":       doubleField(chunk, 16),
			"amount1":    doubleField(chunk, 24),
			"units1":     textField(chunk, 32, 39),
			"desc":       textField(chunk, 39, 60),
			"agent":      textField(chunk, 60, 70),
			"amount2":    doubleField(chunk, 70),
			"units2":     textField(chunk, 78, 85),
			"fmbrk":      doubleField(chunk, 85),
			"num_stages": longField(chunk, 93),
			"additive":   textField(chunk, 97, 102),
			"inj_rate":   doubleField(chunk, 102),
		})
	}
	return recs
}

func blobOf(v any) ([]byte, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case []byte:
		return x, true
	case string:
		return []byte(x), true
	default:
		return nil, false
	}
}

// textField reads b[start:end] up to the first NUL. Out-of-range
// slices and bytes that are not valid UTF-8 yield nil for the field
// only.
func textField(b []byte, start, end int) any {
	if start >= len(b) {
		return nil
	}
	if end > len(b) {
		end = len(b)
	}
	s := string(b[start:end])
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if !utf8.ValidString(s) {
		return nil
	}
	return s
}

func doubleField(b []byte, start int) any {
	if start+8 > len(b) {
		return nil
	}
	return math.Float64frombits(
		binary.LittleEndian.Uint64(b[start : start+8]),
	)
}

func shortField(b []byte, start int) any {
	if start+2 > len(b) {
		return nil
	}
	return int16(binary.LittleEndian.Uint16(b[start : start+2]))
}

func longField(b []byte, start int) any {
	if start+4 > len(b) {
		return nil
	}
	return int32(binary.LittleEndian.Uint32(b[start : start+4]))
}
