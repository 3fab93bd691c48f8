package decode

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packFloats(vals ...float64) []byte {
	b := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b
}

func TestLogCurveDigits(t *testing.T) {
	got, err := LogCurveDigits(packFloats(1.5, -2.25, 0))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.25, 0}, got)
}

func TestLogCurveDigitsEmpty(t *testing.T) {
	got, err := LogCurveDigits(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = LogCurveDigits([]byte{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLogCurveDigitsNonFinite(t *testing.T) {
	_, err := LogCurveDigits(packFloats(1.0, math.NaN()))
	require.Error(t, err)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)

	_, err = LogCurveDigits(packFloats(math.Inf(1)))
	require.Error(t, err)
}

func TestLogCurveDigitsBadStride(t *testing.T) {
	_, err := LogCurveDigits([]byte{1, 2, 3})
	require.Error(t, err)
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestLogHeaderText(t *testing.T) {
	in := []byte(`"~VERSION";"WRAP. NO";"STRT.F 100"`)
	assert.Equal(t, "~VERSION\nWRAP. NO\nSTRT.F 100", LogHeaderText(in))
	assert.Nil(t, LogHeaderText(nil))
}

func TestCongressional(t *testing.T) {
	b := make([]byte, 412)
	copy(b[4:], "12")                                        // township
	copy(b[21:], "08")                                       // range
	copy(b[38:], "36\x00")                                   // section
	b[70] = 'W'                                              // range_ew
	b[71] = 'N'                                              // township_ns
	binary.LittleEndian.PutUint16(b[72:], 2)                 // footage_call_ew_ref
	binary.LittleEndian.PutUint16(b[76:], 1)                 // footage_call_ns_ref
	binary.LittleEndian.PutUint64(b[80:], math.Float64bits(660))  // ew
	binary.LittleEndian.PutUint64(b[88:], math.Float64bits(1980)) // ns
	copy(b[96:], "SE SW\x00")                                // spot
	copy(b[137:], "FSL FWL\x00")                             // footage_ref
	copy(b[153:], "06")                                      // meridian
	copy(b[156:], "remarks here\x00")                        // remarks

	got, ok := Congressional(b).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "12", got["township"])
	assert.Equal(t, "N", got["township_ns"])
	assert.Equal(t, "08", got["range"])
	assert.Equal(t, "W", got["range_ew"])
	assert.Equal(t, "36", got["section"])
	assert.Equal(t, "06", got["meridian"])
	assert.Equal(t, "SE SW", got["spot"])
	assert.Equal(t, "FSL FWL", got["footage_ref"])
	assert.Equal(t, 1980.0, got["footage_call_ns"])
	assert.Equal(t, int16(1), got["footage_call_ns_ref"])
	assert.Equal(t, 660.0, got["footage_call_ew"])
	assert.Equal(t, int16(2), got["footage_call_ew_ref"])
	assert.Equal(t, "remarks here", got["remarks"])
}

// A truncated blob nulls the out-of-range fields without failing the
// whole record.
func TestCongressionalTruncated(t *testing.T) {
	b := make([]byte, 40)
	copy(b[4:], "07")

	got, ok := Congressional(b).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "07", got["township"])
	assert.Nil(t, got["meridian"])
	assert.Nil(t, got["footage_call_ns"])

	assert.Nil(t, Congressional(nil))
}

// Garbage bytes in a text field null that field only, they never leak
// into the output as a raw byte string.
func TestCongressionalInvalidUTF8(t *testing.T) {
	b := make([]byte, 412)
	copy(b[4:], []byte{0xFF, 0xFE})
	copy(b[21:], "08")

	got, ok := Congressional(b).(map[string]any)
	require.True(t, ok)
	assert.Nil(t, got["township"])
	assert.Equal(t, "08", got["range"])
}

func TestRecoveryRecords(t *testing.T) {
	rec := make([]byte, 36)
	binary.LittleEndian.PutUint64(rec[0:], math.Float64bits(12.5))
	copy(rec[8:], "BBLS\x00")
	copy(rec[15:], "MUD CUT WATER\x00")

	got, ok := RecoveryRecords(append(rec, rec...)).([]any)
	require.True(t, ok)
	require.Len(t, got, 2)

	first := got[0].(map[string]any)
	assert.Equal(t, 12.5, first["amount"])
	assert.Equal(t, "BBLS", first["units"])
	assert.Equal(t, "MUD CUT WATER", first["descriptions"])
}

func TestRecoveryRecordsNil(t *testing.T) {
	assert.Equal(t, []any{}, RecoveryRecords(nil))
}

func TestTreatmentRecords(t *testing.T) {
	rec := make([]byte, 110)
	copy(rec[0:], "FRAC\x00")
	binary.LittleEndian.PutUint64(rec[8:], math.Float64bits(5000))
	binary.LittleEndian.PutUint64(rec[16:], math.Float64bits(5200))
	binary.LittleEndian.PutUint64(rec[24:], math.Float64bits(30000))
	copy(rec[32:], "GALS\x00")
	copy(rec[39:], "SLICK WATER\x00")
	copy(rec[60:], "SAND\x00")
	binary.LittleEndian.PutUint32(rec[93:], 4)

	got, ok := TreatmentRecords(rec).([]any)
	require.True(t, ok)
	require.Len(t, got, 1)

	tr := got[0].(map[string]any)
	assert.Equal(t, "FRAC", tr["type"])
	assert.Equal(t, 5000.0, tr["top"])
	assert.Equal(t, 5200.0, tr["base"])
	assert.Equal(t, 30000.0, tr["amount1"])
	assert.Equal(t, "GALS", tr["units1"])
	assert.Equal(t, "SLICK WATER", tr["desc"])
	assert.Equal(t, "SAND", tr["agent"])
	assert.Equal(t, int32(4), tr["num_stages"])
}

func TestTreatmentRecordsNil(t *testing.T) {
	assert.Equal(t, []any{}, TreatmentRecords(nil))
}
