// Package decode converts raw DBISAM column values into JSON-safe
// values. Every decoder is a pure function that is total over its
// declared input domain: unparseable or sentinel input yields nil
// rather than an error. The single exception is log-curve digit
// unpacking, which reports a DecodeError when the binary layout
// assumption no longer holds.
package decode

import (
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Null and Delim are the literal sentinel tokens the recipes embed in
// delimited pseudo-array columns.
const (
	Null  = "_purrNULL_"
	Delim = "_purrDELIM_"
)

// missingMarker is DBISAM's explicit "no value" string.
const missingMarker = "<NA>"

var controlChars = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)

// SafeInt parses v as an integer, nil when it cannot.
func SafeInt(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case float32:
		return int64(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return int64(x)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil
		}
		return i
	default:
		return nil
	}
}

// SafeFloat parses v as a float, nil when it cannot or the result is
// not a number.
func SafeFloat(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return finiteOrNil(float64(x))
	case float64:
		return finiteOrNil(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		return finiteOrNil(f)
	default:
		return nil
	}
}

func finiteOrNil(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

// SafeString strips control characters, coerces the value to UTF-8
// (reading bytes as CP1252/Latin-1 when they are not valid UTF-8),
// drops non-printable runes and trims surrounding whitespace.
// Nil and the DBISAM missing-value marker decode to nil; the marker
// is recognized after trimming so the output is a fixed point.
func SafeString(v any) any {
	s, ok := stringify(v)
	if !ok {
		return nil
	}
	return markerOrNil(cleanString(s))
}

// MemoToString is SafeString without the byte-level re-decode step;
// DBISAM memo fields arrive already decoded by the driver.
func MemoToString(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return markerOrNil(cleanString(x))
	case []byte:
		return markerOrNil(cleanString(string(x)))
	default:
		return markerOrNil(cleanString(fmt.Sprint(x)))
	}
}

func markerOrNil(s string) any {
	if s == missingMarker {
		return nil
	}
	return s
}

// BlobToHex renders a binary blob as a 0x-prefixed hex string.
func BlobToHex(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case string:
		return "0x" + hex.EncodeToString([]byte(x))
	default:
		return nil
	}
}

// noDate matches Petra's "no date" sentinel, scientific notation for
// 1e30.
var noDate = regexp.MustCompile(`^1[eE]\+?30`)

var excelEpoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// ExcelDate decodes Petra's spreadsheet-style day-serial dates to an
// ISO-8601 timestamp. The serial is days since the epoch where 25569
// is 1970-01-01. The 1e30 sentinel and non-numeric input decode to
// nil.
func ExcelDate(v any) any {
	if v == nil {
		return nil
	}
	s := fmt.Sprint(v)
	if noDate.MatchString(s) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	days := f - 25569
	t := excelEpoch.Add(time.Duration(days * 24 * float64(time.Hour)))
	return t.Format("2006-01-02T15:04:05")
}

// stringify turns a raw column value into a string, reporting false
// for nil and the missing-value marker. Byte slices that are not valid
// UTF-8 are read as CP1252/Latin-1, one byte per rune.
func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		if x == missingMarker {
			return "", false
		}
		if utf8.ValidString(x) {
			return x, true
		}
		return latin1String([]byte(x)), true
	case []byte:
		if utf8.Valid(x) {
			return string(x), true
		}
		return latin1String(x), true
	default:
		s := fmt.Sprint(x)
		if s == missingMarker {
			return "", false
		}
		return s, true
	}
}

func latin1String(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

func cleanString(s string) string {
	s = controlChars.ReplaceAllString(s, "")
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
