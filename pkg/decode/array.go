package decode

import "strings"

// arrayOf splits a delimited pseudo-array column and maps each element
// through a scalar decoder. The per-element null sentinel decodes to
// nil.
func arrayOf(v any, scalar func(any) any) any {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		if b, isBlob := v.([]byte); isBlob {
			s = string(b)
		} else {
			return nil
		}
	}
	parts := strings.Split(s, Delim)
	res := make([]any, len(parts))
	for i, p := range parts {
		if p == Null {
			res[i] = nil
			continue
		}
		res[i] = scalar(p)
	}
	return res
}

// ArrayOfInt decodes a delimited pseudo-array of integers.
func ArrayOfInt(v any) any { return arrayOf(v, SafeInt) }

// ArrayOfFloat decodes a delimited pseudo-array of floats.
func ArrayOfFloat(v any) any { return arrayOf(v, SafeFloat) }

// ArrayOfString decodes a delimited pseudo-array of strings.
func ArrayOfString(v any) any { return arrayOf(v, SafeString) }

// ArrayOfExcelDate decodes a delimited pseudo-array of day-serial
// dates.
func ArrayOfExcelDate(v any) any { return arrayOf(v, ExcelDate) }
