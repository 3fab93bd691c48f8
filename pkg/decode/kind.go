package decode

import "strings"

// Kind names one decoder. Recipes refer to decoders by these names in
// their transform maps; columns without an entry get a default Kind
// derived from the column's native type.
type Kind string

const (
	// KindIdentity passes the value through unchanged.
	KindIdentity Kind = "identity"

	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindString    Kind = "string"
	KindMemo      Kind = "memo_to_string"
	KindHex       Kind = "blob_to_hex"
	KindExcelDate Kind = "excel_date"

	KindLogCurveDigits Kind = "logdata_digits"
	KindLogHeaderText  Kind = "loglas_lashdr"
	KindCongressional  Kind = "parse_congressional"
	KindRecovery       Kind = "fmtest_recovery"
	KindTreatment      Kind = "treat_records"

	KindArrayOfInt       Kind = "array_of_int"
	KindArrayOfFloat     Kind = "array_of_float"
	KindArrayOfString    Kind = "array_of_string"
	KindArrayOfExcelDate Kind = "array_of_excel_date"
)

// Known reports whether name is a recognized decoder name.
func Known(name string) bool {
	switch Kind(name) {
	case KindIdentity, KindInt, KindFloat, KindString, KindMemo,
		KindHex, KindExcelDate, KindLogCurveDigits, KindLogHeaderText,
		KindCongressional, KindRecovery, KindTreatment,
		KindArrayOfInt, KindArrayOfFloat, KindArrayOfString,
		KindArrayOfExcelDate:
		return true
	}
	return false
}

// Apply runs the decoder on one raw value. Only the binary log-curve
// decoder can fail; every other kind is total and returns a nil error.
// An unrecognized Kind behaves as identity.
func (k Kind) Apply(v any) (any, error) {
	switch k {
	case KindInt:
		return SafeInt(v), nil
	case KindFloat:
		return SafeFloat(v), nil
	case KindString:
		return SafeString(v), nil
	case KindMemo:
		return MemoToString(v), nil
	case KindHex:
		return BlobToHex(v), nil
	case KindExcelDate:
		return ExcelDate(v), nil
	case KindLogCurveDigits:
		return LogCurveDigits(v)
	case KindLogHeaderText:
		return LogHeaderText(v), nil
	case KindCongressional:
		return Congressional(v), nil
	case KindRecovery:
		return RecoveryRecords(v), nil
	case KindTreatment:
		return TreatmentRecords(v), nil
	case KindArrayOfInt:
		return ArrayOfInt(v), nil
	case KindArrayOfFloat:
		return ArrayOfFloat(v), nil
	case KindArrayOfString:
		return ArrayOfString(v), nil
	case KindArrayOfExcelDate:
		return ArrayOfExcelDate(v), nil
	case KindIdentity:
		return v, nil
	default:
		return v, nil
	}
}

// KindForType maps a driver-reported native column type to a default
// decoder. Types with no sensible default pass through unchanged.
func KindForType(typeName string) Kind {
	switch strings.ToUpper(typeName) {
	case "TINYINT", "SMALLINT", "INTEGER", "INT", "BIGINT", "AUTOINC":
		return KindInt
	case "FLOAT", "DOUBLE", "REAL", "DECIMAL", "NUMERIC":
		return KindFloat
	case "CHAR", "VARCHAR", "NCHAR", "NVARCHAR", "STRING", "WVARCHAR":
		return KindString
	case "MEMO", "LONGVARCHAR", "TEXT":
		return KindMemo
	default:
		return KindIdentity
	}
}
