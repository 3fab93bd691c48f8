package petra

import "strings"

// ParseUWIs splits a user-supplied UWI filter string into wildcard
// patterns ready for SQL LIKE embedding. Terms are separated by commas
// or whitespace, double quotes are dropped, '*' becomes '%' and
// embedded single quotes are doubled.
//
// Example: `0505* pilot %0001` -> ["0505%", "pilot", "%0001"]
func ParseUWIs(uwis string) []string {
	cleaned := strings.ReplaceAll(uwis, ",", " ")
	cleaned = strings.ReplaceAll(cleaned, `"`, "")

	var res []string
	for _, term := range strings.Fields(cleaned) {
		term = strings.ReplaceAll(term, "*", "%")
		term = strings.ReplaceAll(term, "'", "''")
		res = append(res, term)
	}
	return res
}
