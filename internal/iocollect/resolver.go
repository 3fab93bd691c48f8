// Package iocollect implements the asset collection pipeline: resolve
// identifiers, batch them, run selector queries and assemble the rows
// into well-centric JSON documents streamed to a file. This is an
// impure I/O package that implements contracts defined in pkg/.
package iocollect

import (
	"log/slog"
	"strings"

	"github.com/rbhughes/purr-petra/pkg/petra"
)

// ident is one resolved identifier: a bare integer literal or a quoted
// string literal ready for SQL embedding.
type ident struct {
	raw     string
	numeric bool
}

// literal renders the identifier for an IN clause.
func (id ident) literal() string {
	if id.numeric {
		return id.raw
	}
	return "'" + strings.ReplaceAll(id.raw, "'", "''") + "'"
}

// group returns the batching group token: the text before the first
// '-' or the whole identifier when there is none.
func (id ident) group() string {
	if i := strings.Index(id.raw, "-"); i >= 0 {
		return id.raw[:i]
	}
	return id.raw
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func makeIdent(raw string) ident {
	raw = strings.TrimSpace(raw)
	return ident{raw: raw, numeric: isDigits(raw)}
}

// resolveIdentifiers interprets an identifier query result. Either a
// single row holds a comma-delimited "keylist" column, or each row
// holds one "key" column value. Anything else resolves to no
// identifiers, which is not an error.
func resolveIdentifiers(res *petra.Result) []ident {
	keyCol, listCol := -1, -1
	for i, col := range res.Columns {
		switch strings.ToLower(col.Name) {
		case "keylist":
			listCol = i
		case "key":
			keyCol = i
		}
	}

	if listCol >= 0 && len(res.Rows) == 1 {
		if v := res.Rows[0][listCol]; v != nil {
			var ids []ident
			for _, piece := range strings.Split(stringify(v), ",") {
				if piece = strings.TrimSpace(piece); piece != "" {
					ids = append(ids, makeIdent(piece))
				}
			}
			return ids
		}
	}

	if keyCol >= 0 {
		var ids []ident
		for _, row := range res.Rows {
			if v := row[keyCol]; v != nil {
				ids = append(ids, makeIdent(stringify(v)))
			}
		}
		return ids
	}

	slog.Warn("identifier query returned neither key nor keylist column")
	return nil
}
