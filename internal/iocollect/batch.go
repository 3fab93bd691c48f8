package iocollect

// batchIdents packs identifiers into batches of at most maxSize while
// never splitting a group (identifiers sharing a group token) across
// batches. Group order follows first appearance and order within a
// group is preserved, so concatenating the batches reproduces the
// input exactly. A single group larger than maxSize stays whole and
// forms an oversized batch by itself.
func batchIdents(ids []ident, maxSize int) [][]ident {
	if len(ids) == 0 {
		return nil
	}
	if maxSize < 1 {
		maxSize = 1
	}

	var order []string
	groups := make(map[string][]ident)
	for _, id := range ids {
		g := id.group()
		if _, seen := groups[g]; !seen {
			order = append(order, g)
		}
		groups[g] = append(groups[g], id)
	}

	var batches [][]ident
	var cur []ident
	for _, g := range order {
		members := groups[g]
		if len(cur) > 0 && len(cur)+len(members) > maxSize {
			batches = append(batches, cur)
			cur = nil
		}
		cur = append(cur, members...)
	}
	if len(cur) > 0 {
		batches = append(batches, cur)
	}
	return batches
}
