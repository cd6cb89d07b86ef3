package libdiff

import (
	"strconv"

	"github.com/signadot/objmap/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// array aligns the elements of from and to by diffing a sequence of
// element summaries, one rune per distinct summary:
//
//  1. scalars are summarized by type and value, containers by type and
//     structural hash
//  2. summaries that match are compared recursively
//  3. a deletion directly followed by an insertion is paired with it and
//     compared recursively, so a changed container reports the changes
//     inside it
//
// Paths name the index in from for deletions and the index in to
// otherwise.
func (d *differ) array(path string, from, to *ir.Node) {
	m := map[string]rune{}
	fromRunes := summarize(m, from)
	toRunes := summarize(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	var pending []int
	flush := func() {
		for _, i := range pending {
			d.add(Change{Path: indexPath(path, i), Op: Delete, From: from.Values[i]})
		}
		pending = pending[:0]
	}
	for _, diff := range diffs {
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range n {
				pending = append(pending, fi)
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(pending) > 0 {
					i := pending[0]
					pending = pending[1:]
					d.node(indexPath(path, ti), from.Values[i], to.Values[ti])
				} else {
					d.add(Change{Path: indexPath(path, ti), Op: Insert, To: to.Values[ti]})
				}
				ti++
			}
			flush()
		case diffpatch.DiffEqual:
			flush()
			for range n {
				d.node(indexPath(path, ti), from.Values[fi], to.Values[ti])
				fi++
				ti++
			}
		}
	}
	flush()
}

func summarize(m map[string]rune, y *ir.Node) []rune {
	res := make([]rune, len(y.Values))
	for i, v := range y.Values {
		s := summary(v)
		r, ok := m[s]
		if !ok {
			// skip the surrogate range so every summary is a valid rune
			r = rune(len(m)) + 1
			if r >= 0xD800 {
				r += 0x800
			}
			m[s] = r
		}
		res[i] = r
	}
	return res
}

func summary(y *ir.Node) string {
	if !y.Type.IsLeaf() {
		return y.Type.String() + "#" + strconv.FormatUint(y.Hash(), 16)
	}
	return y.Type.String() + ":" + ir.Format(y)
}
