package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffString renders an inline character diff of from and to, with
// deletions as [-text-] and insertions as {+text+}. It returns "" when the
// strings are equal or share too little for an inline diff to help.
func DiffString(from, to string) string {
	dmp := diffpatch.New()
	multiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, multiLine))
	var b strings.Builder
	diffSize := 0
	for _, diff := range diffs {
		switch diff.Type {
		case diffpatch.DiffDelete:
			b.WriteString("[-" + diff.Text + "-]")
			diffSize += len(diff.Text)
		case diffpatch.DiffInsert:
			b.WriteString("{+" + diff.Text + "+}")
			diffSize += len(diff.Text)
		case diffpatch.DiffEqual:
			b.WriteString(diff.Text)
		}
	}
	if diffSize == 0 || diffSize > max(len(from), len(to))/2 {
		return ""
	}
	return b.String()
}
