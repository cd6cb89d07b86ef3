package libdiff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/ir/kpath"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	}
	return "?"
}

// Change is one difference. From is nil for an Insert and To for a
// Delete. Text holds an inline diff when both sides are strings.
type Change struct {
	Path string
	Op   Op
	From *ir.Node
	To   *ir.Node
	Text string
}

func (c Change) String() string {
	path := c.Path
	if path == "" {
		path = "<root>"
	}
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s: %s", path, ir.Format(c.To))
	case Delete:
		return fmt.Sprintf("- %s: %s", path, ir.Format(c.From))
	}
	if c.Text != "" {
		return fmt.Sprintf("~ %s: %s", path, c.Text)
	}
	return fmt.Sprintf("~ %s: %s -> %s", path, ir.Format(c.From), ir.Format(c.To))
}

// Diff returns the changes turning from into to, in document order.
// Equal trees give no changes.
func Diff(from, to *ir.Node) []Change {
	d := &differ{}
	d.node("", nilToNull(from), nilToNull(to))
	return d.changes
}

// Filter returns the changes for which keep is true.
func Filter(changes []Change, keep func(Change) bool) []Change {
	var res []Change
	for _, c := range changes {
		if keep(c) {
			res = append(res, c)
		}
	}
	return res
}

// String renders changes one per line.
func String(changes []Change) string {
	var b strings.Builder
	for _, c := range changes {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

type differ struct {
	changes []Change
}

func (d *differ) add(c Change) {
	d.changes = append(d.changes, c)
}

func (d *differ) node(path string, from, to *ir.Node) {
	if from.Type != to.Type {
		d.add(Change{Path: path, Op: Replace, From: from, To: to})
		return
	}
	switch from.Type {
	case ir.ObjectType:
		d.object(path, from, to)
	case ir.ArrayType:
		d.array(path, from, to)
	case ir.StringType:
		if from.String != to.String {
			d.add(Change{Path: path, Op: Replace, From: from, To: to, Text: DiffString(from.String, to.String)})
		}
	case ir.NumberType:
		if from.Number != to.Number {
			d.add(Change{Path: path, Op: Replace, From: from, To: to})
		}
	case ir.BoolType:
		if from.Bool != to.Bool {
			d.add(Change{Path: path, Op: Replace, From: from, To: to})
		}
	}
}

func (d *differ) object(path string, from, to *ir.Node) {
	for i, k := range from.Fields {
		fv := from.Values[i]
		tv := ir.Get(to, k)
		if tv == nil {
			d.add(Change{Path: keyPath(path, k), Op: Delete, From: fv})
			continue
		}
		d.node(keyPath(path, k), fv, tv)
	}
	for i, k := range to.Fields {
		if ir.Get(from, k) == nil {
			d.add(Change{Path: keyPath(path, k), Op: Insert, To: to.Values[i]})
		}
	}
}

func keyPath(prefix, key string) string {
	seg := kpath.String([]string{key})
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}

func indexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

func nilToNull(y *ir.Node) *ir.Node {
	if y == nil {
		return ir.Null()
	}
	return y
}
