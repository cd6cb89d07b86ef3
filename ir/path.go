package ir

// Lookup descends path key by key from y and returns the node found.
// An empty path resolves to y itself.
func (y *Node) Lookup(path ...string) (*Node, bool) {
	res, n := y.LookupPrefix(path)
	if n != len(path) {
		return nil, false
	}
	return res, true
}

// LookupPrefix resolves the longest prefix of path that exists below y. It
// returns the node at the end of that prefix and the number of segments
// consumed. n == len(path) means the whole path resolved.
func (y *Node) LookupPrefix(path []string) (res *Node, n int) {
	res = y
	for n < len(path) {
		if res == nil || res.Type != ObjectType {
			return res, n
		}
		next := Get(res, path[n])
		if next == nil {
			return res, n
		}
		res = next
		n++
	}
	return res, n
}

// Wrap nests node under path, innermost key last:
//
//	Wrap([]string{"a", "b"}, v) => {a: {b: v}}
func Wrap(path []string, node *Node) *Node {
	res := node
	for i := len(path) - 1; i >= 0; i-- {
		res = FromKeyVals([]KeyVal{{Key: path[i], Val: res}})
	}
	return res
}
