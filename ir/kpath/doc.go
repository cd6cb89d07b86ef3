// Package kpath provides the textual form of key paths.
//
// A key path names a value nested in objects, one key per segment:
//
//	"response.user.name"    // ["response", "user", "name"]
//	"meta.'x.y'"            // ["meta", "x.y"]
//	`"first name"`          // ["first name"]
//
// Segments containing '.', '[', '{', quotes or spaces are quoted with
// single or double quotes. Double quoted segments use Go string escapes.
// Array indices are not part of key paths.
//
// # Usage
//
//	path, err := kpath.Parse("response.user")
//	s := kpath.String(path) // "response.user"
//
// # Related Packages
//
//   - github.com/signadot/objmap/ir - values the paths navigate
package kpath
