// Package gomap converts between [ir.Node] values and instances of
// registered types.
//
// # Usage
//
//	reg := schema.NewRegistry()
//	err := reg.Register(userType, addressType)
//	m := gomap.NewMapper(reg)
//
//	// node to instance
//	res, err := m.Decode("User", node)
//	if err != nil {
//	    // unknown type: nothing was built
//	}
//	user := res.Value.(*User)
//	for _, fe := range res.Errors {
//	    // problems with single fields; the rest of user is populated
//	}
//
//	// instance to node
//	out, err := m.Encode("User", user)
//
// Field problems never stop a conversion. Missing keys, values of the
// wrong kind and failed conversions are collected as [FieldError] values
// alongside a partially populated result, and callers decide which of them
// matter. Only an unknown type, or an instance of the wrong Go type when
// encoding, is fatal.
//
// The package level functions use the registry of [schema.DefaultRegistry]
// unless [SetDefaultRegistry] installs another.
//
// # Related Packages
//
//   - github.com/signadot/objmap/schema - type descriptors and registry
//   - github.com/signadot/objmap/coerce - scalar conversion rules
//   - github.com/signadot/objmap/ir - node representation
package gomap
