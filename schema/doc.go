// Package schema describes how Go types correspond to [ir.Node] values.
//
// A [TypeDescriptor] lists the fields of one target type. Each [Field]
// names the key path it is read from, the kind of value it expects and
// the accessor that reaches the field on an instance. Accessors are
// ordinary closures returning a pointer to the field, so descriptors are
// checked by the compiler and no reflection is involved:
//
//	type User struct {
//		Name    string
//		Age     int
//		Address Address
//		Tags    []string
//	}
//
//	var userType = schema.Describe[User]("User",
//		schema.String("name", func(u *User) *string { return &u.Name }),
//		schema.Int("age", func(u *User) *int { return &u.Age }).WithDefault(0),
//		schema.Object("address", "Address", func(u *User) *Address { return &u.Address }),
//		schema.Strings("tags", func(u *User) *[]string { return &u.Tags }).At("meta", "tags"),
//	).WithRoot("response", "user")
//
// Descriptors are published in a [Registry]. Registration checks the
// descriptor and fails on configuration errors such as two fields reading
// the same key path with different expectations.
//
// Types declared in YAML documents (see [Load]) use [Record] instances,
// which hold field values by name.
//
// # Related Packages
//
//   - github.com/signadot/objmap/gomap - decodes and encodes using descriptors
//   - github.com/signadot/objmap/coerce - scalar conversions used by fields
//   - github.com/signadot/objmap/transform - custom field representations
package schema
