package schema

import "testing"

func TestNamingApply(t *testing.T) {
	tests := []struct {
		n    Naming
		in   string
		want string
	}{
		{Identity, "UserID", "UserID"},
		{SnakeCase, "UserID", "user_id"},
		{SnakeCase, "HTTPServer", "http_server"},
		{SnakeCase, "firstName", "first_name"},
		{SnakeCase, "name", "name"},
		{KebabCase, "first_name", "first-name"},
		{CamelCase, "first_name", "firstName"},
		{CamelCase, "HTTPServer", "httpServer"},
		{CamelCase, "ID", "id"},
		{PascalCase, "first-name", "FirstName"},
		{SnakeCase, "Address2City", "address2_city"},
	}
	for _, tt := range tests {
		if got := tt.n.Apply(tt.in); got != tt.want {
			t.Errorf("%q.Apply(%q) = %q, want %q", tt.n, tt.in, got, tt.want)
		}
	}
}

func TestNamingUnmarshal(t *testing.T) {
	var n Naming
	if err := n.UnmarshalText([]byte("kebab")); err != nil || n != KebabCase {
		t.Errorf("kebab = %q, %v", n, err)
	}
	if err := n.UnmarshalText([]byte("identity")); err != nil || n != Identity {
		t.Errorf("identity = %q, %v", n, err)
	}
	if err := n.UnmarshalText([]byte("shout")); err == nil {
		t.Error("expected error for unknown naming")
	}
}
