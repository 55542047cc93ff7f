package compid

import (
	"fmt"
	"regexp"
	"strings"
)

// partRegex validates one side of the `package/class` form.
var partRegex = regexp.MustCompile(`^[A-Za-z0-9_$][A-Za-z0-9_.$-]*$`)

// ID is the structured identifier of the unit implementing a provider.
type ID struct {
	Package string
	Class   string
}

// New builds an ID from a package and a class. A class written in the
// abbreviated `.Suffix` form is expanded against the package.
func New(pkg, class string) ID {
	if strings.HasPrefix(class, ".") {
		class = pkg + class
	}
	return ID{Package: pkg, Class: class}
}

// Parse creates an ID by parsing its canonical string representation.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("component identifier cannot be empty")
	}

	pkg, class, found := strings.Cut(raw, "/")
	if !found {
		return ID{}, fmt.Errorf("component identifier %q has no '/' separator", raw)
	}
	if !partRegex.MatchString(pkg) {
		return ID{}, fmt.Errorf("invalid package part: %q", pkg)
	}
	if class == "" {
		return ID{}, fmt.Errorf("component identifier %q has an empty class part", raw)
	}
	if expanded := strings.TrimPrefix(class, "."); !partRegex.MatchString(expanded) {
		return ID{}, fmt.Errorf("invalid class part: %q", class)
	}

	return New(pkg, class), nil
}

// MustParse is like Parse but panics on malformed input. Useful in tests
// and for compile-time-constant identifiers.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether the identifier is incomplete.
func (id ID) IsZero() bool {
	return id.Package == "" || id.Class == ""
}

// String serializes the ID into its canonical `package/class` form.
func (id ID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Package + "/" + id.Class
}

// ShortString serializes the ID, abbreviating the class to `.Suffix` when
// it lives inside the package. Dumps use this form to keep lines readable.
func (id ID) ShortString() string {
	if id.IsZero() {
		return ""
	}
	if rest, ok := strings.CutPrefix(id.Class, id.Package+"."); ok {
		return id.Package + "/." + rest
	}
	return id.Package + "/" + id.Class
}
