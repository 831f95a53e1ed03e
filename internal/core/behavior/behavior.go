// Package behavior defines the small capability contracts shared by the
// configuration model types: name-based identity and canonical map
// serialization.
package behavior

// Named is implemented by objects identified by a unique name within
// their owning collection.
type Named interface {
	Name() string
}

// NameEq reports whether two named objects are the same object for
// identity purposes. Equality is by name only; other attributes are
// ignored.
func NameEq(a, b Named) bool {
	return a.Name() == b.Name()
}

// Canonical is implemented by configuration objects that can render
// themselves back into the plain nested-map shape they were parsed from.
// The returned map is freshly built on each call and shares no mutable
// state with the receiver.
type Canonical interface {
	CanonicalMap() map[string]any
}
