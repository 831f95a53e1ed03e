// Package plugin defines the plugin type enumeration and the (type, name)
// reference identity used to index plugin configuration.
package plugin

import (
	"fmt"
)

// Type identifies a plugin category. The string value is the serialized
// form used in project files (e.g. "extractors").
type Type string

const (
	TypeExtractor    Type = "extractors"
	TypeLoader       Type = "loaders"
	TypeTransform    Type = "transforms"
	TypeTransformer  Type = "transformers"
	TypeOrchestrator Type = "orchestrators"
	TypeMapper       Type = "mappers"
	TypeUtility      Type = "utilities"
	TypeFile         Type = "files"
)

// ErrInvalidType is returned when a raw plugin type string does not match
// any known plugin category.
var ErrInvalidType = fmt.Errorf("invalid plugin type")

// Types returns all known plugin types in declaration order.
func Types() []Type {
	return []Type{
		TypeExtractor,
		TypeLoader,
		TypeTransform,
		TypeTransformer,
		TypeOrchestrator,
		TypeMapper,
		TypeUtility,
		TypeFile,
	}
}

// ParseType resolves a raw plugin type string to a Type. Unknown strings
// return an error wrapping ErrInvalidType; the zero Type is never a valid
// result.
func ParseType(raw string) (Type, error) {
	switch t := Type(raw); t {
	case TypeExtractor, TypeLoader, TypeTransform, TypeTransformer,
		TypeOrchestrator, TypeMapper, TypeUtility, TypeFile:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, raw)
	}
}

// String returns the serialized form of the type.
func (t Type) String() string {
	return string(t)
}

// Ref identifies one plugin by category and name. Name is unique within
// its type; two refs are the same plugin when both fields match.
type Ref struct {
	typ  Type
	name string
}

// NewRef creates a plugin reference.
func NewRef(t Type, name string) Ref {
	return Ref{typ: t, name: name}
}

// Type returns the plugin category.
func (r Ref) Type() Type {
	return r.typ
}

// Name returns the plugin name.
func (r Ref) Name() string {
	return r.name
}

// Equals reports whether other identifies the same plugin.
func (r Ref) Equals(other Ref) bool {
	return r.typ == other.typ && r.name == other.name
}

// String returns the "type/name" form used in log and error messages.
func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.typ, r.name)
}
