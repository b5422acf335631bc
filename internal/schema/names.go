package schema

import (
	"strings"
)

// NameSeparator is the separator between namespace segments and the type name
// in a qualified name.
const NameSeparator byte = '.'

var NameSeparatorString = string(NameSeparator)

// TypeName is a string naming a type definition, qualified by its namespace.
// e.g. "Example.v1_0_0.Example", "Example.Example", or "Edm.String".
// TypeNames appear in payloads as the @odata.type annotation (with a leading
// '#') and in schema documents as BaseType and property Type attributes.
type TypeName string

// NewTypeName creates a TypeName from a payload or schema type string,
// stripping the '#' prefix used by @odata.type annotations.
func NewTypeName(s string) TypeName {
	return TypeName(strings.TrimPrefix(s, "#"))
}

// IsQualified reports whether the name carries a namespace.
func (n TypeName) IsQualified() bool {
	return strings.Contains(string(n), NameSeparatorString)
}

// Namespace returns the namespace portion of the name - everything before the
// final separator. e.g. "Example.v1_0_0" for "Example.v1_0_0.Example".
func (n TypeName) Namespace() string {
	i := strings.LastIndexByte(string(n), NameSeparator)
	if i < 0 {
		return ""
	}
	return string(n)[:i]
}

// Type returns the bare type portion of the name - everything after the final
// separator. e.g. "Example" for "Example.v1_0_0.Example".
func (n TypeName) Type() string {
	i := strings.LastIndexByte(string(n), NameSeparator)
	return string(n)[i+1:]
}

// Base returns the unversioned base of the owning namespace.
// e.g. "Example" for "Example.v1_0_0.Example" and for "Example.Example".
func (n TypeName) Base() string {
	base, _ := SplitNamespaceVersion(n.Namespace())
	return base
}

// Version returns the version carried by the namespace portion of the name,
// or nil when the namespace is unversioned.
func (n TypeName) Version() *Version {
	_, v := SplitNamespaceVersion(n.Namespace())
	return v
}

func (n TypeName) typeRef() {}

// TypeRef identifies a type for document-local resolution. It is either a
// TypeName still to be resolved, or an already resolved *RedfishType which
// passes through unchanged. No other implementations exist.
type TypeRef interface {
	typeRef()
}

// SplitNamespaceVersion splits a namespace name into its unversioned base and
// its version. e.g. "Example.v1_0_1" yields ("Example", v1_0_1) and "Example"
// yields ("Example", nil). A trailing segment that does not parse as a version
// is part of the base.
func SplitNamespaceVersion(ns string) (string, *Version) {
	i := strings.LastIndexByte(ns, NameSeparator)
	if i < 0 {
		return ns, nil
	}
	v, err := ParseVersion(ns[i+1:])
	if err != nil {
		return ns, nil
	}
	return ns[:i], &v
}

// JoinNamespaceVersion builds a namespace name from a base and an optional
// version. It is the inverse of SplitNamespaceVersion.
func JoinNamespaceVersion(base string, v *Version) string {
	if v == nil {
		return base
	}
	return base + NameSeparatorString + v.String()
}

const collectionPrefix = "Collection("

// IsCollection reports whether a declared type reference is a collection,
// e.g. "Collection(Example.v1_0_0.Links)".
func IsCollection(t string) bool {
	return strings.HasPrefix(t, collectionPrefix) && strings.HasSuffix(t, ")")
}

// UnwrapCollection returns the element type of a collection reference, or the
// reference unchanged if it is not a collection.
func UnwrapCollection(t string) string {
	if !IsCollection(t) {
		return t
	}
	return t[len(collectionPrefix) : len(t)-1]
}
