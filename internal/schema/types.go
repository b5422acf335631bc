package schema

import (
	"sort"

	"github.com/kapil1024/Redfish-Service-Validator/internal/csdl"
)

// TypeKind classifies a resolved type by the CSDL element that declared it.
type TypeKind string

const (
	TypeEntity  TypeKind = "EntityType"
	TypeComplex TypeKind = "ComplexType"
	TypeEnum    TypeKind = "EnumType"
	TypeAlias   TypeKind = "TypeDefinition"
	TypeAction  TypeKind = "Action"
)

// PropertyDefinition is one declared property of an entity or complex type.
// Nullable defaults to true when the CSDL leaves it unspecified.
type PropertyDefinition struct {
	Name       string
	Type       string
	Nullable   bool
	Navigation bool
}

// RedfishType is a fully resolved type: its declaring namespace, its base
// chain, and the property set flattened across it. Instances are built once
// per catalog and shared; treat them as immutable.
type RedfishType struct {
	Name      TypeName
	Kind      TypeKind
	Abstract  bool
	Namespace *Namespace
	BaseType  *RedfishType

	catalog    *Catalog
	own        []PropertyDefinition
	flat       []PropertyDefinition
	members    []string
	underlying string
}

// typeRef marks *RedfishType as a TypeRef so resolved types pass through
// Document.GetTypeInSchemaDoc unchanged.
func (t *RedfishType) typeRef() {}

func (t *RedfishType) String() string {
	return string(t.Name)
}

// Properties returns the property set flattened over the base chain, base
// properties first, with redeclarations overriding in place.
func (t *RedfishType) Properties() []PropertyDefinition {
	return t.flat
}

// OwnProperties returns only the properties declared on this type itself.
func (t *RedfishType) OwnProperties() []PropertyDefinition {
	return t.own
}

// Property returns the flattened property with the given name.
func (t *RedfishType) Property(name string) (PropertyDefinition, bool) {
	for _, pd := range t.flat {
		if pd.Name == name {
			return pd, true
		}
	}
	return PropertyDefinition{}, false
}

// Members returns an enum type's member names in declaration order.
func (t *RedfishType) Members() []string {
	return t.members
}

// HasMember reports whether an enum type declares the given member.
func (t *RedfishType) HasMember(name string) bool {
	for _, m := range t.members {
		if m == name {
			return true
		}
	}
	return false
}

// Underlying returns a TypeDefinition's underlying type name, such as
// "Edm.String".
func (t *RedfishType) Underlying() string {
	return t.underlying
}

// BaseChain returns the names of the base types from this type upward,
// starting with the type itself.
func (t *RedfishType) BaseChain() []TypeName {
	var chain []TypeName
	for cur := t; cur != nil; cur = cur.BaseType {
		chain = append(chain, cur.Name)
	}
	return chain
}

// IsAssignableTo reports whether name appears anywhere in the base chain.
// The comparison ignores a leading '#'.
func (t *RedfishType) IsAssignableTo(name string) bool {
	want := NewTypeName(name)
	for cur := t; cur != nil; cur = cur.BaseType {
		if cur.Name == want {
			return true
		}
	}
	return false
}

// buildType constructs the RedfishType for typeName inside ns, resolving its
// base chain through this document's references. chain carries the path of
// types already being built; revisiting one is a circular base chain.
func (d *Document) buildType(ns *Namespace, typeName string, chain []TypeName) (*RedfishType, error) {
	qual := TypeName(ns.Name + NameSeparatorString + typeName)

	if d.catalog != nil {
		if t, ok := d.catalog.cachedType(qual); ok {
			return t, nil
		}
	}

	for _, visited := range chain {
		if visited == qual {
			cycle := append(append([]TypeName{}, chain...), qual)
			return nil, &CircularReferenceError{Cycle: cycle}
		}
	}
	chain = append(chain, qual)

	t := &RedfishType{Name: qual, Namespace: ns, catalog: d.catalog}

	switch {
	case ns.entities[typeName] != nil:
		e := ns.entities[typeName]
		t.Kind = TypeEntity
		t.Abstract = e.Abstract
		t.own = propertyDefs(e.Properties, e.NavigationProperties)
		if err := d.resolveBase(t, e.BaseType, chain); err != nil {
			return nil, err
		}
	case ns.complexes[typeName] != nil:
		ct := ns.complexes[typeName]
		t.Kind = TypeComplex
		t.Abstract = ct.Abstract
		t.own = propertyDefs(ct.Properties, ct.NavigationProperties)
		if err := d.resolveBase(t, ct.BaseType, chain); err != nil {
			return nil, err
		}
	case ns.enums[typeName] != nil:
		et := ns.enums[typeName]
		t.Kind = TypeEnum
		t.members = make([]string, len(et.Members))
		for i, m := range et.Members {
			t.members[i] = m.Name
		}
	case ns.typedefs[typeName] != nil:
		t.Kind = TypeAlias
		t.underlying = ns.typedefs[typeName].UnderlyingType
	case ns.actions[typeName] != nil:
		t.Kind = TypeAction
	default:
		return nil, &MissingSchemaError{Name: string(qual)}
	}

	t.flat = flattenProperties(t)

	if d.catalog != nil {
		d.catalog.storeType(qual, t)
	}
	return t, nil
}

// resolveBase resolves an optional BaseType reference and attaches it. The
// walk restarts its document visit set; chain alone detects cycles.
func (d *Document) resolveBase(t *RedfishType, baseRef string, chain []TypeName) error {
	if baseRef == "" {
		return nil
	}
	base, err := d.resolveType(TypeName(baseRef), chain, make(map[string]bool))
	if err != nil {
		return err
	}
	t.BaseType = base
	return nil
}

func propertyDefs(props []csdl.Property, navs []csdl.NavigationProperty) []PropertyDefinition {
	defs := make([]PropertyDefinition, 0, len(props)+len(navs))
	for _, p := range props {
		defs = append(defs, PropertyDefinition{
			Name:     p.Name,
			Type:     p.Type,
			Nullable: nullableDefault(p.Nullable),
		})
	}
	for _, np := range navs {
		defs = append(defs, PropertyDefinition{
			Name:       np.Name,
			Type:       np.Type,
			Nullable:   nullableDefault(np.Nullable),
			Navigation: true,
		})
	}
	return defs
}

func nullableDefault(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

// flattenProperties merges the inherited property set, base chain first.
// A property redeclared lower in the chain overrides its base declaration
// in place, keeping the base's position.
func flattenProperties(t *RedfishType) []PropertyDefinition {
	if t.BaseType == nil {
		return append([]PropertyDefinition(nil), t.own...)
	}

	flat := append([]PropertyDefinition(nil), t.BaseType.flat...)
	index := make(map[string]int, len(flat))
	for i, pd := range flat {
		index[pd.Name] = i
	}
	for _, pd := range t.own {
		if i, ok := index[pd.Name]; ok {
			flat[i] = pd
			continue
		}
		index[pd.Name] = len(flat)
		flat = append(flat, pd)
	}
	return flat
}

// TypeNames returns the names of every type declared in the namespace,
// sorted.
func (n *Namespace) TypeNames() []string {
	names := make([]string, 0, n.TypeCount())
	for name := range n.entities {
		names = append(names, name)
	}
	for name := range n.complexes {
		names = append(names, name)
	}
	for name := range n.enums {
		names = append(names, name)
	}
	for name := range n.typedefs {
		names = append(names, name)
	}
	for name := range n.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
