package schema

import (
	"sort"
	"strings"
)

// objectMember holds one declared property's populated state: the property
// itself, plus the nested object(s) when the declared type is structured.
type objectMember struct {
	prop *RedfishProperty
	obj  *RedfishObject
	list []*RedfishObject
}

// AsJSON renders the member, preferring the normalized nested rendering over
// the raw property value. The second return is false for absent members.
func (m *objectMember) AsJSON() (any, bool) {
	switch {
	case m.obj != nil:
		return m.obj.AsJSON(), true
	case m.list != nil:
		out := make([]any, len(m.list))
		for i, child := range m.list {
			out[i] = child.AsJSON()
		}
		return out, true
	case m.prop != nil:
		return m.prop.AsJSON()
	}
	return nil, false
}

// RedfishObject is a typed view over one payload object: every property the
// resolved type declares, populated from the payload by fuzzy key matching,
// plus the payload keys that matched nothing.
type RedfishObject struct {
	Type *RedfishType

	payload Value
	order   []string
	members map[string]*objectMember
	extras  map[string]Value
}

// NewObject builds the unpopulated skeleton for a resolved type: one absent
// member per declared property, in flattened declaration order.
func NewObject(t *RedfishType) *RedfishObject {
	o := &RedfishObject{
		Type:    t,
		members: make(map[string]*objectMember),
		extras:  make(map[string]Value),
	}
	for _, pd := range t.Properties() {
		o.order = append(o.order, pd.Name)
		o.members[pd.Name] = &objectMember{prop: newPropertyFromDef(pd, t.catalog)}
	}
	return o
}

// Payload returns the raw value this object was populated from.
func (o *RedfishObject) Payload() Value {
	return o.payload
}

// MemberNames returns the declared member names in schema order.
func (o *RedfishObject) MemberNames() []string {
	return o.order
}

// Property returns the populated property for a declared member.
func (o *RedfishObject) Property(name string) (*RedfishProperty, bool) {
	m, ok := o.members[name]
	if !ok {
		return nil, false
	}
	return m.prop, true
}

// Object returns the nested object populated for a structured member.
func (o *RedfishObject) Object(name string) (*RedfishObject, bool) {
	m, ok := o.members[name]
	if !ok || m.obj == nil {
		return nil, false
	}
	return m.obj, true
}

// Objects returns the nested objects populated for a structured collection
// member.
func (o *RedfishObject) Objects(name string) ([]*RedfishObject, bool) {
	m, ok := o.members[name]
	if !ok || m.list == nil {
		return nil, false
	}
	return m.list, true
}

// Extras returns the payload keys that matched no declared property.
func (o *RedfishObject) Extras() map[string]Value {
	return o.extras
}

// Populate builds a fresh object of the receiver's type from a payload
// value. Payload keys are claimed by declared properties through fuzzy
// matching; each claimed key is excluded from later matches. Structured
// members recurse. Checking continues past the first failure; the populated
// object is returned together with the first error encountered.
func (o *RedfishObject) Populate(payload Value, strict bool) (*RedfishObject, error) {
	out := NewObject(o.Type)
	out.payload = payload

	if payload.IsNull() || payload.IsAbsent() {
		return out, nil
	}
	if payload.Kind() != KindObject {
		if strict {
			return out, &PropertyCoercionError{
				Property:     string(o.Type.Name),
				ExpectedKind: "object",
				Actual:       payload,
			}
		}
		return out, nil
	}

	var firstErr error
	keep := func(err error) {
		if firstErr == nil && err != nil {
			firstErr = err
		}
	}

	keys := payload.Keys()
	var claimed []string

	for _, name := range out.order {
		key := MatchKey(name, keys, claimed)
		v, ok := payload.Field(key)
		if !ok {
			continue
		}
		claimed = append(claimed, key)
		keep(out.populateMember(out.members[name], v, strict))
	}

	taken := make(map[string]bool, len(claimed))
	for _, key := range claimed {
		taken[key] = true
	}
	for _, key := range keys {
		if !taken[key] {
			v, _ := payload.Field(key)
			out.extras[key] = v
		}
	}

	return out, firstErr
}

// populateMember fills one member from its matched payload value. Members
// with a model-defined structured type recurse into nested objects; the raw
// value is recorded on the property either way.
func (o *RedfishObject) populateMember(m *objectMember, v Value, strict bool) error {
	pd := m.prop

	if v.IsNull() || v.IsAbsent() {
		p, err := pd.Populate(v, strict)
		m.prop = p
		return err
	}

	elemType := UnwrapCollection(pd.Type)
	if !strings.HasPrefix(elemType, edmPrefix) && pd.catalog != nil {
		t, err := pd.catalog.GetTypeInCatalog(elemType)
		if err != nil {
			// The declared type cannot be resolved. Keep the raw
			// value; in strict mode the failure is the member's
			// error.
			p, _ := pd.Populate(v, false)
			m.prop = p
			if strict {
				return err
			}
			return nil
		}

		switch t.Kind {
		case TypeComplex, TypeEntity, TypeAction:
			p, _ := pd.Populate(v, false)
			m.prop = p
			return o.populateStructured(m, t, v, strict)
		}
	}

	p, err := pd.Populate(v, strict)
	m.prop = p
	return err
}

func (o *RedfishObject) populateStructured(m *objectMember, t *RedfishType, v Value, strict bool) error {
	if !IsCollection(m.prop.Type) {
		child, err := NewObject(t).Populate(v, strict)
		m.obj = child
		return err
	}

	if v.Kind() != KindArray {
		if strict {
			return &PropertyCoercionError{
				Property:     m.prop.Name,
				ExpectedKind: m.prop.Type,
				Actual:       v,
			}
		}
		return nil
	}

	var firstErr error
	m.list = make([]*RedfishObject, 0, v.Len())
	for _, e := range v.Elems() {
		child, err := NewObject(t).Populate(e, strict)
		m.list = append(m.list, child)
		if firstErr == nil && err != nil {
			firstErr = err
		}
	}
	return firstErr
}

// AsJSON renders the populated object as plain Go JSON types: declared
// members under their schema names with absent members omitted, unmatched
// payload keys carried through unchanged. A null payload renders as a nil
// map.
func (o *RedfishObject) AsJSON() map[string]any {
	if o.payload.IsNull() {
		return nil
	}

	out := make(map[string]any)
	for _, name := range o.order {
		if v, ok := o.members[name].AsJSON(); ok {
			out[name] = v
		}
	}
	for key, v := range o.extras {
		if ev, ok := v.Interface(); ok {
			out[key] = ev
		}
	}
	return out
}

// Links collects every @odata.id target reachable through the object's
// navigation properties, including those of nested objects, deduplicated
// and sorted.
func (o *RedfishObject) Links() []string {
	set := make(map[string]bool)
	o.addLinks(set)

	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (o *RedfishObject) addLinks(set map[string]bool) {
	for _, name := range o.order {
		m := o.members[name]
		if m.prop != nil {
			for _, l := range m.prop.Links() {
				set[l] = true
			}
		}
		if m.obj != nil {
			m.obj.addLinks(set)
		}
		for _, child := range m.list {
			child.addLinks(set)
		}
	}
}
