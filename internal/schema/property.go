package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// edmPrefix marks the built-in OData primitive types.
const edmPrefix = "Edm."

// durationPattern is the ISO 8601 duration form Redfish uses: optional days,
// then an optional time part. Years, months and weeks do not occur.
var durationPattern = regexp.MustCompile(`^-?P(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?)?$`)

// RedfishProperty is a single declared property together with the payload
// value populated into it. Populate returns copies; a skeleton property from
// NewProperty or NewObject is never mutated.
type RedfishProperty struct {
	Name       string
	Type       string
	Nullable   bool
	Navigation bool
	Value      Value

	catalog *Catalog
}

// NewProperty builds an unpopulated property with the given declared type.
// The catalog may be nil: Edm primitives still check fully, while
// model-defined types then pass through unchecked.
func NewProperty(name, declaredType string, c *Catalog) *RedfishProperty {
	return &RedfishProperty{
		Name:     name,
		Type:     declaredType,
		Nullable: true,
		catalog:  c,
	}
}

func newPropertyFromDef(pd PropertyDefinition, c *Catalog) *RedfishProperty {
	return &RedfishProperty{
		Name:       pd.Name,
		Type:       pd.Type,
		Nullable:   pd.Nullable,
		Navigation: pd.Navigation,
		catalog:    c,
	}
}

// Populate returns a copy of the property holding v. The value is recorded
// regardless of conformance; when check is true a value that cannot be read
// as the declared type additionally returns a *PropertyCoercionError.
func (p *RedfishProperty) Populate(v Value, check bool) (*RedfishProperty, error) {
	out := *p
	out.Value = v

	if !check {
		return &out, nil
	}
	if err := conforms(p.Name, p.Type, v, p.Nullable, p.catalog); err != nil {
		return &out, err
	}
	return &out, nil
}

// AsJSON returns the populated value as plain decoded-JSON Go types. The
// second return is false when the property was absent from its payload.
func (p *RedfishProperty) AsJSON() (any, bool) {
	return p.Value.Interface()
}

// Links returns the @odata.id targets embedded in a navigation property's
// value: the id of a single linked object, or the ids of the elements of a
// linked collection. Non-navigation properties carry no links.
func (p *RedfishProperty) Links() []string {
	if !p.Navigation {
		return nil
	}
	return collectLinks(p.Value)
}

func collectLinks(v Value) []string {
	switch v.Kind() {
	case KindObject:
		if id, ok := v.Field("@odata.id"); ok && id.Kind() == KindString {
			return []string{id.Text()}
		}
	case KindArray:
		var out []string
		for _, e := range v.Elems() {
			out = append(out, collectLinks(e)...)
		}
		return out
	}
	return nil
}

// conforms checks a payload value against a declared type reference. Absent
// always conforms; null conforms when the declaration is nullable. Collection
// references require an array and check element-wise, with elements
// individually nullable.
func conforms(name, typeStr string, v Value, nullable bool, c *Catalog) error {
	if v.IsAbsent() {
		return nil
	}
	if v.IsNull() {
		if nullable {
			return nil
		}
		return &PropertyCoercionError{Property: name, ExpectedKind: "non-null " + typeStr, Actual: v}
	}

	if IsCollection(typeStr) {
		if v.Kind() != KindArray {
			return &PropertyCoercionError{Property: name, ExpectedKind: typeStr, Actual: v}
		}
		elem := UnwrapCollection(typeStr)
		for i, e := range v.Elems() {
			if err := conforms(fmt.Sprintf("%s[%d]", name, i), elem, e, true, c); err != nil {
				return err
			}
		}
		return nil
	}

	if strings.HasPrefix(typeStr, edmPrefix) {
		return conformsEdm(name, typeStr, v)
	}

	if c == nil {
		return nil
	}
	t, err := c.GetTypeInCatalog(typeStr)
	if err != nil {
		return err
	}
	return conformsResolved(name, t, v, c)
}

func conformsEdm(name, typeStr string, v Value) error {
	switch typeStr {
	case "Edm.Boolean":
		if v.Kind() == KindBool {
			return nil
		}
	case "Edm.String":
		if v.Kind() == KindString {
			return nil
		}
	case "Edm.DateTimeOffset":
		if v.Kind() == KindString {
			if _, err := time.Parse(time.RFC3339, v.Text()); err == nil {
				return nil
			}
		}
	case "Edm.Duration":
		if v.Kind() == KindString && durationPattern.MatchString(v.Text()) {
			return nil
		}
	case "Edm.Guid":
		if v.Kind() == KindString {
			if _, err := uuid.Parse(v.Text()); err == nil {
				return nil
			}
		}
	case "Edm.Int", "Edm.Int16", "Edm.Int32", "Edm.Int64", "Edm.SByte", "Edm.Byte":
		if isIntegral(v) {
			return nil
		}
	case "Edm.Decimal", "Edm.Double", "Edm.Single":
		if isNumeric(v) {
			return nil
		}
	default:
		// Edm.Primitive, Edm.PrimitiveType and any unmodelled primitive
		// accept every scalar shape, but never a structure.
		switch v.Kind() {
		case KindBool, KindNumber, KindString:
			return nil
		}
	}
	return &PropertyCoercionError{Property: name, ExpectedKind: typeStr, Actual: v}
}

// isIntegral accepts whole numbers and strings of digits. Services commonly
// serialise large counters as strings.
func isIntegral(v Value) bool {
	switch v.Kind() {
	case KindNumber:
		_, err := v.Number().Int64()
		return err == nil
	case KindString:
		_, err := strconv.ParseInt(v.Text(), 10, 64)
		return err == nil
	}
	return false
}

func isNumeric(v Value) bool {
	switch v.Kind() {
	case KindNumber:
		return true
	case KindString:
		_, err := strconv.ParseFloat(v.Text(), 64)
		return err == nil
	}
	return false
}

func conformsResolved(name string, t *RedfishType, v Value, c *Catalog) error {
	switch t.Kind {
	case TypeEnum:
		if v.Kind() == KindString && t.HasMember(v.Text()) {
			return nil
		}
		return &PropertyCoercionError{
			Property:     name,
			ExpectedKind: string(t.Name) + " member",
			Actual:       v,
		}
	case TypeAlias:
		return conforms(name, t.Underlying(), v, true, c)
	case TypeComplex, TypeEntity, TypeAction:
		if v.Kind() == KindObject {
			return nil
		}
		return &PropertyCoercionError{Property: name, ExpectedKind: "object", Actual: v}
	}
	return nil
}
