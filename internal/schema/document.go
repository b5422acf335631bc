package schema

import (
	"errors"
	"sync"

	"github.com/kapil1024/Redfish-Service-Validator/internal/csdl"
)

// wellKnownBases are namespace bases that every document may reference
// without declaring them. They carry Redfish annotation terms rather than
// resource types, and resolve even when no document in the catalog
// declares them.
var wellKnownBases = map[string]bool{
	"Redfish":           true,
	"RedfishExtension":  true,
	"RedfishExtensions": true,
}

// reference is one namespace pulled in through an edmx:Reference Include.
type reference struct {
	URI       string
	Namespace string
	Alias     string
}

// Document is one parsed CSDL schema file. Its namespaces and declared
// references are fixed at parse time; reference resolutions are memoized.
type Document struct {
	Name    string
	catalog *Catalog

	namespaces map[string]*Namespace
	order      []string
	refs       []reference
	refBases   map[string]bool

	mu       sync.RWMutex
	refCache map[string]*Namespace
}

// ParseDocument parses a single CSDL document and binds it to the catalog for
// cross-document resolution. The document is not registered in the catalog;
// see Catalog.AddDocument for that.
func ParseDocument(data []byte, name string, c *Catalog) (*Document, error) {
	edmx, err := csdl.Parse(data)
	if err != nil {
		return nil, &MalformedDocumentError{Name: name, Wrapped: err}
	}

	d := &Document{
		Name:       name,
		catalog:    c,
		namespaces: make(map[string]*Namespace),
		refBases:   make(map[string]bool),
	}

	for i := range edmx.DataServices.Schemas {
		ns := newNamespace(d, &edmx.DataServices.Schemas[i])
		if _, dup := d.namespaces[ns.Name]; dup {
			continue
		}
		d.namespaces[ns.Name] = ns
		d.order = append(d.order, ns.Name)
	}

	for _, r := range edmx.References {
		for _, inc := range r.Includes {
			d.refs = append(d.refs, reference{URI: r.URI, Namespace: inc.Namespace, Alias: inc.Alias})
			base, _ := SplitNamespaceVersion(inc.Namespace)
			d.refBases[base] = true
		}
	}

	return d, nil
}

// Namespaces returns the document's namespaces in declaration order.
func (d *Document) Namespaces() []*Namespace {
	out := make([]*Namespace, len(d.order))
	for i, name := range d.order {
		out[i] = d.namespaces[name]
	}
	return out
}

// Namespace returns the namespace with the given full name, if declared.
func (d *Document) Namespace(name string) (*Namespace, bool) {
	ns, ok := d.namespaces[name]
	return ns, ok
}

// ReferencedNamespaces returns the namespace names pulled in through
// edmx:Reference declarations, in declaration order.
func (d *Document) ReferencedNamespaces() []string {
	out := make([]string, len(d.refs))
	for i, r := range d.refs {
		out[i] = r.Namespace
	}
	return out
}

// declaresBase reports whether any declared reference includes a namespace
// with the given base name.
func (d *Document) declaresBase(base string) bool {
	return d.refBases[base]
}

// GetReference resolves a namespace name against this document: the
// document's own namespaces, its declared references, and the well-known
// namespaces. Version-qualified requests fall back to the highest declared
// version no later than the requested one, then to the unversioned base.
// Results are memoized per document.
func (d *Document) GetReference(name string) (*Namespace, error) {
	d.mu.RLock()
	if ns, ok := d.refCache[name]; ok {
		d.mu.RUnlock()
		return ns, nil
	}
	d.mu.RUnlock()

	ns, err := d.lookupReference(name)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.refCache == nil {
		d.refCache = make(map[string]*Namespace)
	}
	d.refCache[name] = ns
	d.mu.Unlock()

	return ns, nil
}

func (d *Document) lookupReference(name string) (*Namespace, error) {
	base, version := SplitNamespaceVersion(name)

	// Own namespaces satisfy a reference without a declaration.
	if ns := d.findNamespace(base, version); ns != nil {
		return ns, nil
	}

	if d.declaresBase(base) || wellKnownBases[base] {
		if d.catalog != nil {
			if ns := d.catalog.findNamespace(base, version); ns != nil {
				return ns, nil
			}
		}
		if wellKnownBases[base] {
			return &Namespace{Name: name, Base: base, Version: version, doc: d}, nil
		}
	}

	return nil, &MissingSchemaError{Name: name}
}

// findNamespace picks the document's best namespace for a base name and an
// optional requested version: exact match, else the highest declared version
// no later than the request, else the unversioned base. An unversioned
// request prefers the unversioned namespace over any versioned one.
func (d *Document) findNamespace(base string, version *Version) *Namespace {
	return pickNamespace(d.Namespaces(), base, version, "")
}

// findNamespaceWithType is findNamespace restricted to namespaces that
// declare the given type. Version fallback therefore skips versions in which
// the type does not (yet) exist.
func (d *Document) findNamespaceWithType(base string, version *Version, typeName string) *Namespace {
	return pickNamespace(d.Namespaces(), base, version, typeName)
}

// pickNamespace applies the version-fallback rules over a candidate list.
// When typeName is non-empty, candidates must declare it.
func pickNamespace(candidates []*Namespace, base string, version *Version, typeName string) *Namespace {
	var unversioned, best, highest *Namespace

	for _, ns := range candidates {
		if ns.Base != base {
			continue
		}
		if typeName != "" && !ns.HasType(typeName) {
			continue
		}
		if ns.Version == nil {
			if unversioned == nil {
				unversioned = ns
			}
			continue
		}
		if highest == nil || highest.Version.Compare(*ns.Version) < 0 {
			highest = ns
		}
		if version == nil {
			continue
		}
		if *ns.Version == *version {
			return ns
		}
		if ns.Version.AtMost(*version) && (best == nil || best.Version.Compare(*ns.Version) < 0) {
			best = ns
		}
	}

	if version == nil {
		if unversioned != nil {
			return unversioned
		}
		return highest
	}
	if best != nil {
		return best
	}
	return unversioned
}

// GetTypeInSchemaDoc resolves a type reference starting from this document.
// An already resolved *RedfishType passes through unchanged; a TypeName is
// searched in the document's own namespaces with version fallback, then
// through declared references into other catalog documents.
func (d *Document) GetTypeInSchemaDoc(ref TypeRef) (*RedfishType, error) {
	switch r := ref.(type) {
	case *RedfishType:
		return r, nil
	case TypeName:
		return d.resolveType(r, nil, make(map[string]bool))
	}
	// TypeRef is sealed; no other implementations exist.
	return nil, &MissingSchemaError{Name: "unresolvable type reference"}
}

// resolveType resolves tn starting from this document, following declared
// references outward. chain carries the base-type path for cycle detection;
// seen guards the document walk against reference loops.
func (d *Document) resolveType(tn TypeName, chain []TypeName, seen map[string]bool) (*RedfishType, error) {
	if !tn.IsQualified() {
		return nil, &UnqualifiedNameError{Name: string(tn)}
	}
	if seen[d.Name] {
		return nil, &MissingSchemaError{Name: string(tn)}
	}
	seen[d.Name] = true

	if d.catalog != nil {
		if t, ok := d.catalog.cachedType(tn); ok {
			return t, nil
		}
	}

	base := tn.Base()
	if ns := d.findNamespaceWithType(base, tn.Version(), tn.Type()); ns != nil {
		return d.buildType(ns, tn.Type(), chain)
	}

	if d.catalog == nil {
		return nil, &MissingSchemaError{Name: string(tn)}
	}

	// Direct route: a declared reference naming the type's own base.
	if d.declaresBase(base) {
		if doc, err := d.catalog.GetSchemaDocByClass(base); err == nil && !seen[doc.Name] {
			if t, err := doc.resolveType(tn, chain, seen); err == nil {
				return t, nil
			} else if !isMissing(err) {
				return nil, err
			}
		}
	}

	// Exhaustive route: walk every declared reference.
	for _, r := range d.refs {
		refBase, _ := SplitNamespaceVersion(r.Namespace)
		doc, err := d.catalog.GetSchemaDocByClass(refBase)
		if err != nil || seen[doc.Name] {
			continue
		}
		if t, err := doc.resolveType(tn, chain, seen); err == nil {
			return t, nil
		} else if !isMissing(err) {
			return nil, err
		}
	}

	return nil, &MissingSchemaError{Name: string(tn)}
}

func isMissing(err error) bool {
	var miss *MissingSchemaError
	return errors.As(err, &miss)
}

// Namespace is one Schema element of a document: a versioned (or unversioned)
// collection of type definitions sharing a base name.
type Namespace struct {
	Name    string
	Base    string
	Version *Version
	Alias   string

	doc       *Document
	entities  map[string]*csdl.EntityType
	complexes map[string]*csdl.ComplexType
	enums     map[string]*csdl.EnumType
	typedefs  map[string]*csdl.TypeDefinition
	actions   map[string]*csdl.Action
}

func newNamespace(d *Document, s *csdl.Schema) *Namespace {
	base, version := SplitNamespaceVersion(s.Namespace)

	ns := &Namespace{
		Name:      s.Namespace,
		Base:      base,
		Version:   version,
		Alias:     s.Alias,
		doc:       d,
		entities:  make(map[string]*csdl.EntityType, len(s.EntityTypes)),
		complexes: make(map[string]*csdl.ComplexType, len(s.ComplexTypes)),
		enums:     make(map[string]*csdl.EnumType, len(s.EnumTypes)),
		typedefs:  make(map[string]*csdl.TypeDefinition, len(s.TypeDefinitions)),
		actions:   make(map[string]*csdl.Action, len(s.Actions)),
	}

	for i := range s.EntityTypes {
		ns.entities[s.EntityTypes[i].Name] = &s.EntityTypes[i]
	}
	for i := range s.ComplexTypes {
		ns.complexes[s.ComplexTypes[i].Name] = &s.ComplexTypes[i]
	}
	for i := range s.EnumTypes {
		ns.enums[s.EnumTypes[i].Name] = &s.EnumTypes[i]
	}
	for i := range s.TypeDefinitions {
		ns.typedefs[s.TypeDefinitions[i].Name] = &s.TypeDefinitions[i]
	}
	for i := range s.Actions {
		ns.actions[s.Actions[i].Name] = &s.Actions[i]
	}

	return ns
}

// Document returns the document declaring this namespace.
func (n *Namespace) Document() *Document {
	return n.doc
}

// IsVersioned reports whether the namespace carries a version.
func (n *Namespace) IsVersioned() bool {
	return n.Version != nil
}

// HasType reports whether the namespace declares a type with the given name.
func (n *Namespace) HasType(name string) bool {
	if _, ok := n.entities[name]; ok {
		return true
	}
	if _, ok := n.complexes[name]; ok {
		return true
	}
	if _, ok := n.enums[name]; ok {
		return true
	}
	if _, ok := n.typedefs[name]; ok {
		return true
	}
	_, ok := n.actions[name]
	return ok
}

// TypeCount returns the number of type definitions declared here.
func (n *Namespace) TypeCount() int {
	return len(n.entities) + len(n.complexes) + len(n.enums) + len(n.typedefs) + len(n.actions)
}
