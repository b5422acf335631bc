package schema

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Catalog indexes every parsed schema document and memoizes resolved types.
// All lookups are safe for concurrent use.
type Catalog struct {
	dir string

	docs     map[string]*Document
	docOrder []string
	byBase   map[string][]*Document
	nsByName map[string]*Namespace
	nsByBase map[string][]*Namespace

	mu           sync.RWMutex
	types        map[TypeName]*RedfishType
	resolveGroup singleflight.Group
}

// New returns an empty catalog. Documents are added with AddDocument, or use
// Load to populate one from a metadata directory.
func New() *Catalog {
	return &Catalog{
		docs:     make(map[string]*Document),
		byBase:   make(map[string][]*Document),
		nsByName: make(map[string]*Namespace),
		nsByBase: make(map[string][]*Namespace),
		types:    make(map[TypeName]*RedfishType),
	}
}

// Load parses every .xml file in dir into a catalog. Files that fail to read
// or parse are skipped and collected; the catalog built from the remaining
// documents is returned alongside a *CatalogLoadError describing the
// failures. An unreadable directory returns a nil catalog.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &CatalogLoadError{Dir: dir, Err: err}
	}

	c := New()
	c.dir = dir

	failures := make(map[string]error)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			failures[entry.Name()] = err
			continue
		}
		doc, err := ParseDocument(data, entry.Name(), c)
		if err != nil {
			failures[entry.Name()] = err
			continue
		}
		c.AddDocument(doc)
	}

	if len(failures) > 0 {
		return c, &CatalogLoadError{Dir: dir, Failures: failures}
	}
	return c, nil
}

// Dir returns the directory the catalog was loaded from, if any.
func (c *Catalog) Dir() string {
	return c.dir
}

// AddDocument registers a parsed document and its namespaces. The first
// document to declare a namespace name owns it; later declarations of the
// same name are ignored.
func (c *Catalog) AddDocument(d *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.docs[d.Name]; dup {
		return
	}
	c.docs[d.Name] = d
	c.docOrder = append(c.docOrder, d.Name)

	seenBases := make(map[string]bool)
	for _, name := range d.order {
		ns := d.namespaces[name]
		if !seenBases[ns.Base] {
			seenBases[ns.Base] = true
			c.byBase[ns.Base] = append(c.byBase[ns.Base], d)
		}
		if _, dup := c.nsByName[ns.Name]; dup {
			continue
		}
		c.nsByName[ns.Name] = ns
		c.nsByBase[ns.Base] = append(c.nsByBase[ns.Base], ns)
	}
}

// Documents returns the catalog's documents in registration order.
func (c *Catalog) Documents() []*Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Document, len(c.docOrder))
	for i, name := range c.docOrder {
		out[i] = c.docs[name]
	}
	return out
}

// Document returns the document registered under the given file name.
func (c *Catalog) Document(name string) (*Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.docs[name]
	return d, ok
}

// GetSchemaDocByClass returns the document declaring the namespace base of
// the given name. Any version qualifier is ignored: "Example.v1_0_0" and
// "Example" land in the same document.
func (c *Catalog) GetSchemaDocByClass(name string) (*Document, error) {
	base, _ := SplitNamespaceVersion(name)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if docs := c.byBase[base]; len(docs) > 0 {
		return docs[0], nil
	}
	return nil, &MissingSchemaError{Name: name}
}

// GetSchemaInCatalog returns the namespace with exactly the given full name.
func (c *Catalog) GetSchemaInCatalog(name string) (*Namespace, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if ns, ok := c.nsByName[name]; ok {
		return ns, nil
	}
	return nil, &MissingSchemaError{Name: name}
}

// findNamespace applies the version-fallback rules across every registered
// namespace sharing the base name.
func (c *Catalog) findNamespace(base string, version *Version) *Namespace {
	c.mu.RLock()
	candidates := c.nsByBase[base]
	c.mu.RUnlock()

	return pickNamespace(candidates, base, version, "")
}

// GetTypeInCatalog resolves a qualified type name anywhere in the catalog.
// A leading '#' (as found in @odata.type) is stripped. Resolved types are
// memoized; concurrent requests for the same name share one resolution.
func (c *Catalog) GetTypeInCatalog(name string) (*RedfishType, error) {
	tn := NewTypeName(name)

	c.mu.RLock()
	t, ok := c.types[tn]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	v, err, _ := c.resolveGroup.Do(string(tn), func() (interface{}, error) {
		// Double-check: another flight may have stored it since the
		// read above.
		c.mu.RLock()
		t, ok := c.types[tn]
		c.mu.RUnlock()
		if ok {
			return t, nil
		}

		doc, err := c.GetSchemaDocByClass(tn.Base())
		if err != nil {
			return nil, err
		}

		t, err = doc.GetTypeInSchemaDoc(tn)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.types[tn] = t
		c.types[t.Name] = t
		c.mu.Unlock()

		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*RedfishType), nil
}

// cachedType returns a previously resolved type. Used by the resolution walk
// itself, which must not re-enter the singleflight group.
func (c *Catalog) cachedType(tn TypeName) (*RedfishType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.types[tn]
	return t, ok
}

// storeType memoizes a fully built type under its canonical name.
func (c *Catalog) storeType(tn TypeName, t *RedfishType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.types[tn] = t
}
