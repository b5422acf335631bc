package schema

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads every xml document", func(t *testing.T) {
		t.Parallel()
		dir := writeMetadataDir(t, map[string]string{
			"Example_v1.xml":         exampleXML,
			"ExampleResource_v1.xml": exampleResourceXML,
			"notes.txt":              "not a schema",
		})

		c, err := Load(dir)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, dir, c.Dir())

		docs := c.Documents()
		require.Len(t, docs, 2)
		assert.Equal(t, "Example_v1.xml", docs[0].Name)
		assert.Equal(t, "ExampleResource_v1.xml", docs[1].Name)

		_, ok := c.Document("Example_v1.xml")
		assert.True(t, ok)
		_, ok = c.Document("notes.txt")
		assert.False(t, ok)
	})

	t.Run("collects parse failures and keeps the rest", func(t *testing.T) {
		t.Parallel()
		dir := writeMetadataDir(t, map[string]string{
			"Example_v1.xml": exampleXML,
			"Broken_v1.xml":  malformedXML,
		})

		c, err := Load(dir)
		require.Error(t, err)
		require.NotNil(t, c)

		var loadErr *CatalogLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Len(t, loadErr.Failures, 1)
		assert.Contains(t, loadErr.Failures, "Broken_v1.xml")
		assert.Contains(t, err.Error(), "Broken_v1.xml")

		// The healthy document is still usable
		_, ok := c.Document("Example_v1.xml")
		assert.True(t, ok)
	})

	t.Run("unreadable directory returns no catalog", func(t *testing.T) {
		t.Parallel()
		c, err := Load(filepath.Join(t.TempDir(), "non-existent"))
		require.Error(t, err)
		assert.Nil(t, c)

		var loadErr *CatalogLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Error(t, loadErr.Err)
	})

	t.Run("empty directory loads an empty catalog", func(t *testing.T) {
		t.Parallel()
		c, err := Load(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Empty(t, c.Documents())
	})
}

func TestAddDocument(t *testing.T) {
	t.Parallel()

	c := New()
	doc, err := ParseDocument([]byte(exampleXML), "Example_v1.xml", c)
	require.NoError(t, err)

	c.AddDocument(doc)
	c.AddDocument(doc) // duplicate registration is ignored
	assert.Len(t, c.Documents(), 1)
}

func TestGetSchemaDocByClass(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	t.Run("version qualifier is ignored", func(t *testing.T) {
		t.Parallel()
		doc, err := c.GetSchemaDocByClass("Example.v1_5_0")
		require.NoError(t, err)
		assert.Equal(t, "Example_v1.xml", doc.Name)

		doc, err = c.GetSchemaDocByClass("Example")
		require.NoError(t, err)
		assert.Equal(t, "Example_v1.xml", doc.Name)
	})

	t.Run("unknown base errors", func(t *testing.T) {
		t.Parallel()
		_, err := c.GetSchemaDocByClass("Nonexistent")
		var miss *MissingSchemaError
		require.ErrorAs(t, err, &miss)
		assert.Equal(t, "Nonexistent", miss.Name)
	})
}

func TestGetSchemaInCatalog(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	t.Run("exact name resolves", func(t *testing.T) {
		t.Parallel()
		ns, err := c.GetSchemaInCatalog("Example.v1_2_0")
		require.NoError(t, err)
		assert.Equal(t, "Example.v1_2_0", ns.Name)
		assert.Equal(t, "Example", ns.Base)
		require.NotNil(t, ns.Version)
		assert.Equal(t, Version{1, 2, 0}, *ns.Version)
	})

	t.Run("no fallback for undeclared versions", func(t *testing.T) {
		t.Parallel()
		_, err := c.GetSchemaInCatalog("Example.v1_9_9")
		var miss *MissingSchemaError
		require.ErrorAs(t, err, &miss)
	})
}

func TestGetTypeInCatalog(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	t.Run("resolves with odata.type hash prefix", func(t *testing.T) {
		t.Parallel()
		rt, err := c.GetTypeInCatalog("#Example.v1_0_0.Example")
		require.NoError(t, err)
		assert.Equal(t, TypeName("Example.v1_0_0.Example"), rt.Name)
		assert.Equal(t, TypeEntity, rt.Kind)
	})

	t.Run("falls back to the highest declared version", func(t *testing.T) {
		t.Parallel()
		rt, err := c.GetTypeInCatalog("Example.v1_9_9.Example")
		require.NoError(t, err)
		assert.Equal(t, TypeName("Example.v1_7_0.Example"), rt.Name)
	})

	t.Run("falls back to the closest earlier version", func(t *testing.T) {
		t.Parallel()
		rt, err := c.GetTypeInCatalog("Example.v1_1_0.Example")
		require.NoError(t, err)
		assert.Equal(t, TypeName("Example.v1_0_0.Example"), rt.Name)
	})

	t.Run("unversioned request resolves the unversioned namespace", func(t *testing.T) {
		t.Parallel()
		rt, err := c.GetTypeInCatalog("Example.Example")
		require.NoError(t, err)
		assert.Equal(t, TypeName("Example.Example"), rt.Name)
		assert.True(t, rt.Abstract)
	})

	t.Run("fallback skips versions missing the type", func(t *testing.T) {
		t.Parallel()
		// Mode is only declared in v1_0_0; asking at v1_7_0 must walk past
		// the later namespaces that do not declare it.
		rt, err := c.GetTypeInCatalog("Example.v1_7_0.Mode")
		require.NoError(t, err)
		assert.Equal(t, TypeName("Example.v1_0_0.Mode"), rt.Name)
		assert.Equal(t, TypeEnum, rt.Kind)
	})

	t.Run("memoizes under requested and resolved names", func(t *testing.T) {
		t.Parallel()
		cat := loadTestCatalog(t)

		first, err := cat.GetTypeInCatalog("Example.v1_8_0.Example")
		require.NoError(t, err)
		again, err := cat.GetTypeInCatalog("Example.v1_8_0.Example")
		require.NoError(t, err)
		assert.Same(t, first, again)

		resolved, err := cat.GetTypeInCatalog(string(first.Name))
		require.NoError(t, err)
		assert.Same(t, first, resolved)
	})

	t.Run("unknown type errors", func(t *testing.T) {
		t.Parallel()
		_, err := c.GetTypeInCatalog("Example.v1_0_0.Nonexistent")
		var miss *MissingSchemaError
		require.ErrorAs(t, err, &miss)
	})

	t.Run("concurrent resolution shares one instance", func(t *testing.T) {
		t.Parallel()
		cat := loadTestCatalog(t)

		const workers = 8
		results := make([]*RedfishType, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rt, err := cat.GetTypeInCatalog("Example.v1_2_0.Example")
				assert.NoError(t, err)
				results[i] = rt
			}(i)
		}
		wg.Wait()

		for i := 1; i < workers; i++ {
			assert.Same(t, results[0], results[i])
		}
	})
}
