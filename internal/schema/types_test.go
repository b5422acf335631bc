package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseChain(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	rt := mustType(t, c, "Example.v1_7_0.Example")
	assert.Equal(t, "Example.v1_7_0.Example", rt.String())
	assert.Equal(t, []TypeName{
		"Example.v1_7_0.Example",
		"Example.v1_2_0.Example",
		"Example.v1_0_0.Example",
		"Example.Example",
	}, rt.BaseChain())

	// Base types are the same shared instances the catalog resolves.
	base := mustType(t, c, "Example.v1_2_0.Example")
	assert.Same(t, base, rt.BaseType)
}

func TestFlattenedProperties(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	t.Run("base properties come first", func(t *testing.T) {
		t.Parallel()
		rt := mustType(t, c, "Example.v1_0_0.Example")

		var names []string
		for _, pd := range rt.Properties() {
			names = append(names, pd.Name)
		}
		assert.Equal(t, []string{"Id", "Name", "Count", "State", "Status", "Related", "Contains"}, names)
	})

	t.Run("redeclaration overrides in place", func(t *testing.T) {
		t.Parallel()
		rt := mustType(t, c, "Example.v1_2_0.Example")

		props := rt.Properties()
		require.Len(t, props, 8)
		assert.Equal(t, "Count", props[2].Name)
		assert.False(t, props[2].Nullable)
		assert.Equal(t, "Serial", props[7].Name)

		// The base declaration keeps its original nullability.
		base, ok := rt.BaseType.Property("Count")
		require.True(t, ok)
		assert.True(t, base.Nullable)
	})

	t.Run("own properties exclude inherited ones", func(t *testing.T) {
		t.Parallel()
		rt := mustType(t, c, "Example.v1_2_0.Example")

		own := rt.OwnProperties()
		require.Len(t, own, 2)
		assert.Equal(t, "Serial", own[0].Name)
		assert.Equal(t, "Count", own[1].Name)
	})

	t.Run("property lookup", func(t *testing.T) {
		t.Parallel()
		rt := mustType(t, c, "Example.v1_0_0.Example")

		id, ok := rt.Property("Id")
		require.True(t, ok)
		assert.Equal(t, "Edm.String", id.Type)
		assert.False(t, id.Nullable)
		assert.False(t, id.Navigation)

		name, ok := rt.Property("Name")
		require.True(t, ok)
		assert.True(t, name.Nullable) // unspecified Nullable defaults to true

		related, ok := rt.Property("Related")
		require.True(t, ok)
		assert.True(t, related.Navigation)

		contains, ok := rt.Property("Contains")
		require.True(t, ok)
		assert.Equal(t, "Collection(ExampleResource.ExampleResource)", contains.Type)

		_, ok = rt.Property("Nonexistent")
		assert.False(t, ok)
	})
}

func TestEnumType(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	rt := mustType(t, c, "Example.v1_0_0.State")
	assert.Equal(t, TypeEnum, rt.Kind)
	assert.Equal(t, []string{"Enabled", "Disabled"}, rt.Members())
	assert.True(t, rt.HasMember("Enabled"))
	assert.False(t, rt.HasMember("enabled"))
	assert.Empty(t, rt.Properties())
}

func TestTypeAlias(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	rt := mustType(t, c, "ExampleResource.v1_0_0.UUID")
	assert.Equal(t, TypeAlias, rt.Kind)
	assert.Equal(t, "Edm.Guid", rt.Underlying())
}

func TestActionType(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	rt := mustType(t, c, "Example.v1_7_0.Reset")
	assert.Equal(t, TypeAction, rt.Kind)
}

func TestAbstractFlag(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	assert.True(t, mustType(t, c, "Example.Example").Abstract)
	assert.False(t, mustType(t, c, "Example.v1_0_0.Example").Abstract)
}

func TestIsAssignableTo(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	rt := mustType(t, c, "Example.v1_7_0.Example")
	assert.True(t, rt.IsAssignableTo("Example.v1_7_0.Example"))
	assert.True(t, rt.IsAssignableTo("Example.v1_0_0.Example"))
	assert.True(t, rt.IsAssignableTo("#Example.Example"))
	assert.False(t, rt.IsAssignableTo("Example.v1_9_9.Example"))
	assert.False(t, rt.IsAssignableTo("ExampleResource.ExampleResource"))
}

func TestCircularBaseChain(t *testing.T) {
	t.Parallel()
	dir := writeMetadataDir(t, map[string]string{"Loop_v1.xml": loopXML})
	c, err := Load(dir)
	require.NoError(t, err)

	_, err = c.GetTypeInCatalog("Loop.v1_0_0.A")
	var circular *CircularReferenceError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []TypeName{"Loop.v1_0_0.A", "Loop.v1_0_0.B", "Loop.v1_0_0.A"}, circular.Cycle)
	assert.Contains(t, err.Error(), "circular base type chain")
	assert.Contains(t, err.Error(), "Loop.v1_0_0.A -> Loop.v1_0_0.B -> Loop.v1_0_0.A")
}

func TestNamespaceTypeNames(t *testing.T) {
	t.Parallel()
	c := loadTestCatalog(t)

	ns, err := c.GetSchemaInCatalog("Example.v1_0_0")
	require.NoError(t, err)
	assert.Equal(t, []string{"Example", "Mode", "State"}, ns.TypeNames())
}
