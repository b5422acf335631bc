package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// exampleXML declares the Example resource across several schema versions,
// referencing ExampleResource for its shared complex types.
const exampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">
  <edmx:Reference Uri="http://redfish.dmtf.org/schemas/v1/ExampleResource_v1.xml">
    <edmx:Include Namespace="ExampleResource"/>
    <edmx:Include Namespace="ExampleResource.v1_0_0"/>
  </edmx:Reference>
  <edmx:DataServices>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Example">
      <EntityType Name="Example" Abstract="true"/>
    </Schema>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Example.v1_0_0">
      <EntityType Name="Example" BaseType="Example.Example">
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
        <Property Name="Name" Type="Edm.String"/>
        <Property Name="Count" Type="Edm.Int64"/>
        <Property Name="State" Type="Example.v1_0_0.State"/>
        <Property Name="Status" Type="ExampleResource.Status"/>
        <NavigationProperty Name="Related" Type="ExampleResource.ExampleResource"/>
        <NavigationProperty Name="Contains" Type="Collection(ExampleResource.ExampleResource)"/>
      </EntityType>
      <EnumType Name="State">
        <Member Name="Enabled"/>
        <Member Name="Disabled"/>
      </EnumType>
      <EnumType Name="Mode">
        <Member Name="Auto"/>
        <Member Name="Manual"/>
      </EnumType>
    </Schema>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Example.v1_2_0">
      <EntityType Name="Example" BaseType="Example.v1_0_0.Example">
        <Property Name="Serial" Type="Edm.String"/>
        <Property Name="Count" Type="Edm.Int64" Nullable="false"/>
      </EntityType>
    </Schema>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Example.v1_7_0">
      <EntityType Name="Example" BaseType="Example.v1_2_0.Example">
        <Property Name="Uuid" Type="Edm.Guid"/>
      </EntityType>
      <Action Name="Reset" IsBound="true">
        <Parameter Name="ResetType" Type="Edm.String"/>
      </Action>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

// exampleResourceXML declares the referenced ExampleResource document with a
// shared complex type and a type alias.
const exampleResourceXML = `<?xml version="1.0" encoding="UTF-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">
  <edmx:DataServices>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="ExampleResource">
      <EntityType Name="ExampleResource" Abstract="true"/>
      <ComplexType Name="Status">
        <Property Name="State" Type="Edm.String"/>
        <Property Name="Health" Type="Edm.String"/>
      </ComplexType>
    </Schema>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="ExampleResource.v1_0_0">
      <EntityType Name="ExampleResource" BaseType="ExampleResource.ExampleResource">
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
        <Property Name="Name" Type="Edm.String"/>
      </EntityType>
      <TypeDefinition Name="UUID" UnderlyingType="Edm.Guid"/>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

// loopXML declares a deliberately circular base type chain.
const loopXML = `<?xml version="1.0" encoding="UTF-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">
  <edmx:DataServices>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Loop.v1_0_0">
      <EntityType Name="A" BaseType="Loop.v1_0_0.B"/>
      <EntityType Name="B" BaseType="Loop.v1_0_0.A"/>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

const malformedXML = `<?xml version="1.0" encoding="UTF-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx">
  <unclosed`

// writeMetadataDir lays the given documents out in a fresh temp directory.
func writeMetadataDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

// loadTestCatalog loads the standard Example/ExampleResource fixture pair.
func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	dir := writeMetadataDir(t, map[string]string{
		"Example_v1.xml":         exampleXML,
		"ExampleResource_v1.xml": exampleResourceXML,
	})
	c, err := Load(dir)
	require.NoError(t, err)
	return c
}

// mustType resolves a type that the test requires to exist.
func mustType(t *testing.T, c *Catalog, name string) *RedfishType {
	t.Helper()

	rt, err := c.GetTypeInCatalog(name)
	require.NoError(t, err)
	return rt
}
