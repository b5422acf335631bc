package csdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">
  <edmx:Reference Uri="http://redfish.dmtf.org/schemas/v1/Resource_v1.xml">
    <edmx:Include Namespace="Resource"/>
    <edmx:Include Namespace="Resource.v1_0_0" Alias="Res"/>
  </edmx:Reference>
  <edmx:DataServices>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Widget.v1_0_0" Alias="W">
      <EntityType Name="Widget" BaseType="Widget.Widget" Abstract="false">
        <Annotation Term="OData.Description" String="A widget resource."/>
        <Property Name="Id" Type="Edm.String" Nullable="false"/>
        <Property Name="Name" Type="Edm.String"/>
        <Property Name="Enabled" Type="Edm.Boolean" Nullable="true"/>
        <NavigationProperty Name="Parts" Type="Collection(Part.Part)" ContainsTarget="true"/>
        <UnknownElement Ignored="yes"/>
      </EntityType>
      <ComplexType Name="Status" Abstract="true">
        <Property Name="Health" Type="Edm.String"/>
      </ComplexType>
      <EnumType Name="State">
        <Member Name="Enabled" Value="1"/>
        <Member Name="Disabled"/>
      </EnumType>
      <TypeDefinition Name="UUID" UnderlyingType="Edm.Guid"/>
      <Action Name="Reset" IsBound="true">
        <Parameter Name="ResetType" Type="Edm.String"/>
      </Action>
      <Annotation Term="Redfish.OwningEntity" String="DMTF"/>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()
		doc, err := Parse([]byte(sampleDocument))
		require.NoError(t, err)
		assert.Equal(t, "4.0", doc.Version)

		require.Len(t, doc.References, 1)
		ref := doc.References[0]
		assert.Equal(t, "http://redfish.dmtf.org/schemas/v1/Resource_v1.xml", ref.URI)
		require.Len(t, ref.Includes, 2)
		assert.Equal(t, "Resource", ref.Includes[0].Namespace)
		assert.Equal(t, "Res", ref.Includes[1].Alias)

		require.Len(t, doc.DataServices.Schemas, 1)
		s := doc.DataServices.Schemas[0]
		assert.Equal(t, "Widget.v1_0_0", s.Namespace)
		assert.Equal(t, "W", s.Alias)

		require.Len(t, s.EntityTypes, 1)
		e := s.EntityTypes[0]
		assert.Equal(t, "Widget", e.Name)
		assert.Equal(t, "Widget.Widget", e.BaseType)
		assert.False(t, e.Abstract)
		require.Len(t, e.Properties, 3)
		require.Len(t, e.NavigationProperties, 1)
		nav := e.NavigationProperties[0]
		assert.Equal(t, "Parts", nav.Name)
		assert.Equal(t, "Collection(Part.Part)", nav.Type)
		assert.True(t, nav.ContainsTarget)
		require.Len(t, e.Annotations, 1)
		assert.Equal(t, "OData.Description", e.Annotations[0].Term)
		assert.Equal(t, "A widget resource.", e.Annotations[0].String)

		require.Len(t, s.ComplexTypes, 1)
		assert.Equal(t, "Status", s.ComplexTypes[0].Name)
		assert.True(t, s.ComplexTypes[0].Abstract)

		require.Len(t, s.EnumTypes, 1)
		members := s.EnumTypes[0].Members
		require.Len(t, members, 2)
		assert.Equal(t, "Enabled", members[0].Name)
		require.NotNil(t, members[0].Value)
		assert.Equal(t, "1", *members[0].Value)
		assert.Nil(t, members[1].Value)

		require.Len(t, s.TypeDefinitions, 1)
		assert.Equal(t, "Edm.Guid", s.TypeDefinitions[0].UnderlyingType)

		require.Len(t, s.Actions, 1)
		a := s.Actions[0]
		assert.True(t, a.IsBound)
		require.Len(t, a.Parameters, 1)
		assert.Equal(t, "ResetType", a.Parameters[0].Name)

		require.Len(t, s.Annotations, 1)
		assert.Equal(t, "Redfish.OwningEntity", s.Annotations[0].Term)
	})

	t.Run("nullable distinguishes omitted from explicit", func(t *testing.T) {
		t.Parallel()
		doc, err := Parse([]byte(sampleDocument))
		require.NoError(t, err)

		props := doc.DataServices.Schemas[0].EntityTypes[0].Properties
		require.NotNil(t, props[0].Nullable)
		assert.False(t, *props[0].Nullable)
		assert.Nil(t, props[1].Nullable)
		require.NotNil(t, props[2].Nullable)
		assert.True(t, *props[2].Nullable)
	})

	t.Run("invalid xml", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte(`<edmx:Edmx xmlns:edmx="x"><unclosed`))
		assert.Error(t, err)
	})
}
