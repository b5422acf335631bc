// Package csdl models OData CSDL schema documents - the XML format in which
// the DMTF publishes the Redfish data model (DSP8010). Only the elements the
// validator consumes are modelled; anything else is ignored by the decoder.
package csdl

import (
	"encoding/xml"
)

// Parse decodes a CSDL document. The root element is edmx:Edmx; namespace
// prefixes are irrelevant to the decoder, which matches on local names.
func Parse(data []byte) (*Edmx, error) {
	var doc Edmx
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Edmx is the document root.
type Edmx struct {
	Version      string       `xml:"Version,attr"`
	References   []Reference  `xml:"Reference"`
	DataServices DataServices `xml:"DataServices"`
}

// Reference declares a dependency on another CSDL document.
type Reference struct {
	URI      string    `xml:"Uri,attr"`
	Includes []Include `xml:"Include"`
}

// Include names one namespace pulled in from a referenced document.
type Include struct {
	Namespace string `xml:"Namespace,attr"`
	Alias     string `xml:"Alias,attr"`
}

type DataServices struct {
	Schemas []Schema `xml:"Schema"`
}

// Schema is one namespace worth of type definitions.
type Schema struct {
	Namespace       string           `xml:"Namespace,attr"`
	Alias           string           `xml:"Alias,attr"`
	EntityTypes     []EntityType     `xml:"EntityType"`
	ComplexTypes    []ComplexType    `xml:"ComplexType"`
	EnumTypes       []EnumType       `xml:"EnumType"`
	TypeDefinitions []TypeDefinition `xml:"TypeDefinition"`
	Actions         []Action         `xml:"Action"`
	Annotations     []Annotation     `xml:"Annotation"`
}

// EntityType is an addressable resource type. Redfish resources carry
// @odata.id and are the targets of navigation properties.
type EntityType struct {
	Name                 string               `xml:"Name,attr"`
	BaseType             string               `xml:"BaseType,attr"`
	Abstract             bool                 `xml:"Abstract,attr"`
	Properties           []Property           `xml:"Property"`
	NavigationProperties []NavigationProperty `xml:"NavigationProperty"`
	Annotations          []Annotation         `xml:"Annotation"`
}

// ComplexType is a structured value embedded in its parent resource.
type ComplexType struct {
	Name                 string               `xml:"Name,attr"`
	BaseType             string               `xml:"BaseType,attr"`
	Abstract             bool                 `xml:"Abstract,attr"`
	Properties           []Property           `xml:"Property"`
	NavigationProperties []NavigationProperty `xml:"NavigationProperty"`
	Annotations          []Annotation         `xml:"Annotation"`
}

type EnumType struct {
	Name        string       `xml:"Name,attr"`
	Members     []Member     `xml:"Member"`
	Annotations []Annotation `xml:"Annotation"`
}

type Member struct {
	Name        string       `xml:"Name,attr"`
	Value       *string      `xml:"Value,attr"`
	Annotations []Annotation `xml:"Annotation"`
}

// TypeDefinition aliases a primitive type, e.g. a UUID-shaped string.
type TypeDefinition struct {
	Name           string       `xml:"Name,attr"`
	UnderlyingType string       `xml:"UnderlyingType,attr"`
	Annotations    []Annotation `xml:"Annotation"`
}

type Action struct {
	Name       string      `xml:"Name,attr"`
	IsBound    bool        `xml:"IsBound,attr"`
	Parameters []Parameter `xml:"Parameter"`
}

type Parameter struct {
	Name string `xml:"Name,attr"`
	Type string `xml:"Type,attr"`
}

// Property is a declared structural property. Nullable is a pointer because
// CSDL defaults it to true when the attribute is omitted.
type Property struct {
	Name        string       `xml:"Name,attr"`
	Type        string       `xml:"Type,attr"`
	Nullable    *bool        `xml:"Nullable,attr"`
	Annotations []Annotation `xml:"Annotation"`
}

// NavigationProperty references another resource rather than embedding it.
type NavigationProperty struct {
	Name           string       `xml:"Name,attr"`
	Type           string       `xml:"Type,attr"`
	Nullable       *bool        `xml:"Nullable,attr"`
	ContainsTarget bool         `xml:"ContainsTarget,attr"`
	Annotations    []Annotation `xml:"Annotation"`
}

type Annotation struct {
	Term       string  `xml:"Term,attr"`
	String     string  `xml:"String,attr"`
	EnumMember string  `xml:"EnumMember,attr"`
	Bool       bool    `xml:"Bool,attr"`
	Int        int64   `xml:"Int,attr"`
	Decimal    float64 `xml:"Decimal,attr"`
}
