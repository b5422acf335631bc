package schema

import "errors"

// Case defines a single payload validation: one payload document populated
// and checked against its resolved type. Note that this would be called
// 'Test' except the file would be called 'test.go' and its test 'test_test.go'.
type Case struct {
	Path     string   // payload file the case validates
	TypeName TypeName // from the payload's @odata.type or the run's override
	Payload  Value    // the decoded payload document

	Object *RedfishObject // the populated object, once the case has run
	Links  []string       // links extracted from the populated object
	Err    error          // if the case did not validate, the related error
}

// NewCase sets up a new case for execution.
func NewCase(path string, tn TypeName, payload Value) Case {
	return Case{
		Path:     path,
		TypeName: tn,
		Payload:  payload,
	}
}

// Run resolves the case's type in the catalog and populates the payload
// against it. The populated object and its links are retained even when
// checking fails, so reports can show what was read.
func (c *Case) Run(cat *Catalog, strict bool) error {
	t, err := cat.GetTypeInCatalog(string(c.TypeName))
	if err != nil {
		c.Err = err
		return c.Err
	}

	obj, err := NewObject(t).Populate(c.Payload, strict)
	c.Object = obj
	c.Links = obj.Links()
	if err != nil {
		c.Err = err
		return c.Err
	}

	return nil
}

// ResultLabel returns a human-readable label for the result of the case.
func (c *Case) ResultLabel() string {
	if c.Err == nil {
		return "passed"
	}

	var miss *MissingSchemaError
	if errors.As(c.Err, &miss) {
		return "failed - type could not be resolved"
	}
	var coerce *PropertyCoercionError
	if errors.As(c.Err, &coerce) {
		return "failed - payload does not conform"
	}
	return "failed"
}
