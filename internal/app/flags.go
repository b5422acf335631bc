package app

import (
	"fmt"
	"strings"
)

// formatValue implements pflag.Value to provide a custom type name in help text
// and validation for output formats.
type formatValue string

func (f *formatValue) String() string {
	return string(*f)
}

func (f *formatValue) Set(v string) error {
	if v != "json" && v != "text" {
		return fmt.Errorf("must be 'text' or 'json'")
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string {
	return "<format>"
}

// pathValue implements pflag.Value to provide a custom type name in help text.
type pathValue string

func (p *pathValue) String() string {
	return string(*p)
}

func (p *pathValue) Set(v string) error {
	*p = pathValue(v)
	return nil
}

func (p *pathValue) Type() string {
	return "<path>"
}

// typeNameValue implements pflag.Value for qualified type name flags. A
// namespace qualifier is required; a leading '#' as copied out of an
// @odata.type annotation is accepted.
type typeNameValue string

func (t *typeNameValue) String() string {
	return string(*t)
}

func (t *typeNameValue) Set(v string) error {
	if !strings.Contains(strings.TrimPrefix(v, "#"), ".") {
		return fmt.Errorf("must be a namespace-qualified type name, e.g. 'ServiceRoot.v1_5_0.ServiceRoot'")
	}
	*t = typeNameValue(v)
	return nil
}

func (t *typeNameValue) Type() string {
	return "<type>"
}
