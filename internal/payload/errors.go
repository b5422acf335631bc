package payload

import "fmt"

// UnreadablePayloadError reports a payload file that could not be read.
type UnreadablePayloadError struct {
	Path    string
	Wrapped error
}

func (e *UnreadablePayloadError) Error() string {
	return fmt.Sprintf("payload %s could not be read: %v", e.Path, e.Wrapped)
}

func (e *UnreadablePayloadError) Unwrap() error {
	return e.Wrapped
}

// InvalidPayloadError reports a payload file that is not valid JSON.
type InvalidPayloadError struct {
	Path string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("payload %s is not valid JSON", e.Path)
}
