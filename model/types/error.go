package types

import "fmt"

// NewMethodNotFoundError reports that a service does not register the named
// method.
func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("service method %q is not registered", name)
}

// NewInvalidInputError reports that an executable was handed an input of an
// unsupported type.
func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("unsupported input type %T", in)
}

// NewInvalidOutputError reports that an executable was handed an output of
// an unsupported type.
func NewInvalidOutputError(out interface{}) error {
	return fmt.Errorf("unsupported output type %T", out)
}
