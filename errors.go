package attrs

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema tags schema-definition failures surfaced while a registry is
	// being built.
	ErrSchema = errors.New("attrs: schema definition error")
	// ErrUnknownAttribute tags overrides that name no declared attribute.
	ErrUnknownAttribute = errors.New("attrs: unknown attribute")
	// ErrDeprecatedAttribute tags overrides that use a removed attribute name.
	ErrDeprecatedAttribute = errors.New("attrs: deprecated attribute")
	// ErrResolution tags failures raised by a resolution rule at first query.
	ErrResolution = errors.New("attrs: resolution error")
	// ErrUnknownType indicates an instance was requested for a primitive type
	// the registry never registered.
	ErrUnknownType = errors.New("attrs: unknown primitive type")
)

// SchemaError reports an invalid recipe declaration: colliding mixin keys
// without an override marker, a declared Automatic default with no resolution
// rule, a rule dependency cycle, or a missing default. These abort registry
// construction.
type SchemaError struct {
	Type   string // primitive type, empty for group-level failures
	Attr   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Type == "" {
		return fmt.Sprintf("attrs: schema: attribute %q: %s", e.Attr, e.Reason)
	}
	return fmt.Sprintf("attrs: schema: %s.%s: %s", e.Type, e.Attr, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// UnknownAttributeError reports an override keyed by a name absent from the
// composed schema. Construction of the offending primitive aborts.
type UnknownAttributeError struct {
	Type string
	Attr string
}

func (e *UnknownAttributeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("attrs: %s has no attribute %q", e.Type, e.Attr)
}

func (e *UnknownAttributeError) Unwrap() error { return ErrUnknownAttribute }

// DeprecatedAttributeError reports use of a removed attribute name whose
// deprecation rule is marked as an error.
type DeprecatedAttributeError struct {
	Type        string
	Attr        string
	Replacement string
	Message     string
	RemovedIn   string
}

func (e *DeprecatedAttributeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("attrs: %s.%s was removed in %s", e.Type, e.Attr, e.RemovedIn)
	if e.Replacement != "" {
		msg += fmt.Sprintf("; use %q instead", e.Replacement)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *DeprecatedAttributeError) Unwrap() error { return ErrDeprecatedAttribute }

// ResolutionError reports a resolution rule that raised an inconsistency,
// such as required input data being absent. The query aborts; no default is
// silently substituted.
type ResolutionError struct {
	Type string
	Attr string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("attrs: resolving %s.%s: %v", e.Type, e.Attr, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrResolution) match wrapped resolution failures.
func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

func wrapResolutionError(typeName, attr string, err error) error {
	if err == nil {
		return nil
	}
	var resErr *ResolutionError
	if errors.As(err, &resErr) {
		return err
	}
	return &ResolutionError{Type: typeName, Attr: attr, Err: err}
}
