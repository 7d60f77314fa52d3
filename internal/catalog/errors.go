package catalog

import (
	"errors"
	"fmt"

	"pygi-codegen/internal/gir"
)

// ErrUnsupportedType matches every *UnsupportedTypeError via errors.Is.
var ErrUnsupportedType = errors.New("unsupported type")

// UnsupportedTypeError reports a type tag with no known marshaling. It is
// recoverable: callers emit a stub for the one entry and keep going.
type UnsupportedTypeError struct {
	Tag gir.TypeTag
	// Dir is the lookup direction, or -1 for storage type lookups.
	Dir Dir
	// Reference names the interface descriptor when Tag is interface.
	Reference string
}

func (e *UnsupportedTypeError) Error() string {
	what := e.Tag.String()
	if e.Reference != "" {
		what = fmt.Sprintf("%s (%s)", what, e.Reference)
	}

	if e.Dir < 0 {
		return fmt.Sprintf("no storage type for %s", what)
	}

	return fmt.Sprintf("no %s directive for %s", e.Dir, what)
}

// Is makes errors.Is(err, ErrUnsupportedType) true.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
