package gen

import "fmt"

// DuplicateTypeError reports two class-like descriptors with the same full
// name in one run.
type DuplicateTypeError struct {
	Name string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("type %s registered twice", e.Name)
}
