package gir

import "fmt"

// MetadataLoadError reports that a namespace could not be resolved by the
// repository. It is fatal for a generation run.
type MetadataLoadError struct {
	Namespace string
	Err       error
}

func (e *MetadataLoadError) Error() string {
	return fmt.Sprintf("loading namespace %s: %v", e.Namespace, e.Err)
}

func (e *MetadataLoadError) Unwrap() error {
	return e.Err
}
