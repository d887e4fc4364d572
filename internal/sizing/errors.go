package sizing

import "fmt"

// UnknownCollectionError reports a lookup of a collection name that was never
// registered. It is surfaced immediately to the caller, never defaulted.
type UnknownCollectionError struct {
	Name string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("collection '%s' not registered", e.Name)
}
