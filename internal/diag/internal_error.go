package diag

import "fmt"

// InternalError marks a violated compiler invariant (e.g. the SSA
// validator finding a duplicated definition, or a name-mangling
// collision). These are implementation bugs, not user-caused problems,
// so they are raised with panic rather than flowing through Reporter.
type InternalError struct {
	Component string
	Message   string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s: %s", e.Component, e.Message)
}

// Panic raises an InternalError. Callers that detect a broken invariant
// should call this rather than returning a Diagnostic.
func Panic(component, format string, args ...any) {
	panic(&InternalError{Component: component, Message: fmt.Sprintf(format, args...)})
}
