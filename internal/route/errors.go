package route

import "fmt"

// QueryError wraps a failure to read the routing table or resolve a link.
type QueryError struct {
	// Op is the query that failed (e.g. "list routes", "lookup link")
	Op string
	// Err is the underlying error
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("route query failed (%s): %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// CommitError wraps a rejected default-route replacement. The routing table
// is unchanged when this error is returned.
type CommitError struct {
	// Interface is the link the route was being moved to
	Interface string
	// LinkIndex is the resolved index of Interface
	LinkIndex int
	// Err is the underlying error
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to move default route to %s (index %d): %v", e.Interface, e.LinkIndex, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
