package program

import "fmt"

// BuildError signals a builder-internal invariant violation: an unresolved
// forward label left at assemble time, a fixup touching an instruction of
// the wrong shape, or similar compiler bugs. These are never "best-effort"
// recovered (spec §7 kind 3: Unreachable/invariant violation).
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("program: build invariant violated: %s", e.Message)
}

// UncapturedReferenceError is returned by Assemble when a symbolic
// reference has no matching Capture anywhere in the tree, and by the code
// generator when a named backreference names no entry of the capture list
// (spec §7 kind 2).
type UncapturedReferenceError struct {
	ID   int    // symbolic id, if this came from a symbolicReference
	Name string // capture name, if this came from a named backreference
}

func (e *UncapturedReferenceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("program: uncaptured reference to named group %q", e.Name)
	}
	return fmt.Sprintf("program: uncaptured reference to symbolic id %d", e.ID)
}
