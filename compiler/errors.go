package compiler

import "fmt"

// UnsupportedError signals a pattern-tree construct this generator
// deliberately refuses to lower: backward lookaround, relative/recursive
// backreferences, conditionals, and the other constructs spec §4.4 lists
// as "fails with Unsupported(descriptor)".
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("compiler: unsupported construct: %s", e.Feature)
}

// RecursionLimitError signals a pattern tree deeper than Config's
// MaxRecursionDepth, guarding the recursive lowering against a stack
// overflow on pathological input.
type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("compiler: pattern tree exceeds max recursion depth %d", e.Limit)
}
