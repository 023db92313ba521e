package pattern

// CaptureInfo describes one capture slot, including the implicit
// whole-match capture at index 0.
type CaptureInfo struct {
	Index int
	Name  string // "" if unnamed
}

// CaptureList is the pre-built capture table the upstream parser hands to
// the compiler (spec §6: "a pre-built capture list mapping names and
// ordinal positions to capture indices"). Capture 0 is always the
// implicit whole match.
type CaptureList struct {
	captures []CaptureInfo
	byName   map[string]int
}

// NewCaptureList builds a CaptureList from capture info ordered by capture
// index (index 0 must be the whole-match capture).
func NewCaptureList(captures []CaptureInfo) *CaptureList {
	cl := &CaptureList{captures: captures, byName: make(map[string]int)}
	for _, c := range captures {
		if c.Name != "" {
			cl.byName[c.Name] = c.Index
		}
	}
	return cl
}

// Count returns the total number of captures, including capture 0.
func (cl *CaptureList) Count() int { return len(cl.captures) }

// IndexForName resolves a named backreference to a capture index.
func (cl *CaptureList) IndexForName(name string) (int, bool) {
	idx, ok := cl.byName[name]
	return idx, ok
}

// All returns the capture table in index order.
func (cl *CaptureList) All() []CaptureInfo { return cl.captures }
