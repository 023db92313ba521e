package compiler

import (
	"github.com/coregx/rxcompile/pattern"
)

// emitCapture lowers a Capture node per spec §4.4: push an option scope,
// allocate its register, beginCapture/child/endCapture, then optionally
// captureValue (if the child was a Matcher) and transformCapture.
func (g *Generator) emitCapture(n *pattern.Node) error {
	g.opts.BeginScope()
	defer g.opts.EndScope()

	cap := g.b.AllocCaptureReg()
	if n.RefID != pattern.NoRef {
		g.b.RecordCaptureRef(n.RefID, int(cap))
	}

	g.b.EmitBeginCapture(cap)

	if n.Child != nil && n.Child.Kind == pattern.KindMatcher {
		valueReg, err := g.emitMatcherNode(n.Child)
		if err != nil {
			return err
		}
		g.b.EmitEndCapture(cap)
		g.b.EmitCaptureValue(valueReg, cap)
	} else {
		if n.Child != nil {
			if err := g.emitNode(n.Child); err != nil {
				return err
			}
		}
		g.b.EmitEndCapture(cap)
	}

	if n.Transform != nil {
		g.b.EmitTransformCapture(cap, n.Transform)
	}
	return nil
}
