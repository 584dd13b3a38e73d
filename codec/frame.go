package codec

import (
	"fmt"

	"github.com/jeffro256/epee/errs"
	"github.com/jeffro256/epee/format"
)

// frameKind identifies the shape of a pushed frame, mirroring the
// RootSection/Section/Array/Packed states from the component design.
// RootSection is represented as a Section frame with root set to true,
// since the two differ only in their prologue (signature vs. object
// tag), not in their (key, entry) iteration behavior.
type frameKind uint8

const (
	frameSection frameKind = iota
	frameArray
	framePacked
)

// frame is one level of the encoder's / decoder's explicit state
// stack. Sections and root sections iterate (key, entry) pairs and
// track whether the next slot expects a key or a value; arrays and
// packed frames iterate bare elements with no per-element framing.
type frame struct {
	kind     frameKind
	root     bool // true only for the outermost section frame
	declared int  // declared field/element count (n or M)
	seen     int  // pairs/elements consumed or emitted so far

	elemType format.ScalarType // Array only: the type shared by every element
	haveElem bool              // Array only: whether elemType has been fixed (set at construction)

	inKey bool // Section/RootSection only: true while the next call must be Key
}

func newSectionFrame(root bool, n int) frame {
	return frame{kind: frameSection, root: root, declared: n, inKey: true}
}

func newArrayFrame(elem format.ScalarType, n int) frame {
	return frame{kind: frameArray, declared: n, elemType: elem, haveElem: true}
}

func newPackedFrame(n int) frame {
	return frame{kind: framePacked, declared: n}
}

// checkElemType validates that a scalar about to be written into an
// Array frame matches the element type the frame was opened with.
// Array frames are always constructed with their element type fixed
// up front (the bridge/caller must declare it), so this is purely a
// consistency check against caller error, not element-driven type
// inference.
func (f *frame) checkElemType(t format.ScalarType) error {
	if f.kind != frameArray {
		return nil
	}

	if !f.haveElem {
		f.elemType = t
		f.haveElem = true
		return nil
	}

	if f.elemType != t {
		return fmt.Errorf("%w: array declared %s, got %s", errs.ErrArrayMixedTypes, f.elemType, t)
	}

	return nil
}

// remaining reports how many more pairs/elements this frame expects.
func (f *frame) remaining() int {
	return f.declared - f.seen
}
