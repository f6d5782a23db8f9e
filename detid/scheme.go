package detid

import "errors"

// Phase names a pixel detector geometry generation. Each phase fixes
// the widths and positions of the hierarchy fields inside a DetId.
type Phase int

const (
	Phase0 Phase = iota
	Phase1
	Phase2
)

var UnsupportedPhase = errors.New("unsupported pixel phase")

var phaseNames = [...]string{"phase0", "phase1", "phase2"}

func (p Phase) String() string {
	if p < Phase0 || p > Phase2 {
		return "unknown"
	}
	return phaseNames[p]
}

type field struct {
	start uint
	mask  uint32
}

type layout struct {
	barrel  []field // layer, ladder, module
	forward []field // side, disk, blade, panel, module
}

var layouts = map[Phase]layout{
	Phase0: {
		barrel:  []field{{16, 0xF}, {8, 0xFF}, {2, 0x3F}},
		forward: []field{{23, 0x3}, {16, 0xF}, {10, 0x3F}, {8, 0x3}, {2, 0x3F}},
	},
	Phase1: {
		barrel:  []field{{20, 0xF}, {12, 0xFF}, {2, 0x3FF}},
		forward: []field{{23, 0x3}, {18, 0xF}, {12, 0x3F}, {10, 0x3}, {2, 0xFF}},
	},
	Phase2: {
		barrel:  []field{{20, 0xF}, {12, 0xFF}, {2, 0x3FF}},
		forward: []field{{23, 0x3}, {18, 0xF}, {11, 0x7F}, {9, 0x3}, {2, 0x7F}},
	},
}

func pack(base DetId, fields []field, values []uint32) DetId {
	var id = uint32(base)
	for pos, f := range fields {
		id |= (values[pos] & f.mask) << f.start
	}
	return DetId(id)
}

// PxbDetId builds a barrel id from layer, ladder and module numbers.
// Values wider than the phase's field are truncated to it.
func PxbDetId(phase Phase, layer, ladder, module uint32) (DetId, error) {
	l, found := layouts[phase]
	if !found {
		return 0, UnsupportedPhase
	}
	return pack(New(PixelBarrel), l.barrel, []uint32{layer, ladder, module}), nil
}

// PxfDetId builds a forward id from side, disk, blade, panel and module
// numbers.
func PxfDetId(phase Phase, side, disk, blade, panel, module uint32) (DetId, error) {
	l, found := layouts[phase]
	if !found {
		return 0, UnsupportedPhase
	}
	return pack(New(PixelEndcap), l.forward, []uint32{side, disk, blade, panel, module}), nil
}

// ExpectedMasks synthesizes the mask set a payload recorded for the
// given phase must carry: one id per hierarchy field with just that
// field saturated, barrel fields first, outer levels before inner ones.
func ExpectedMasks(phase Phase) ([]DetId, error) {
	l, found := layouts[phase]
	if !found {
		return nil, UnsupportedPhase
	}
	var masks = make([]DetId, 0, len(l.barrel)+len(l.forward))
	for _, f := range l.barrel {
		masks = append(masks, New(PixelBarrel)|DetId(f.mask<<f.start))
	}
	for _, f := range l.forward {
		masks = append(masks, New(PixelEndcap)|DetId(f.mask<<f.start))
	}
	return masks, nil
}

// CheckPhase reports whether a recorded mask set matches the given
// phase exactly, in length and in order. Masks from another phase are
// meaningless even when a prefix happens to coincide.
func CheckPhase(phase Phase, masks []DetId) (bool, error) {
	expected, err := ExpectedMasks(phase)
	if err != nil {
		return false, err
	}
	if len(expected) != len(masks) {
		return false, nil
	}
	for pos, mask := range expected {
		if masks[pos] != mask {
			return false, nil
		}
	}
	return true, nil
}
