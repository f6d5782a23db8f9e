package detid

import "fmt"

// DetId packs a position in the pixel detector hierarchy into 32 bits.
// Bits 28-31 select the detector, bits 25-27 the subdetector; the
// remaining bits hold per-subdetector structure fields.
type DetId uint32

type Subdetector uint32

const (
	PixelBarrel Subdetector = 1
	PixelEndcap Subdetector = 2
)

const (
	Tracker = 1

	detectorStartBit = 28
	subdetStartBit   = 25
	subdetMask       = 0x7
)

// ROC slots reuse bits that module-level ids leave at zero.
const (
	BPixRocIdShift = 6
	FPixRocIdShift = 3
	rocIdMaskBits  = 0x1F
)

func New(subdet Subdetector) DetId {
	return DetId(uint32(Tracker)<<detectorStartBit | uint32(subdet)<<subdetStartBit)
}

func (id DetId) Subdetector() Subdetector {
	return Subdetector((uint32(id) >> subdetStartBit) & subdetMask)
}

// SubdetectorId strips all structure fields, leaving the detector and
// subdetector selector bits only.
func (id DetId) SubdetectorId() DetId {
	return New(id.Subdetector())
}

func (id DetId) RocShift() int {
	if id.Subdetector() == PixelBarrel {
		return BPixRocIdShift
	}
	return FPixRocIdShift
}

// ExtractRoc splits off the ROC slot, returning the bare module id and
// the raw slot value. Slot 0 means the id addressed the whole module.
func (id DetId) ExtractRoc() (DetId, int) {
	var shift = id.RocShift()
	var rocMask = uint32(rocIdMaskBits) << uint(shift)
	var roc = (uint32(id) & rocMask) >> uint(shift)
	return DetId(uint32(id) &^ rocMask), int(roc)
}

// WithRoc re-encodes a ROC slot into a module id.
func (id DetId) WithRoc(roc int) DetId {
	var shift = id.RocShift()
	return DetId(uint32(id) | (uint32(roc)&rocIdMaskBits)<<uint(shift))
}

func (id DetId) String() string {
	return fmt.Sprintf("%d (0x%08x)", uint32(id), uint32(id))
}
