package ineff

import "github.com/trackerdqm/pixelineff/detid"

// RocFractions lists the inefficient ROCs of one module: 0-based ROC
// numbers and the matching bad fraction (1 - stored factor). The two
// slices always have the same length.
type RocFractions struct {
	Rocs      []int
	Fractions []float64
}

// BadRocFractions unpacks a ROC-indexed factor map into per-module
// records. Every module seen in the input gets an entry, even when its
// only key carried ROC slot 0 (a whole-module id, which contributes no
// ROC record of its own).
func BadRocFractions(factors FactorMap) map[detid.DetId]*RocFractions {
	var fractions = map[detid.DetId]*RocFractions{}
	for id, factor := range factors {
		module, roc := id.ExtractRoc()
		packed, found := fractions[module]
		if !found {
			packed = &RocFractions{}
			fractions[module] = packed
		}
		if roc != 0 {
			packed.Rocs = append(packed.Rocs, roc-1)
			packed.Fractions = append(packed.Fractions, 1-factor)
		}
	}
	return fractions
}

// IsPhase0 reports whether any unpacked module belongs to the legacy
// geometry, keyed off the supplied reference id list.
func IsPhase0(fractions map[detid.DetId]*RocFractions, legacyIds []detid.DetId) bool {
	for _, legacy := range legacyIds {
		if _, found := fractions[legacy]; found {
			return true
		}
	}
	return false
}
