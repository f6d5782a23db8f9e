package ineff

import (
	"sort"

	"github.com/trackerdqm/pixelineff/detid"
)

// matches decides whether a stored map id applies to a target module.
// A mask whose subdetector differs from the stored id is ignored. For
// every relevant mask the stored id must either agree with the target
// on the masked bits or carry the wildcard pattern: all masked
// structure bits zero, meaning "any value of this field".
func matches(target, stored detid.DetId, masks []detid.DetId) bool {
	if target.Subdetector() != stored.Subdetector() {
		return false
	}
	var base = stored.SubdetectorId()
	for _, mask := range masks {
		if mask.Subdetector() != stored.Subdetector() {
			continue
		}
		if target&mask != stored&mask && stored&mask != base&mask {
			return false
		}
	}
	return true
}

// MatchingGeomFactor folds every applicable stored factor into one
// multiplicative correction. Independent hierarchy levels (a module
// factor and a column factor, say) compose rather than override; no
// applicable entry leaves the neutral 1.
func MatchingGeomFactor(target detid.DetId, factors FactorMap, masks []detid.DetId) float64 {
	var factor = 1.0
	for stored, value := range factors {
		if matches(target, stored, masks) {
			factor *= value
		}
	}
	return factor
}

// MatchingPUFactors returns the pileup factor array of the last
// applicable entry in stored key order, or nil when none applies. PU
// entries are mutually exclusive overrides, not composable levels.
func MatchingPUFactors(target detid.DetId, factors PUFactorMap, masks []detid.DetId) []float64 {
	var puFactors []float64
	for _, stored := range sortedPUIds(factors) {
		if matches(target, stored, masks) {
			puFactors = factors[stored]
		}
	}
	return puFactors
}

// MaxPUDepth reports the longest pileup factor array in the map.
func MaxPUDepth(factors PUFactorMap) int {
	var depth int
	for _, values := range factors {
		if len(values) > depth {
			depth = len(values)
		}
	}
	return depth
}

func sortedIds(factors FactorMap) []detid.DetId {
	var ids = make([]detid.DetId, 0, len(factors))
	for id := range factors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedPUIds(factors PUFactorMap) []detid.DetId {
	var ids = make([]detid.DetId, 0, len(factors))
	for id := range factors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
