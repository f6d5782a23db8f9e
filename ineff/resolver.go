package ineff

import (
	"fmt"
	"time"

	"github.com/ReneKroon/ttlcache"
	"github.com/trackerdqm/pixelineff/detid"
)

const resolvedFactorTTL = 5 * time.Minute

// Resolver memoizes resolved geometry factors. Entries are keyed by
// (payload hash, target id) and never change once set, since both the
// payload content and the matching are pure functions of the key.
type Resolver struct {
	cache *ttlcache.Cache
}

func NewResolver() *Resolver {
	return &Resolver{cache: ttlcache.NewCache()}
}

func resolverKey(payloadHash string, kind FactorKind, target detid.DetId) string {
	return fmt.Sprintf("%s:%d:%d", payloadHash, kind, uint32(target))
}

func (r *Resolver) GeomFactor(
	payloadHash string,
	kind FactorKind,
	target detid.DetId,
	factors FactorMap,
	masks []detid.DetId,
) float64 {
	var key = resolverKey(payloadHash, kind, target)
	if value, found := r.cache.Get(key); found {
		return value.(float64)
	}
	var factor = MatchingGeomFactor(target, factors, masks)
	r.cache.SetWithTTL(key, factor, resolvedFactorTTL)
	return factor
}
