package ineff

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"math"

	"github.com/trackerdqm/pixelineff/detid"
	"github.com/trackerdqm/pixelineff/utils"
)

type FactorMap map[detid.DetId]float64

type PUFactorMap map[detid.DetId][]float64

type FactorKind int

const (
	Geom FactorKind = iota
	ColGeom
	ChipGeom
	PU
)

var UnknownFactorKind = errors.New("unknown factor kind")

var factorKindNames = [...]string{"pixel geometry", "column geometry", "chip geometry", "PU"}

func (fk FactorKind) String() string {
	if fk < Geom || fk > PU {
		return "invalid"
	}
	return factorKindNames[fk]
}

// ParseFactorKind maps the URL-facing kind names to FactorKind.
func ParseFactorKind(name string) (FactorKind, error) {
	switch name {
	case "geom":
		return Geom, nil
	case "colgeom":
		return ColGeom, nil
	case "chipgeom":
		return ChipGeom, nil
	case "pu":
		return PU, nil
	}
	return 0, UnknownFactorKind
}

// Payload holds one dynamic inefficiency condition: geometry factor
// maps keyed by (possibly wildcarded) DetId, pileup factor arrays, the
// mask set describing the hierarchy shape the keys were written for,
// and the luminosity scale factor.
type Payload struct {
	PixelGeomFactors    FactorMap     `yaml:"pixelGeomFactors"`
	ColGeomFactors      FactorMap     `yaml:"colGeomFactors"`
	ChipGeomFactors     FactorMap     `yaml:"chipGeomFactors"`
	PUFactors           PUFactorMap   `yaml:"puFactors"`
	DetIdMasks          []detid.DetId `yaml:"detIdMasks"`
	InstLumiScaleFactor float64       `yaml:"instLumiScaleFactor"`
}

func NewPayload() *Payload {
	return &Payload{
		PixelGeomFactors: FactorMap{},
		ColGeomFactors:   FactorMap{},
		ChipGeomFactors:  FactorMap{},
		PUFactors:        PUFactorMap{},
	}
}

func (p *Payload) Factors(kind FactorKind) (FactorMap, error) {
	switch kind {
	case Geom:
		return p.PixelGeomFactors, nil
	case ColGeom:
		return p.ColGeomFactors, nil
	case ChipGeom:
		return p.ChipGeomFactors, nil
	}
	return nil, UnknownFactorKind
}

func (p *Payload) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodePayload(data []byte) (*Payload, error) {
	var p Payload
	var decoder = gob.NewDecoder(bytes.NewBuffer(data))
	if err := decoder.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Hash identifies a payload by content, the way the conditions store
// keys payloads by hash rather than by tag. Map entries are folded in
// sorted key order so equal payloads always hash equal.
func (p *Payload) Hash() string {
	var buf bytes.Buffer
	hashFactors(&buf, p.PixelGeomFactors)
	hashFactors(&buf, p.ColGeomFactors)
	hashFactors(&buf, p.ChipGeomFactors)
	for _, id := range sortedPUIds(p.PUFactors) {
		_ = binary.Write(&buf, binary.BigEndian, uint32(id))
		for _, value := range p.PUFactors[id] {
			_ = binary.Write(&buf, binary.BigEndian, math.Float64bits(value))
		}
	}
	for _, mask := range p.DetIdMasks {
		_ = binary.Write(&buf, binary.BigEndian, uint32(mask))
	}
	_ = binary.Write(&buf, binary.BigEndian, math.Float64bits(p.InstLumiScaleFactor))
	return utils.HashString(buf.Bytes())
}

func hashFactors(buf *bytes.Buffer, factors FactorMap) {
	for _, id := range sortedIds(factors) {
		_ = binary.Write(buf, binary.BigEndian, uint32(id))
		_ = binary.Write(buf, binary.BigEndian, math.Float64bits(factors[id]))
	}
}
