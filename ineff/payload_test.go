package ineff

import "testing"

func testPayload(t *testing.T) *Payload {
	module := testModule(t)
	payload := NewPayload()
	payload.PixelGeomFactors[module] = 0.9
	payload.ColGeomFactors[module] = 0.8
	payload.ChipGeomFactors[module] = 0.7
	payload.PUFactors[module] = []float64{1.0, 0.5}
	payload.DetIdMasks = phase1Masks(t)
	payload.InstLumiScaleFactor = 221.95
	return payload
}

func TestPayloadEncodeDecode(t *testing.T) {
	module := testModule(t)
	payload := testPayload(t)
	data, err := payload.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodePayload(data)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.PixelGeomFactors[module] != 0.9 {
		t.Fatalf("wrong pixel geom factor: %v", decoded.PixelGeomFactors[module])
	}
	if len(decoded.PUFactors[module]) != 2 {
		t.Fatalf("wrong PU factors: %v", decoded.PUFactors[module])
	}
	if len(decoded.DetIdMasks) != 8 {
		t.Fatalf("wrong mask count: %d", len(decoded.DetIdMasks))
	}
	if decoded.InstLumiScaleFactor != 221.95 {
		t.Fatalf("wrong scale factor: %v", decoded.InstLumiScaleFactor)
	}
}

func TestPayloadHash(t *testing.T) {
	first := testPayload(t)
	second := testPayload(t)
	if first.Hash() != second.Hash() {
		t.Fatal("equal payloads hashed differently")
	}
	second.InstLumiScaleFactor = 100
	if first.Hash() == second.Hash() {
		t.Fatal("different payloads hashed equal")
	}
	if len(first.Hash()) != 64 {
		t.Fatalf("unexpected hash length: %d", len(first.Hash()))
	}
}

func TestParseFactorKind(t *testing.T) {
	cases := map[string]FactorKind{
		"geom":     Geom,
		"colgeom":  ColGeom,
		"chipgeom": ChipGeom,
		"pu":       PU,
	}
	for name, expected := range cases {
		kind, err := ParseFactorKind(name)
		if err != nil {
			t.Fatal(err)
		}
		if kind != expected {
			t.Fatalf("%s parsed as %v", name, kind)
		}
	}
	if _, err := ParseFactorKind("bogus"); err != UnknownFactorKind {
		t.Fatalf("expected UnknownFactorKind, got %v", err)
	}
}

func TestFactors(t *testing.T) {
	module := testModule(t)
	payload := testPayload(t)
	factors, err := payload.Factors(ColGeom)
	if err != nil {
		t.Fatal(err)
	}
	if factors[module] != 0.8 {
		t.Fatalf("wrong col geom factor: %v", factors[module])
	}
	if _, err := payload.Factors(PU); err != UnknownFactorKind {
		t.Fatalf("expected UnknownFactorKind for PU, got %v", err)
	}
}
