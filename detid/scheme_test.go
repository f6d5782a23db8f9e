package detid

import "testing"

func TestExpectedMasks(t *testing.T) {
	for _, phase := range []Phase{Phase0, Phase1, Phase2} {
		masks, err := ExpectedMasks(phase)
		if err != nil {
			t.Fatal(err)
		}
		if len(masks) != 8 {
			t.Fatalf("%v: expected 8 masks, got %d", phase, len(masks))
		}
	}
	if _, err := ExpectedMasks(Phase(7)); err != UnsupportedPhase {
		t.Fatalf("expected UnsupportedPhase, got %v", err)
	}
}

func TestExpectedMaskPatterns(t *testing.T) {
	masks, err := ExpectedMasks(Phase1)
	if err != nil {
		t.Fatal(err)
	}
	if masks[0] != New(PixelBarrel)|DetId(uint32(0xF)<<20) {
		t.Fatalf("wrong layer mask: %v", masks[0])
	}
	if masks[2] != New(PixelBarrel)|DetId(uint32(0x3FF)<<2) {
		t.Fatalf("wrong module mask: %v", masks[2])
	}
	if masks[3] != New(PixelEndcap)|DetId(uint32(0x3)<<23) {
		t.Fatalf("wrong side mask: %v", masks[3])
	}
	if masks[7] != New(PixelEndcap)|DetId(uint32(0xFF)<<2) {
		t.Fatalf("wrong forward module mask: %v", masks[7])
	}
}

func TestCheckPhaseIdentity(t *testing.T) {
	for _, phase := range []Phase{Phase0, Phase1, Phase2} {
		masks, err := ExpectedMasks(phase)
		if err != nil {
			t.Fatal(err)
		}
		ok, err := CheckPhase(phase, masks)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("%v masks did not match their own phase", phase)
		}
	}
}

func TestCheckPhaseMismatch(t *testing.T) {
	phase1Masks, err := ExpectedMasks(Phase1)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := CheckPhase(Phase0, phase1Masks)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("phase1 masks matched phase0")
	}
	ok, err = CheckPhase(Phase1, phase1Masks[:4])
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("truncated mask set matched phase1")
	}
	if _, err := CheckPhase(Phase(7), phase1Masks); err != UnsupportedPhase {
		t.Fatalf("expected UnsupportedPhase, got %v", err)
	}
}

func TestPxbDetIdFields(t *testing.T) {
	id, err := PxbDetId(Phase0, 3, 7, 2)
	if err != nil {
		t.Fatal(err)
	}
	expected := New(PixelBarrel) | DetId(3<<16|7<<8|2<<2)
	if id != expected {
		t.Fatalf("expected %v, got %v", expected, id)
	}
	if _, err := PxbDetId(Phase(7), 1, 1, 1); err != UnsupportedPhase {
		t.Fatalf("expected UnsupportedPhase, got %v", err)
	}
}
