package charting

import (
	"net/url"
	"testing"
)

func TestParseServiceParams(t *testing.T) {
	params, err := ParseServiceParams(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	if params.Since != LatestIOV || params.Refresh {
		t.Fatalf("wrong defaults: %+v", params)
	}
	params, err = ParseServiceParams(url.Values{"since": {"42"}, "refresh": {"true"}})
	if err != nil {
		t.Fatal(err)
	}
	if params.Since != 42 || !params.Refresh {
		t.Fatalf("wrong parsed params: %+v", params)
	}
	if _, err := ParseServiceParams(url.Values{"since": {"nope"}}); err == nil {
		t.Fatal("expected an error")
	}
}
