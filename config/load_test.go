package config

import "testing"

var testConfig = `
server: ":8080"
store: /tmp/payloads.db
detInfo:
  - phase: phase0
    file: /data/detinfo/phase0.dat
  - phase: phase1
    file: /data/detinfo/phase1.dat
`

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if config.ServerAddress != ":8080" {
		t.Fatalf("wrong server address: %s", config.ServerAddress)
	}
	if config.StorePath != "/tmp/payloads.db" {
		t.Fatalf("wrong store path: %s", config.StorePath)
	}
	if config.DetInfoFile("phase1") != "/data/detinfo/phase1.dat" {
		t.Fatalf("wrong phase1 file: %s", config.DetInfoFile("phase1"))
	}
	if config.DetInfoFile("phase2") != "" {
		t.Fatal("unexpected phase2 file")
	}
}
