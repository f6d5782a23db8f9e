package main

import (
	"flag"
	"io/ioutil"
	"os"
	"runtime/pprof"
	"runtime/trace"

	log "github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"
	"gopkg.in/yaml.v2"

	"github.com/trackerdqm/pixelineff/backend/charting"
	"github.com/trackerdqm/pixelineff/backend/storage"
	"github.com/trackerdqm/pixelineff/config"
	"github.com/trackerdqm/pixelineff/ineff"
	"github.com/trackerdqm/pixelineff/logging"
	"github.com/trackerdqm/pixelineff/utils"
)

var cpuProfile bool
var tracing bool
var importPath string
var importTag string
var importSince uint64

func init() {
	flag.BoolVar(&cpuProfile, "cpu-profile", cpuProfile, "enable cpu profiling")
	flag.BoolVar(&tracing, "trace", tracing, "enable tracing")
	flag.StringVar(&importPath, "import", "", "import a yaml payload file and exit")
	flag.StringVar(&importTag, "import-tag", "", "tag for imported payload")
	flag.Uint64Var(&importSince, "import-since", 1, "IOV since for imported payload")
}

func runImport(db *bbolt.DB) {
	if importTag == "" {
		log.Fatal("Empty -import-tag")
	}
	data, err := ioutil.ReadFile(importPath)
	if err != nil {
		log.Fatal(err)
	}
	payload := ineff.NewPayload()
	if err := yaml.Unmarshal(data, payload); err != nil {
		log.Fatal(err)
	}
	if err := storage.WritePayload(db, importTag, importSince, payload); err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"tag":   importTag,
		"since": importSince,
		"hash":  payload.Hash(),
	}).Println("Imported payload")
}

func main() {
	flag.Parse()
	logging.SetupLogger()
	if cpuProfile {
		f, err := os.Create("pixelineff.prof")
		if err != nil {
			panic(err)
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}
	if tracing {
		f, err := os.Create("pixelineff.trace")
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	var db *bbolt.DB
	if cfg.StorePath != "" {
		db, err = storage.OpenDB(cfg.StorePath)
	} else {
		db, err = storage.GetDB()
	}
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal("Failed to open payload store")
	}
	defer func() {
		_ = db.Close()
	}()
	if importPath != "" {
		runImport(db)
		return
	}
	if cfg.ServerAddress == "" {
		log.Fatal("Empty server address in config")
	}
	cs, err := charting.NewService(db, cfg)
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal("Failed to create chart service")
	}
	go func() {
		if err := cs.Start(); err != nil {
			log.WithFields(log.Fields{"error": err}).Fatal("Failed to start HTTP server")
		}
	}()
	log.Println("Inspector started")
	utils.Wait()
	cs.Stop()
}
