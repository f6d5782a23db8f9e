package charting

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/go-echarts/go-echarts/charts"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"

	"github.com/trackerdqm/pixelineff/backend/storage"
	"github.com/trackerdqm/pixelineff/config"
	"github.com/trackerdqm/pixelineff/detid"
	"github.com/trackerdqm/pixelineff/ineff"
	"github.com/trackerdqm/pixelineff/utils"
)

type Service struct {
	db       *bbolt.DB
	address  string
	resolver *ineff.Resolver

	mtx      sync.RWMutex
	modules  []detid.DetId
	legacy   []detid.DetId
	watchers []*fsnotify.Watcher
}

func NewService(db *bbolt.DB, cfg *config.Config) (*Service, error) {
	cs := &Service{db: db, address: cfg.ServerAddress, resolver: ineff.NewResolver()}
	if err := cs.loadDetInfo(cfg); err != nil {
		return nil, err
	}
	return cs, nil
}

func (cs *Service) loadDetInfo(cfg *config.Config) error {
	modulesFile := cfg.DetInfoFile(detid.Phase1.String())
	if modulesFile == "" {
		return fmt.Errorf("no %s det info file configured", detid.Phase1)
	}
	if err := cs.reloadModules(modulesFile); err != nil {
		return err
	}
	if watcher, err := utils.NewFileWatcher(modulesFile, func() {
		if reloadErr := cs.reloadModules(modulesFile); reloadErr != nil {
			log.WithError(reloadErr).Error("Error reloading module list")
		}
	}); err != nil {
		return err
	} else {
		cs.watchers = append(cs.watchers, watcher)
	}
	legacyFile := cfg.DetInfoFile(detid.Phase0.String())
	if legacyFile == "" {
		log.Warn("No legacy det info file configured; phase0 detection disabled")
		return nil
	}
	if err := cs.reloadLegacy(legacyFile); err != nil {
		return err
	}
	if watcher, err := utils.NewFileWatcher(legacyFile, func() {
		if reloadErr := cs.reloadLegacy(legacyFile); reloadErr != nil {
			log.WithError(reloadErr).Error("Error reloading legacy list")
		}
	}); err != nil {
		return err
	} else {
		cs.watchers = append(cs.watchers, watcher)
	}
	return nil
}

func (cs *Service) reloadModules(filePath string) error {
	ids, err := detid.ReadDetInfo(filePath)
	if err != nil {
		return err
	}
	cs.mtx.Lock()
	cs.modules = ids
	cs.mtx.Unlock()
	log.WithFields(log.Fields{
		"file":    filePath,
		"modules": humanize.Comma(int64(len(ids))),
	}).Println("Loaded module list")
	return nil
}

func (cs *Service) reloadLegacy(filePath string) error {
	ids, err := detid.ReadDetInfo(filePath)
	if err != nil {
		return err
	}
	cs.mtx.Lock()
	cs.legacy = ids
	cs.mtx.Unlock()
	log.WithFields(log.Fields{
		"file":    filePath,
		"modules": humanize.Comma(int64(len(ids))),
	}).Println("Loaded legacy module list")
	return nil
}

func (cs *Service) Modules() []detid.DetId {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return cs.modules
}

func (cs *Service) Legacy() []detid.DetId {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return cs.legacy
}

func (cs *Service) Start() error {
	router := httprouter.New()
	router.GET("/tags", cs.GetTags)
	router.GET("/factors/:tag/:kind", cs.GetFactorMap)
	router.GET("/pufactors/:tag", cs.GetPUFactorMaps)
	router.GET("/rocs/:tag", cs.GetBadRocs)
	return http.ListenAndServe(cs.address, router)
}

func (cs *Service) Stop() {
	for _, watcher := range cs.watchers {
		_ = watcher.Close()
	}
}

func (cs *Service) fetchPayload(
	w http.ResponseWriter,
	tag string,
	params *ServiceParams,
) (*ineff.Payload, uint64) {
	payload, since, err := storage.ReadLastPayload(cs.db, tag, params.Since)
	if err != nil {
		log.WithFields(log.Fields{
			"tag":   tag,
			"since": params.Since,
			"error": err,
		}).Error("Error fetching payload")
		w.WriteHeader(404)
		return nil, 0
	}
	return payload, since
}

// renderNotSupported stands in for a chart when the payload was not
// written for the phase1 geometry, instead of failing the request.
func (cs *Service) renderNotSupported(w http.ResponseWriter, tag string, reason string) {
	log.WithFields(log.Fields{
		"tag":    tag,
		"reason": reason,
	}).Error("Maps are not supported for non-phase1 pixel geometries")
	placeholder := charts.NewBar()
	placeholder.SetGlobalOptions(
		charts.InitOpts{Width: "1200px", Height: "600px"},
		charts.TitleOpts{
			Title:    "Not supported",
			Subtitle: fmt.Sprintf("%s: %s", tag, reason),
		},
	)
	if err := placeholder.Render(w); err != nil {
		log.WithError(err).Error("Error rendering placeholder")
	}
}

func (cs *Service) checkPhase1(w http.ResponseWriter, tag string, payload *ineff.Payload) bool {
	supported, err := detid.CheckPhase(detid.Phase1, payload.DetIdMasks)
	if err != nil {
		log.WithError(err).Error("Error checking payload phase")
		w.WriteHeader(500)
		return false
	}
	if !supported {
		cs.renderNotSupported(w, tag, "mask set does not match the phase1 hierarchy")
		return false
	}
	return true
}

func (cs *Service) BuildFactorChart(title, width string, chartData *Data, refresh bool) *charts.Bar {
	bar := charts.NewBar()
	min, max := chartData.AxisRange()
	bar.SetGlobalOptions(
		charts.InitOpts{Width: width, Height: "700px"},
		charts.TitleOpts{Title: title},
		charts.ToolboxOpts{Show: true},
		charts.VisualMapOpts{Calculable: true, Min: float32(min), Max: float32(max)},
	)
	bar.AddXAxis(chartData.X).AddYAxis(title, chartData.Y)
	if refresh {
		bar.AddJSFuncs("setTimeout(function(){location.reload();}, 60000);")
	}
	return bar
}

func (cs *Service) GetTags(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	tags, err := storage.GetTags(cs.db)
	if err != nil {
		log.WithError(err).Error("Error listing tags")
		w.WriteHeader(500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tags); err != nil {
		log.WithError(err).Error("Error encoding tags")
	}
}

func (cs *Service) GetFactorMap(
	w http.ResponseWriter,
	request *http.Request,
	params httprouter.Params,
) {
	startTime := time.Now()
	tag := params.ByName("tag")
	kind, err := ineff.ParseFactorKind(params.ByName("kind"))
	if err != nil || kind == ineff.PU {
		w.WriteHeader(404)
		return
	}
	serviceParams, err := ParseServiceParams(request.URL.Query())
	if err != nil {
		w.WriteHeader(404)
		return
	}
	payload, since := cs.fetchPayload(w, tag, serviceParams)
	if payload == nil {
		return
	}
	if !cs.checkPhase1(w, tag, payload) {
		return
	}
	factors, err := payload.Factors(kind)
	if err != nil {
		w.WriteHeader(404)
		return
	}
	payloadHash := payload.Hash()
	chartData := NewData()
	for _, module := range cs.Modules() {
		factor := cs.resolver.GeomFactor(payloadHash, kind, module, factors, payload.DetIdMasks)
		chartData.Append(strconv.FormatUint(uint64(module), 10), factor)
	}
	title := fmt.Sprintf("%s dynamic inefficiency, %s, IOV %d", kind, tag, since)
	bar := cs.BuildFactorChart(title, "1600px", chartData, serviceParams.Refresh)
	if err := bar.Render(w); err != nil {
		log.WithError(err).Error("Error rendering chart")
	}
	log.WithFields(log.Fields{
		"elapsedTime": time.Since(startTime),
		"modules":     humanize.Comma(int64(len(chartData.X))),
		"path":        request.URL,
		"tag":         tag,
		"iov":         since,
	}).Println("Factor map request")
}

func (cs *Service) GetPUFactorMaps(
	w http.ResponseWriter,
	request *http.Request,
	params httprouter.Params,
) {
	startTime := time.Now()
	tag := params.ByName("tag")
	serviceParams, err := ParseServiceParams(request.URL.Query())
	if err != nil {
		w.WriteHeader(404)
		return
	}
	payload, since := cs.fetchPayload(w, tag, serviceParams)
	if payload == nil {
		return
	}
	if !cs.checkPhase1(w, tag, payload) {
		return
	}
	depth := ineff.MaxPUDepth(payload.PUFactors)
	rows, cols, err := ineff.ClosestFactors(depth)
	if err != nil {
		w.WriteHeader(500)
		return
	}
	if cols == 0 {
		cols = 1
	}
	dataSets := make([]*Data, depth)
	for slot := range dataSets {
		dataSets[slot] = NewData()
	}
	for _, module := range cs.Modules() {
		values := ineff.MatchingPUFactors(module, payload.PUFactors, payload.DetIdMasks)
		moduleLabel := strconv.FormatUint(uint64(module), 10)
		for slot, value := range values {
			dataSets[slot].Append(moduleLabel, value)
		}
	}
	// rows*cols may exceed depth by one; the spare cell stays blank.
	page := charts.NewPage()
	chartWidth := fmt.Sprintf("%d%%", 100/cols)
	for slot, chartData := range dataSets {
		title := fmt.Sprintf("%s dynamic inefficiency, factor %d, %s, IOV %d", ineff.PU, slot, tag, since)
		page.Add(cs.BuildFactorChart(title, chartWidth, chartData, false))
	}
	if err := page.Render(w); err != nil {
		log.WithError(err).Error("Error rendering PU charts")
	}
	log.WithFields(log.Fields{
		"elapsedTime": time.Since(startTime),
		"depth":       depth,
		"rows":        rows,
		"cols":        cols,
		"path":        request.URL,
		"tag":         tag,
		"iov":         since,
	}).Println("PU factor maps request")
}

func (cs *Service) GetBadRocs(
	w http.ResponseWriter,
	request *http.Request,
	params httprouter.Params,
) {
	startTime := time.Now()
	tag := params.ByName("tag")
	serviceParams, err := ParseServiceParams(request.URL.Query())
	if err != nil {
		w.WriteHeader(404)
		return
	}
	payload, since := cs.fetchPayload(w, tag, serviceParams)
	if payload == nil {
		return
	}
	fractions := ineff.BadRocFractions(payload.PixelGeomFactors)
	if ineff.IsPhase0(fractions, cs.Legacy()) {
		cs.renderNotSupported(w, tag, "payload addresses legacy geometry modules")
		return
	}
	chartData := NewData()
	for _, module := range sortedFractionIds(fractions) {
		packed := fractions[module]
		var meanPercent float64
		if len(packed.Fractions) > 0 {
			var total float64
			for _, fraction := range packed.Fractions {
				total += fraction
			}
			meanPercent = total / float64(len(packed.Fractions)) * 100
		}
		chartData.Append(strconv.FormatUint(uint64(module), 10), meanPercent)
	}
	title := fmt.Sprintf("bad pixel fraction in ROC [%%], %s, IOV %d", tag, since)
	bar := cs.BuildFactorChart(title, "1600px", chartData, serviceParams.Refresh)
	if err := bar.Render(w); err != nil {
		log.WithError(err).Error("Error rendering ROC chart")
	}
	log.WithFields(log.Fields{
		"elapsedTime": time.Since(startTime),
		"modules":     humanize.Comma(int64(len(chartData.X))),
		"path":        request.URL,
		"tag":         tag,
		"iov":         since,
	}).Println("Bad ROC request")
}

func sortedFractionIds(fractions map[detid.DetId]*ineff.RocFractions) []detid.DetId {
	var ids = make([]detid.DetId, 0, len(fractions))
	for id := range fractions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
