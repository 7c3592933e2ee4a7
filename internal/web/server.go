package web

import (
	"context"
	"embed"
	"math"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/device"
	sessiondto "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
)

//go:embed static/monitor.html static/history.html
var pages embed.FS

const (
	// weightUpdateThreshold matches the display's 1g buffer: the status
	// payload is rebuilt only for weight moves at least this large.
	weightUpdateThreshold = 1.0
	forceUpdateMillis     = 5000
)

// SnapshotSource is the device loop's presentation view.
type SnapshotSource interface {
	Snapshot(ctx context.Context) device.Snapshot
}

// HistorySource lists the recorded days of the current session.
type HistorySource interface {
	History(ctx context.Context) ([]sessiondto.RecordOutput, error)
}

type statusPayload struct {
	Active        bool    `json:"active"`
	InitialWeight float64 `json:"initialWeight"`
	CurrentWeight float64 `json:"currentWeight"`
	TargetLoss    float64 `json:"targetLoss"`
	CurrentLoss   float64 `json:"currentLoss"`
	CurrentDay    int     `json:"currentDay"`
	RecordCount   int     `json:"recordCount"`
	DaysRemaining int     `json:"daysRemaining"`
	IsReady       bool    `json:"isReady"`
}

type historyRecord struct {
	Day    int     `json:"day"`
	Weight float64 `json:"weight"`
	Loss   float64 `json:"loss"`
	Change float64 `json:"change"`
}

type historyPayload struct {
	Active  bool            `json:"active"`
	Records []historyRecord `json:"records"`
}

// Server is the read-only web monitor. It never mutates the session; it
// polls the device loop's snapshot like any other presentation surface.
type Server struct {
	addr    string
	source  SnapshotSource
	history HistorySource
	log     hclog.Logger
	now     func() uint32

	mu             sync.Mutex
	cached         statusPayload
	hasCache       bool
	lastSentWeight float64
	lastUpdate     uint32
	lastActive     bool
}

func NewServer(addr string, source SnapshotSource, history HistorySource, now func() uint32, log hclog.Logger) *Server {
	return &Server{
		addr:    addr,
		source:  source,
		history: history,
		log:     log.Named("web"),
		now:     now,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", s.handleMonitorPage)
	router.GET("/history", s.handleHistoryPage)
	router.GET("/status/data", s.handleStatusData)
	router.GET("/history/data", s.handleHistoryData)
	return router
}

// Run serves until the context is done.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{Addr: s.addr, Handler: s.Router()}
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()
	s.log.Info("web monitor listening", "addr", s.addr)
	select {
	case <-ctx.Done():
		return server.Close()
	case err := <-errs:
		return err
	}
}

func (s *Server) handleMonitorPage(c *gin.Context) {
	s.servePage(c, "static/monitor.html")
}

func (s *Server) handleHistoryPage(c *gin.Context) {
	s.servePage(c, "static/history.html")
}

func (s *Server) servePage(c *gin.Context, name string) {
	page, err := pages.ReadFile(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "page not available"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// handleStatusData serves a cached payload: it is rebuilt when the active
// state flips, the weight moved at least 1g, or 5s passed since the last
// rebuild. Browser polling is faster than the scale changes.
func (s *Server) handleStatusData(c *gin.Context) {
	snap := s.source.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, s.statusFor(snap))
}

func (s *Server) statusFor(snap device.Snapshot) statusPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	active := snap.Status.Active
	weight := snap.Reading.RawGrams

	needsUpdate := !s.hasCache || now-s.lastUpdate >= forceUpdateMillis
	if active != s.lastActive {
		needsUpdate = true
		s.lastActive = active
	}
	if active && !math.IsNaN(weight) && math.Abs(weight-s.lastSentWeight) >= weightUpdateThreshold {
		needsUpdate = true
	}
	if !needsUpdate {
		return s.cached
	}

	payload := statusPayload{Active: active}
	if active {
		// A NaN reading is no observation: fall back to the last weight
		// the payload carried.
		if math.IsNaN(weight) {
			weight = s.lastSentWeight
		}
		loss := 0.0
		if snap.Status.InitialWeight > 0 {
			loss = (snap.Status.InitialWeight - weight) / snap.Status.InitialWeight * 100
		}
		payload.InitialWeight = snap.Status.InitialWeight
		payload.CurrentWeight = weight
		payload.TargetLoss = snap.Status.TargetLossPercent
		payload.CurrentLoss = loss
		payload.CurrentDay = snap.Status.CurrentDay
		payload.RecordCount = snap.Status.RecordCount
		payload.DaysRemaining = snap.Status.DaysRemaining
		payload.IsReady = snap.Status.Ready
		s.lastSentWeight = weight
	} else {
		s.lastSentWeight = 0
	}

	s.cached = payload
	s.hasCache = true
	s.lastUpdate = now
	return payload
}

func (s *Server) handleHistoryData(c *gin.Context) {
	ctx := c.Request.Context()
	snap := s.source.Snapshot(ctx)
	payload := historyPayload{Active: snap.Status.Active, Records: []historyRecord{}}
	if snap.Status.Active {
		records, err := s.history.History(ctx)
		if err != nil {
			s.log.Error("history read failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "history not available"})
			return
		}
		for _, r := range records {
			payload.Records = append(payload.Records, historyRecord{
				Day:    r.Day,
				Weight: r.Weight,
				Loss:   r.LossPercent,
				Change: r.DayChange,
			})
		}
	}
	c.JSON(http.StatusOK, payload)
}
