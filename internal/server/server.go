// Package server exposes the coursework engine over HTTP: the raw dataset,
// rendered diagrams, the detail panel fragment, and export surfaces.
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"coursemap/internal/config"
	"coursemap/internal/course"
	"coursemap/internal/detail"
	"coursemap/internal/layout"
	"coursemap/internal/logger"
	"coursemap/internal/render"
	"coursemap/internal/view"
)

// FailedLoadText is the terminal error state shown in the mount point when
// the dataset cannot be loaded. No retry: the user reloads the page.
const FailedLoadText = "failed to load coursework data"

const (
	defaultW = 960
	defaultH = 600
	minSide  = 200
	maxSide  = 4000
)

type Server struct {
	cfg     config.Config
	log     *logger.Logger
	model   *course.Model
	loadErr error
	machine *view.Machine
}

// New loads the dataset and builds the server. A load failure is recorded,
// not fatal: the server still runs and every coursework route degrades to
// the failure text.
func New(cfg config.Config, log *logger.Logger) *Server {
	model, err := course.LoadFile(cfg.DataPath)
	if err != nil {
		log.Error("load coursework dataset", "path", cfg.DataPath, "err", err)
	}
	return FromModel(cfg, log, model, err)
}

// FromModel wires a server around an already built (or failed) model.
func FromModel(cfg config.Config, log *logger.Logger, model *course.Model, loadErr error) *Server {
	s := &Server{cfg: cfg, log: log, model: model, loadErr: loadErr}
	if model != nil {
		s.machine = view.NewMachine(model, cfg.ResizeThreshold)
		if n := len(model.Dangling()); n > 0 {
			log.Debug("dangling prerequisite edges excluded", "count", n)
		}
	}
	return s
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Mode == "prod" || s.cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	r.GET("/healthz", s.handleHealth)
	cw := r.Group("/coursework")
	{
		cw.GET("", s.handleIndex)
		cw.GET("/data", s.handleData)
		cw.GET("/view.svg", s.handleViewSVG)
		cw.GET("/view.png", s.handleViewPNG)
		cw.GET("/detail", s.handleDetail)
		cw.GET("/report.pdf", s.handleReport)
		cw.GET("/summary.svg", s.handleSummary)
	}
	return r
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.log.Info("starting server", "addr", s.cfg.Addr)
	return s.Router().Run(s.cfg.Addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleData(c *gin.Context) {
	if s.model == nil {
		c.String(http.StatusServiceUnavailable, FailedLoadText)
		return
	}
	c.JSON(http.StatusOK, s.model.Raw)
}

// viewState builds interaction state from the query the way a user would
// reach it: legend click first, then tile activation. Applying in that
// order keeps direct selection of an out-of-focus leaf possible, while the
// machine's invariant still clears hidden selections on focus changes.
func (s *Server) viewState(c *gin.Context) view.State {
	st := view.State{}
	if focus := c.Query("focus"); focus != "" {
		st, _ = s.machine.Apply(st, view.LegendClick{Subject: focus})
	}
	if sel := c.Query("select"); sel != "" {
		st, _ = s.machine.Apply(st, view.TileActivate{ID: sel})
	}
	return st
}

func (s *Server) diagram(c *gin.Context) (*layout.Diagram, view.State, bool) {
	if s.model == nil {
		c.String(http.StatusServiceUnavailable, FailedLoadText)
		return nil, view.State{}, false
	}
	st := s.viewState(c)
	variant := layout.Variant(c.DefaultQuery("variant", s.cfg.Layout.Variant))
	eng, err := layout.New(variant, layout.Options{
		TileTarget: s.cfg.Layout.TileTarget,
		TileMin:    s.cfg.Layout.TileMin,
		TileMax:    s.cfg.Layout.TileMax,
	})
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return nil, st, false
	}
	b := layout.Bounds{
		W: queryFloat(c, "w", defaultW),
		H: queryFloat(c, "h", defaultH),
	}
	d, err := eng.Compute(s.model, b, st.FocusedSubject)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return nil, st, false
	}
	return d, st, true
}

func (s *Server) theme(c *gin.Context) render.Theme {
	if q := c.Query("theme"); q != "" {
		return render.ParseTheme(q)
	}
	if ck, err := c.Cookie("theme"); err == nil {
		return render.ParseTheme(ck)
	}
	return render.ParseTheme(s.cfg.Theme)
}

func (s *Server) handleViewSVG(c *gin.Context) {
	d, st, ok := s.diagram(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := render.SVG(c.Writer, d, st, s.theme(c)); err != nil {
		s.log.Error("render svg", "err", err)
	}
}

func (s *Server) handleViewPNG(c *gin.Context) {
	d, st, ok := s.diagram(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := render.PNG(c.Writer, d, st, s.theme(c)); err != nil {
		s.log.Error("render png", "err", err)
	}
}

func (s *Server) handleDetail(c *gin.Context) {
	if s.model == nil {
		c.String(http.StatusServiceUnavailable, FailedLoadText)
		return
	}
	st := s.viewState(c)
	html, err := detail.Project(s.model, st.SelectedID).HTML()
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleReport(c *gin.Context) {
	if s.model == nil {
		c.String(http.StatusServiceUnavailable, FailedLoadText)
		return
	}
	st := s.viewState(c)
	eng, _ := layout.New(layout.Treemap, layout.Options{
		TileTarget: s.cfg.Layout.TileTarget,
		TileMin:    s.cfg.Layout.TileMin,
		TileMax:    s.cfg.Layout.TileMax,
	})
	d, err := eng.Compute(s.model, layout.Bounds{W: defaultW, H: defaultH}, st.FocusedSubject)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if err := render.PDF(c.Writer, d, s.model, st, s.theme(c)); err != nil {
		s.log.Error("render pdf", "err", err)
	}
}

func (s *Server) handleSummary(c *gin.Context) {
	if s.model == nil {
		c.String(http.StatusServiceUnavailable, FailedLoadText)
		return
	}
	c.Header("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := render.SummaryChart(c.Writer, s.model, "svg"); err != nil {
		s.log.Error("render summary chart", "err", err)
	}
}

func queryFloat(c *gin.Context, key string, def float64) float64 {
	v := c.Query(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < minSide || f > maxSide {
		return def
	}
	return f
}
