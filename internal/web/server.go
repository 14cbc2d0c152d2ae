// Package web serves the browser dashboard: an embedded page, the current
// state as JSON and a websocket stream of state updates.
package web

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tonhe/snmpdash/internal/engine"
)

const (
	stateRoute  = "/api/state"
	wsRoute     = "/api/ws"
	reportRoute = "/api/report"
	healthRoute = "/healthz"

	reportTimeout = 2 * time.Minute
)

// Source is the refresh loop as seen by the web server.
type Source interface {
	State() engine.State
	Subscribe() <-chan engine.Event
}

// ReportDownloader streams the PDF report from the backend.
type ReportDownloader interface {
	DownloadReport(ctx context.Context, w io.Writer) (int64, error)
}

// Server wires the gin routes to a Source.
type Server struct {
	source Source
	report ReportDownloader
	events <-chan engine.Event
	hub    *hub
}

// NewServer subscribes to src. Call Run to start pushing updates.
func NewServer(src Source, report ReportDownloader) *Server {
	return &Server{
		source: src,
		report: report,
		events: src.Subscribe(),
		hub:    newHub(),
	}
}

// Run forwards every poller event to websocket clients until ctx is done,
// then disconnects them.
func (s *Server) Run(ctx context.Context) {
	defer s.hub.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			s.hub.broadcast(NewStateView(ev.State))
		}
	}
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET(healthRoute, s.handleHealth)
	r.GET(stateRoute, s.handleState)
	r.GET(wsRoute, s.handleWS)
	r.GET(reportRoute, s.handleReport)
	RegisterStaticFiles(r)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.source.State()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"online":  st.Online(),
		"cycle":   st.Cycle,
		"clients": s.hub.count(),
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, NewStateView(s.source.State()))
}

func (s *Server) handleWS(c *gin.Context) {
	s.hub.serve(c.Writer, c.Request, NewStateView(s.source.State()))
}

// handleReport buffers the PDF so a backend failure can still be reported
// with a proper status code.
func (s *Server) handleReport(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), reportTimeout)
	defer cancel()

	var buf bytes.Buffer
	if _, err := s.report.DownloadReport(ctx, &buf); err != nil {
		log.Printf("report proxy: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+engine.ReportFileName+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
