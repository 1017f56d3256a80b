package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"strconv"

	"crypto-insight/src/helpers"
	"crypto-insight/src/models"
	"crypto-insight/src/render"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getDashboardPage(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "dashboard", gin.H{
		"Title":        s.Config.Name,
		"MinHours":     s.Config.Dashboard.MinHoursBack,
		"MaxHours":     s.Config.Dashboard.MaxHoursBack,
		"DefaultHours": s.Config.Dashboard.DefaultHoursBack,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSymbols(c *gin.Context) {
	symbols, err := s.Queries.ListSymbols(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbols": symbols})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getDashboard(c *gin.Context) {
	view, err := s.renderForRequest(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No symbols available."})
		return
	}
	c.JSON(http.StatusOK, view)
}

// -----------------------------------------------------------------------------

// postRefresh invalidates all five cache namespaces unconditionally, then
// re-runs the full flow for the requested selection.
func (s *DashboardServer) postRefresh(c *gin.Context) {
	s.Queries.InvalidateAll()

	view, err := s.renderForRequest(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No symbols available."})
		return
	}
	c.JSON(http.StatusOK, view)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	s.countMutex.RLock()
	connections := s.count
	s.countMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   connections,
		"heap_alloc_mb": float64(mem.HeapAlloc) / (1024 * 1024),
		"goroutines":    runtime.NumGoroutine(),
	})
}

// -----------------------------------------------------------------------------
// Render flow
// -----------------------------------------------------------------------------

// renderForRequest normalizes the request's selection and runs one render
// pass. A nil view with nil error means no symbols are available.
func (s *DashboardServer) renderForRequest(c *gin.Context) (*models.MDashboardView, error) {
	requested := models.MSessionState{Symbol: c.Query("symbol")}
	if h := c.Query("hours"); h != "" {
		hours, err := strconv.Atoi(h)
		if err != nil {
			return nil, helpers.NewValidationError("hours must be an integer")
		}
		requested.HoursBack = hours
	}
	return s.renderSelection(c.Request.Context(), requested)
}

// renderSelection is the single request-response render cycle: selection
// determines query arguments, the cached query layer returns data, the
// presentation layer formats it. Queries run sequentially; the first error
// aborts the pass.
func (s *DashboardServer) renderSelection(ctx context.Context, requested models.MSessionState) (*models.MDashboardView, error) {
	symbols, err := s.Queries.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}

	state, ok := NormalizeSession(symbols, requested, s.Config.Dashboard)
	if !ok {
		return nil, nil
	}

	price, err := s.Queries.LatestPrice(ctx, state.Symbol)
	if err != nil {
		return nil, err
	}
	summary, err := s.Queries.Summary24h(ctx, state.Symbol)
	if err != nil {
		return nil, err
	}
	signal, err := s.Queries.LatestSignal(ctx, state.Symbol)
	if err != nil {
		return nil, err
	}
	series, err := s.Queries.SeriesWindow(ctx, state.Symbol, state.HoursBack)
	if err != nil {
		return nil, err
	}

	return render.BuildDashboardView(state, price, summary, signal, series), nil
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var connErr *helpers.ConnectionError
	var valErr *helpers.ValidationError
	switch {
	case errors.As(err, &connErr):
		status = http.StatusBadGateway
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
	}

	s.Logger.Error("Render pass aborted: %v", err)
	c.JSON(status, gin.H{"error": err.Error()})
}
