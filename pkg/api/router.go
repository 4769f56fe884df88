package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marqueehq/marquee/pkg/estimate"
	"github.com/marqueehq/marquee/pkg/forecast"
	"github.com/marqueehq/marquee/pkg/lifecycle"
	"github.com/marqueehq/marquee/pkg/metrics"
	"github.com/marqueehq/marquee/pkg/pricing"
	"github.com/marqueehq/marquee/pkg/remote"
	"github.com/marqueehq/marquee/pkg/smoothing"
	"github.com/marqueehq/marquee/pkg/types"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MoveRequest is the body of POST /bookings/:id/move.
type MoveRequest struct {
	Target string `json:"target" binding:"required"`
}

// UpdateFieldRequest is the body of PATCH /bookings/:id.
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// PricingResponse carries the demand-derived price multiplier.
type PricingResponse struct {
	Period     string  `json:"period"`
	Multiplier float64 `json:"multiplier"`
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware(), loggingMiddleware(s.logger), metricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/bookings", s.handleListBookings)
	r.POST("/bookings/:id/move", s.handleMoveBooking)
	r.PATCH("/bookings/:id", s.handleUpdateBooking)
	r.DELETE("/bookings/:id", s.handleCancelBooking)

	r.GET("/forecast", s.handleForecast)
	r.GET("/pricing", s.handlePricing)

	est := r.Group("/estimates")
	{
		est.GET("/resources", s.handleResources)
		est.GET("/inventory", s.handleInventory)
		est.GET("/supplies", s.handleSupplies)
	}

	return r
}

// handleListBookings returns one bucket when ?bucket= names it, or
// the whole three-bucket state otherwise.
func (s *Server) handleListBookings(c *gin.Context) {
	buckets := s.manager.Buckets()

	if name := c.Query("bucket"); name != "" {
		status := types.LifecycleStatus(name)
		if !types.ValidStatus(status) {
			badRequest(c, "unknown bucket: "+name)
			return
		}
		c.JSON(http.StatusOK, buckets.Bucket(status))
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (s *Server) handleMoveBooking(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if err := s.manager.Move(id, types.LifecycleStatus(req.Target)); err != nil {
		respondErr(c, err)
		return
	}
	s.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Target})
}

func (s *Server) handleUpdateBooking(c *gin.Context) {
	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id := c.Param("id")
	if err := s.manager.UpdateField(c.Request.Context(), id, req.Field, req.Value); err != nil {
		respondErr(c, err)
		return
	}
	s.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"id": id, "field": req.Field})
}

func (s *Server) handleCancelBooking(c *gin.Context) {
	id := c.Param("id")
	if err := s.manager.Cancel(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	s.cache.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (s *Server) handleForecast(c *gin.Context) {
	period := forecast.Period(c.DefaultQuery("period", string(forecast.PeriodMonth)))
	if !forecast.ValidPeriod(period) {
		badRequest(c, "unknown period: "+string(period))
		return
	}
	opts, ok := s.forecastOptions(c)
	if !ok {
		return
	}

	key := forecast.Key(period, opts)
	if points, hit := s.cache.Get(c.Request.Context(), key); hit {
		c.JSON(http.StatusOK, points)
		return
	}

	points, err := forecast.Series(s.manager.AllBookings(), period, opts)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	s.cache.Set(c.Request.Context(), key, points)
	c.JSON(http.StatusOK, points)
}

func (s *Server) handlePricing(c *gin.Context) {
	period := forecast.Period(c.DefaultQuery("period", string(forecast.PeriodMonth)))
	if !forecast.ValidPeriod(period) {
		badRequest(c, "unknown period: "+string(period))
		return
	}
	opts, ok := s.forecastOptions(c)
	if !ok {
		return
	}

	points, err := forecast.Series(s.manager.AllBookings(), period, opts)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	mult, err := pricing.Multiplier(forecast.Demand(points))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, PricingResponse{Period: string(period), Multiplier: mult})
}

// handleResources returns the estimate for one booking when ?id= is
// given, or per-event-type aggregates over every booking otherwise.
func (s *Server) handleResources(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		b, ok := s.findBooking(c, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, estimate.Resources(b))
		return
	}
	resources, _ := estimate.AggregateByEventType(s.manager.AllBookings())
	c.JSON(http.StatusOK, resources)
}

func (s *Server) handleInventory(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		b, ok := s.findBooking(c, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, estimate.Inventory(b))
		return
	}
	_, inventory := estimate.AggregateByEventType(s.manager.AllBookings())
	c.JSON(http.StatusOK, inventory)
}

func (s *Server) handleSupplies(c *gin.Context) {
	c.JSON(http.StatusOK, estimate.Supplies(s.manager.AllBookings()))
}

// forecastOptions builds the smoothing options for a request,
// starting from the server defaults and applying query overrides.
func (s *Server) forecastOptions(c *gin.Context) (forecast.Options, bool) {
	opts := s.defaults

	if m := c.Query("method"); m != "" {
		opts.Method = smoothing.Method(m)
	}
	if w := c.Query("window"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			badRequest(c, "invalid window: "+w)
			return opts, false
		}
		opts.Window = n
	}
	if a := c.Query("alpha"); a != "" {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil || f <= 0 || f > 1 {
			badRequest(c, "invalid alpha: "+a)
			return opts, false
		}
		opts.Alpha = f
	}
	return opts, true
}

func (s *Server) findBooking(c *gin.Context, id string) (*types.Booking, bool) {
	for _, b := range s.manager.AllBookings() {
		if b.ID == id {
			return b, true
		}
	}
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found: " + id})
	return nil, false
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrBookingNotFound),
		errors.Is(err, remote.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, lifecycle.ErrInvalidBucket),
		errors.Is(err, lifecycle.ErrFieldNotEditable),
		errors.Is(err, pricing.ErrEmptySeries):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, remote.ErrStoreUnavailable):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
