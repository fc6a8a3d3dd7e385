// Package http exposes the ephemeris over a JSON API.
package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/ephem-api/internal/usecase"
)

// DefaultStreamInterval is used when the router is configured without one.
const DefaultStreamInterval = time.Second

// Handler handles HTTP requests for the ephemeris API.
type Handler struct {
	uc             *usecase.EphemerisUseCase
	streamInterval time.Duration
}

// NewHandler creates a new HTTP handler.
func NewHandler(uc *usecase.EphemerisUseCase, streamInterval time.Duration) *Handler {
	if streamInterval <= 0 {
		streamInterval = DefaultStreamInterval
	}
	return &Handler{
		uc:             uc,
		streamInterval: streamInterval,
	}
}

// writeError maps use case errors to 400 (bad input) or 500.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if usecase.IsBadInput(err) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseTime parses an RFC3339 query parameter, defaulting to now.
func parseTime(c *gin.Context, name string) (time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s (expected RFC3339): %w", name, err)
	}
	return t.UTC(), nil
}

// parseBool parses a boolean query parameter with a default.
func parseBool(c *gin.Context, name string, def bool) (bool, error) {
	s := c.Query(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}

// splitList splits a comma separated query parameter.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

// positionsRequest builds a positions request from the query string.
func positionsRequest(c *gin.Context) (usecase.PositionsRequest, error) {
	t, err := parseTime(c, "time")
	if err != nil {
		return usecase.PositionsRequest{}, err
	}
	apparent, err := parseBool(c, "apparent", true)
	if err != nil {
		return usecase.PositionsRequest{}, err
	}
	trueNode, err := parseBool(c, "true_node", true)
	if err != nil {
		return usecase.PositionsRequest{}, err
	}
	return usecase.PositionsRequest{
		Time:     t,
		Apparent: apparent,
		TrueNode: trueNode,
		Bodies:   splitList(c.Query("bodies")),
	}, nil
}

// GetPositions handles GET /v1/positions.
func (h *Handler) GetPositions(c *gin.Context) {
	req, err := positionsRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Execute use case.
	response, err := h.uc.Positions(req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetChart handles GET /v1/chart.
func (h *Handler) GetChart(c *gin.Context) {
	t, err := parseTime(c, "time")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := usecase.ChartRequest{
		Name:   c.Query("name"),
		Time:   t,
		Place:  c.Query("place"),
		Houses: c.Query("houses"),
		Orbs:   c.Query("orbs"),
	}

	// Parse lat/lon.
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
			return
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude: %v", err)})
			return
		}
		req.Lat = &lat
		req.Lon = &lon
	}

	// Execute use case.
	response, err := h.uc.Chart(req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetLunation handles GET /v1/lunation.
func (h *Handler) GetLunation(c *gin.Context) {
	date := time.Now().UTC()
	if s := c.Query("date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date (expected YYYY-MM-DD): %v", err)})
			return
		}
		date = d
	}

	response, err := h.uc.Lunation(usecase.LunationRequest{
		Year:  date.Year(),
		Month: int(date.Month()),
		Day:   float64(date.Day()),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetSeries handles GET /v1/series.
func (h *Handler) GetSeries(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	stepStr := c.Query("step")

	// Parse time range.
	if startStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start parameter is required"})
		return
	}
	if endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end parameter is required"})
		return
	}
	start, err := parseTime(c, "start")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseTime(c, "end")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Parse step (default: 24h).
	if stepStr == "" {
		stepStr = "24h"
	}
	step, err := time.ParseDuration(stepStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid step: %v", err)})
		return
	}

	apparent, err := parseBool(c, "apparent", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.uc.Series(c.Request.Context(), usecase.BatchRequest{
		Start:    start,
		End:      end,
		Step:     step,
		Bodies:   splitList(c.Query("bodies")),
		Apparent: apparent,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetBodies handles GET /v1/bodies.
func (h *Handler) GetBodies(c *gin.Context) {
	bodies := h.uc.Bodies()
	c.JSON(http.StatusOK, gin.H{
		"bodies": bodies,
		"count":  len(bodies),
	})
}

// GetPlaces handles GET /v1/places.
func (h *Handler) GetPlaces(c *gin.Context) {
	places, err := h.uc.Places()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"places": places,
		"count":  len(places),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
