package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ManuelJua/jobs-scraper/internal/model"
)

// Handler exposes the dashboard endpoints. All routes are read-only; the
// pipeline binaries are the only writers.
type Handler struct {
	store Store
	cache *Cache
}

func NewHandler(store Store, cache *Cache) *Handler {
	return &Handler{store: store, cache: cache}
}

// Register mounts the routes on a gin engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/jobs", h.SearchJobs)
	r.GET("/api/jobs/map", h.MapJobs)
	r.GET("/api/stats", h.Stats)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "jobs-scraper",
	})
}

// SearchJobs handles GET /api/jobs?keyword=&min_salary=.
func (h *Handler) SearchJobs(c *gin.Context) {
	keyword := c.Query("keyword")

	var minSalary int64
	if s := c.Query("min_salary"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_salary must be a non-negative integer"})
			return
		}
		minSalary = v
	}

	cacheKey := fmt.Sprintf("jobs:%s:%d", keyword, minSalary)
	if payload, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json", []byte(payload))
		return
	}

	listings, err := h.store.SearchJobs(c.Request.Context(), keyword, minSalary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}

	h.respondCached(c, cacheKey, listings)
}

// MapJobs handles GET /api/jobs/map — listings whose location resolved to
// coordinates.
func (h *Handler) MapJobs(c *gin.Context) {
	const cacheKey = "map"
	if payload, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json", []byte(payload))
		return
	}

	jobs, err := h.store.LocatedJobs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if jobs == nil {
		jobs = []model.LocatedJob{}
	}

	h.respondCached(c, cacheKey, jobs)
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(c *gin.Context) {
	st, err := h.store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// respondCached writes the JSON response and stores it under cacheKey.
func (h *Handler) respondCached(c *gin.Context, cacheKey string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	h.cache.Set(c.Request.Context(), cacheKey, string(body))
	c.Data(http.StatusOK, "application/json", body)
}
