package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelstack/reelstack/internal/metadata/tmdb"
)

const (
	searchTimeout   = 8 * time.Second
	discoverTimeout = 10 * time.Second
	personTimeout   = 10 * time.Second
	redirectTimeout = 8 * time.Second
)

// Handlers provides HTTP handlers for the metadata operations.
type Handlers struct {
	service      *Service
	personMaxAge int
}

// NewHandlers creates new metadata handlers. personMaxAge is the
// Cache-Control max-age in seconds for the person-detail endpoint.
func NewHandlers(service *Service, personMaxAge int) *Handlers {
	if personMaxAge <= 0 {
		personMaxAge = 21600
	}
	return &Handlers{
		service:      service,
		personMaxAge: personMaxAge,
	}
}

// RegisterRoutes registers the metadata routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/discover", h.Discover)
	g.GET("/search", h.Search)
	g.GET("/person/:id", h.GetPerson)
	g.GET("/redirect", h.Redirect)
	g.GET("/status", h.GetStatus)
	g.DELETE("/cache", h.ClearCache)
}

// setVolatileCacheHeaders disables all caching layers for endpoints whose
// payload changes per request.
func setVolatileCacheHeaders(c echo.Context) {
	header := c.Response().Header()
	header.Set("Cache-Control", "private, no-cache, no-store, max-age=0, must-revalidate")
	header.Set("Pragma", "no-cache")
	header.Set("Expires", "0")
	header.Set("Surrogate-Control", "no-store")
}

// mediaKindParam resolves the media kind from the query, degrading to movie
// on anything unrecognized.
func mediaKindParam(c echo.Context) MediaType {
	if c.QueryParam("type") == string(MediaTypeTV) {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// upstreamStatus maps a service error to the HTTP status to return: the
// upstream's own status when known, 500 otherwise.
func upstreamStatus(err error) int {
	var statusErr *tmdb.StatusError
	if errors.As(err, &statusErr) && statusErr.Code > 0 {
		return statusErr.Code
	}
	return http.StatusInternalServerError
}

// Discover handles the discover operation.
// GET /api/v1/discover?type=movie|tv&page=...&sort_by=...&...
func (h *Handlers) Discover(c echo.Context) error {
	setVolatileCacheHeaders(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), discoverTimeout)
	defer cancel()

	kind := mediaKindParam(c)
	resp, err := h.service.Discover(ctx, kind, c.Request().URL.Query())
	if err != nil {
		status := upstreamStatus(err)
		errMsg := "failed to fetch discover data"
		if errors.Is(err, ErrNotConfigured) {
			errMsg = ErrNotConfigured.Error()
		}
		return c.JSON(status, &DiscoverResponse{
			Code:         status,
			Message:      "error",
			List:         []Item{},
			Page:         sanitizePage(c.QueryParam("page")),
			TotalPages:   1,
			TotalResults: 0,
			Error:        errMsg,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// Search handles the aggregated search operation.
// GET /api/v1/search?q=...
func (h *Handlers) Search(c echo.Context) error {
	setVolatileCacheHeaders(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), searchTimeout)
	defer cancel()

	resp, err := h.service.Search(ctx, c.QueryParam("q"))
	if err != nil {
		status := upstreamStatus(err)
		return echo.NewHTTPError(status, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

// GetPerson handles the person-detail operation.
// GET /api/v1/person/:id
func (h *Handlers) GetPerson(c echo.Context) error {
	// Errors must not be cached under the endpoint's public policy; the
	// success path overwrites this below.
	setVolatileCacheHeaders(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid person id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), personTimeout)
	defer cancel()

	profile, err := h.service.GetPerson(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			return echo.NewHTTPError(http.StatusInternalServerError, ErrNotConfigured.Error())
		case errors.Is(err, tmdb.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "person not found")
		default:
			return echo.NewHTTPError(upstreamStatus(err), err.Error())
		}
	}

	header := c.Response().Header()
	header.Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d, s-maxage=%d", h.personMaxAge, h.personMaxAge))
	header.Del("Pragma")
	header.Del("Expires")
	header.Del("Surrogate-Control")

	return c.JSON(http.StatusOK, profile)
}

// Redirect resolves a title to the provider's canonical detail page and
// redirects there, falling back to the provider's search page.
// GET /api/v1/redirect?title=...&type=movie|tv&year=YYYY
func (h *Handlers) Redirect(c echo.Context) error {
	setVolatileCacheHeaders(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), redirectTimeout)
	defer cancel()

	year := ""
	if y, ok := sanitizeYear(c.QueryParam("year")); ok {
		year = y
	}

	target := h.service.ResolveRedirect(ctx, c.QueryParam("title"), mediaKindParam(c), year)
	return c.Redirect(http.StatusTemporaryRedirect, target)
}

// ProviderStatus reports provider configuration state.
type ProviderStatus struct {
	Provider   string `json:"provider"`
	Configured bool   `json:"configured"`
}

// GetStatus returns the provider configuration status.
// GET /api/v1/status
func (h *Handlers) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, ProviderStatus{
		Provider:   sourceTag,
		Configured: h.service.IsConfigured(),
	})
}

// ClearCache drops the episode-count lookup cache.
// DELETE /api/v1/cache
func (h *Handlers) ClearCache(c echo.Context) error {
	h.service.ClearLookupCache()
	return c.NoContent(http.StatusNoContent)
}
