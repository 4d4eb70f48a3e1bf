package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/nakshatra-api/internal/almanac"
	"github.com/zapponejosh/nakshatra-api/internal/astro"
	"github.com/zapponejosh/nakshatra-api/internal/chart"
	"github.com/zapponejosh/nakshatra-api/internal/config"
	"github.com/zapponejosh/nakshatra-api/internal/database"
	"github.com/zapponejosh/nakshatra-api/internal/locale"
	"github.com/zapponejosh/nakshatra-api/internal/logger"
)

// maxTransitWindow bounds the search window of the transit endpoint. The
// Moon never stays in one mansion for two days.
const maxTransitWindow = 72 * time.Hour

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db      *database.DB
	almanac *almanac.Service
	locales *locale.Registry
	cfg     *config.Config
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, svc *almanac.Service, locales *locale.Registry, cfg *config.Config, log *slog.Logger) *Handlers {
	if locales == nil {
		locales = locale.Default
	}
	return &Handlers{
		db:      db,
		almanac: svc,
		locales: locales,
		cfg:     cfg,
		logger:  log,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeHealthCheck)
		return
	}

	WriteSuccess(w, map[string]any{
		"status":  "healthy",
		"locales": h.locales.Locales(),
	})
}

// -----------------------------------------------------------------
// Moon position
// -----------------------------------------------------------------

type siderealResponse struct {
	Moment string `json:"moment"`
	astro.SiderealIndices
}

// GetSidereal handles GET /api/v1/sidereal?datetime=YYYY-MM-DDTHH:MM&offset=+05:30
func (h *Handlers) GetSidereal(w http.ResponseWriter, r *http.Request) {
	m, ok := h.momentParam(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, siderealResponse{
		Moment:          m.String(),
		SiderealIndices: astro.ComputeSiderealIndices(m),
	})
}

type transitResponse struct {
	Moment      string `json:"moment"`
	FromMansion int    `json:"from_mansion"`
	ToMansion   int    `json:"to_mansion"`
	Minutes     int    `json:"minutes"`
	At          string `json:"at"`
}

// GetTransit handles GET /api/v1/transit?datetime=&offset=&within=48h and
// reports when the Moon next changes mansion.
func (h *Handlers) GetTransit(w http.ResponseWriter, r *http.Request) {
	m, ok := h.momentParam(w, r)
	if !ok {
		return
	}

	within := 48 * time.Hour
	if s := r.URL.Query().Get("within"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 || d > maxTransitWindow {
			WriteBadRequest(w, fmt.Sprintf("Invalid window %q: use a duration up to %s", s, maxTransitWindow))
			return
		}
		within = d
	}

	tr, found := astro.NextMansionChange(m, within)
	if !found {
		WriteError(w, http.StatusNotFound,
			fmt.Sprintf("No mansion change within %s of %s", within, m), CodeNotFound)
		return
	}

	WriteSuccess(w, transitResponse{
		Moment:      m.String(),
		FromMansion: tr.From,
		ToMansion:   tr.To,
		Minutes:     int(tr.After / time.Minute),
		At:          m.Add(tr.After).String(),
	})
}

// -----------------------------------------------------------------
// Locales
// -----------------------------------------------------------------

type localeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListLocales handles GET /api/v1/locales
func (h *Handlers) ListLocales(w http.ResponseWriter, r *http.Request) {
	ids := h.locales.Locales()
	out := make([]localeInfo, 0, len(ids))
	for _, id := range ids {
		t, err := h.locales.Table(id)
		if err != nil {
			continue
		}
		out = append(out, localeInfo{ID: t.ID, Name: t.Name})
	}
	WriteSuccess(w, out)
}

type lookupResponse struct {
	Locale string `json:"locale"`
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	locale.Entry
}

// GetLocaleEntry handles GET /api/v1/locales/{locale}/{kind}/{index}
func (h *Handlers) GetLocaleEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "locale")

	kind, err := locale.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	indexStr := chi.URLParam(r, "index")
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid index %q", indexStr))
		return
	}

	entry, err := h.locales.Lookup(index, kind, id)
	if err != nil {
		if !WriteDomainError(w, err) {
			h.internalError(w, r, "locale lookup failed", err)
		}
		return
	}

	WriteSuccess(w, lookupResponse{
		Locale: id,
		Kind:   kind.String(),
		Index:  index,
		Entry:  entry,
	})
}

// -----------------------------------------------------------------
// Chart
// -----------------------------------------------------------------

type chartResponse struct {
	chart.Chart
	StartsWith []string `json:"starts_with"`
	Name       string   `json:"name,omitempty"`
	Matches    *bool    `json:"matches,omitempty"`
}

// GetChart handles GET /api/v1/chart?datetime=&offset=&locale=en,ta&name=
//
// Without a locale parameter the Accept-Language header picks one locale,
// falling back to the configured defaults.
func (h *Handlers) GetChart(w http.ResponseWriter, r *http.Request) {
	m, ok := h.momentParam(w, r)
	if !ok {
		return
	}

	c, err := chart.New(m, h.locales, h.chartLocales(r)...)
	if err != nil {
		if !WriteDomainError(w, err) {
			h.internalError(w, r, "chart failed", err)
		}
		return
	}

	resp := chartResponse{Chart: c, StartsWith: c.StartsWith()}
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		matches := chart.MatchesAny(name, resp.StartsWith)
		resp.Name = name
		resp.Matches = &matches
	}
	WriteSuccess(w, resp)
}

func (h *Handlers) chartLocales(r *http.Request) []string {
	if s := r.URL.Query().Get("locale"); s != "" {
		var ids []string
		for _, id := range strings.Split(s, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	if id, ok := h.locales.Negotiate(r.Header.Get("Accept-Language")); ok {
		return []string{id}
	}
	return h.cfg.DefaultLocales
}

// -----------------------------------------------------------------
// Almanac
// -----------------------------------------------------------------

type almanacResponse struct {
	Start     string                `json:"start"`
	End       string                `json:"end"`
	UTCOffset string                `json:"utc_offset"`
	Days      []database.AlmanacDay `json:"days"`
}

// GetAlmanac handles GET /api/v1/almanac?start=YYYY-MM-DD&end=YYYY-MM-DD&offset=
func (h *Handlers) GetAlmanac(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.Parse(database.DateLayout, q.Get("start"))
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date %q. Use YYYY-MM-DD", q.Get("start")))
		return
	}
	end := start
	if s := q.Get("end"); s != "" {
		end, err = time.Parse(database.DateLayout, s)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid end date %q. Use YYYY-MM-DD", s))
			return
		}
	}

	offset, ok := h.offsetParam(w, r)
	if !ok {
		return
	}

	days, err := h.almanac.Range(r.Context(), start, end, offsetMinutes(offset))
	if err != nil {
		if !WriteDomainError(w, err) {
			h.internalError(w, r, "almanac failed", err)
		}
		return
	}

	WriteSuccess(w, almanacResponse{
		Start:     start.Format(database.DateLayout),
		End:       end.Format(database.DateLayout),
		UTCOffset: astro.FormatOffset(offset),
		Days:      days,
	})
}

// BuildAlmanacRequest is the body of POST /api/v1/admin/almanac/build.
type BuildAlmanacRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Offset string `json:"offset"`
}

// BuildAlmanac handles POST /api/v1/admin/almanac/build, recomputing and
// storing a range.
func (h *Handlers) BuildAlmanac(w http.ResponseWriter, r *http.Request) {
	var req BuildAlmanacRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	start, err := time.Parse(database.DateLayout, req.Start)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date %q. Use YYYY-MM-DD", req.Start))
		return
	}
	end, err := time.Parse(database.DateLayout, req.End)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date %q. Use YYYY-MM-DD", req.End))
		return
	}

	offset := h.cfg.UTCOffset()
	if req.Offset != "" {
		offset, err = astro.ParseOffset(req.Offset)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
	}

	n, err := h.almanac.Rebuild(r.Context(), start, end, offsetMinutes(offset))
	if err != nil {
		if !WriteDomainError(w, err) {
			h.internalError(w, r, "almanac build failed", err)
		}
		return
	}

	logger.Info(r.Context(), "almanac build requested",
		slog.String("start", req.Start),
		slog.String("end", req.End),
		slog.Int("days", n),
	)
	WriteSuccess(w, map[string]any{
		"start":      start.Format(database.DateLayout),
		"end":        end.Format(database.DateLayout),
		"utc_offset": astro.FormatOffset(offset),
		"days":       n,
	})
}

// -----------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------

// offsetParam reads ?offset=, defaulting to the configured offset. It writes
// the error response itself and reports false on bad input.
func (h *Handlers) offsetParam(w http.ResponseWriter, r *http.Request) (float64, bool) {
	s := r.URL.Query().Get("offset")
	if s == "" {
		return h.cfg.UTCOffset(), true
	}
	offset, err := astro.ParseOffset(s)
	if err != nil {
		WriteDomainError(w, err)
		return 0, false
	}
	return offset, true
}

// momentParam reads ?datetime= and ?offset=.
func (h *Handlers) momentParam(w http.ResponseWriter, r *http.Request) (astro.CivilMoment, bool) {
	offset, ok := h.offsetParam(w, r)
	if !ok {
		return astro.CivilMoment{}, false
	}

	s := r.URL.Query().Get("datetime")
	if s == "" {
		WriteBadRequest(w, "datetime parameter is required (YYYY-MM-DDTHH:MM)")
		return astro.CivilMoment{}, false
	}
	m, err := astro.ParseCivilMoment(s, offset)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return astro.CivilMoment{}, false
	}
	return m, true
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.Error(r.Context(), msg, err, slog.String("path", r.URL.Path))
	WriteInternalError(w, "Internal server error")
}

func offsetMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}
