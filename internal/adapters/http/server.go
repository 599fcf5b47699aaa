// Package httpadapter exposes the assessment services over HTTP. The
// handlers are a thin translation layer: decode, delegate to a service
// port, encode the JSON envelope.
package httpadapter

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"cybershield/internal/domain"
	"cybershield/internal/ports"
	"cybershield/internal/services/community"
	"cybershield/internal/services/resources"
)

type Server struct {
	assessor  ports.Assessor
	reports   ports.Reports
	community *community.Service
	resources *resources.Service
	log       *slog.Logger
}

func New(assessor ports.Assessor, reports ports.Reports, comm *community.Service, res *resources.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{assessor: assessor, reports: reports, community: comm, resources: res, log: log}
}

// Routes mounts all handlers on a chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/assess/email", s.handleAssess(domain.TargetEmail))
		r.Post("/assess/url", s.handleAssess(domain.TargetURL))
		r.Post("/assess/ip", s.handleAssess(domain.TargetIP))

		r.Get("/reports/{reportID}", s.handleGetReport)
		r.Get("/reports/{reportID}/download", s.handleDownloadReport)
		r.Get("/history", s.handleHistory)

		r.Post("/community/report", s.handleReportThreat)
		r.Get("/community/threats", s.handleListThreats)

		r.Get("/resources", s.handleListResources)
		r.Post("/resources", s.handleAddResource)
	})
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

type assessRequest struct {
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
	IP    string `json:"ip,omitempty"`
}

func (req assessRequest) target(t domain.TargetType) string {
	switch t {
	case domain.TargetEmail:
		return req.Email
	case domain.TargetURL:
		return req.URL
	default:
		return req.IP
	}
}

func (s *Server) handleAssess(t domain.TargetType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := s.userID(w, r)
		if !ok {
			return
		}
		var req assessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		a, rep, err := s.assessor.Assess(r.Context(), t, req.target(t), userID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		writeData(w, http.StatusOK, map[string]any{
			"target":    a.Target,
			"type":      a.Type,
			"score":     a.Score,
			"status":    a.Status,
			"threats":   a.Threats,
			"details":   a.Details,
			"report_id": rep.ReportID,
			"timestamp": rep.CreatedAt.Format(time.RFC3339),
		})
	}
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	rep, err := s.reports.Get(r.Context(), chi.URLParam(r, "reportID"), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, rep)
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	pdf, err := s.reports.RenderPDF(r.Context(), chi.URLParam(r, "reportID"), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	// Hex-encoded in the envelope rather than a binary response.
	writeData(w, http.StatusOK, hex.EncodeToString(pdf))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	hist, err := s.reports.History(r.Context(), userID, page, limit, r.URL.Query().Get("type"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if hist.Assessments == nil {
		hist.Assessments = []ports.HistoryItem{}
	}
	writeData(w, http.StatusOK, map[string]any{
		"assessments": hist.Assessments,
		"pagination": map[string]any{
			"current_page": hist.Page,
			"total_pages":  hist.TotalPages,
			"total_items":  hist.TotalItems,
			"has_next":     hist.Page < hist.TotalPages,
			"has_prev":     hist.Page > 1,
		},
	})
}

type threatRequest struct {
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	ThreatType string         `json:"threat_type"`
	Severity   string         `json:"severity"`
	Details    map[string]any `json:"details"`
}

func (s *Server) handleReportThreat(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	var req threatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := s.community.Report(r.Context(), userID, domain.CommunityThreat{
		Target:     req.Target,
		Type:       domain.TargetType(req.Type),
		ThreatType: req.ThreatType,
		Severity:   req.Severity,
		Details:    req.Details,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, t)
}

func (s *Server) handleListThreats(w http.ResponseWriter, r *http.Request) {
	threats, err := s.community.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, threats)
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	list, err := s.resources.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

type resourceRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (s *Server) handleAddResource(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.userID(w, r); !ok {
		return
	}
	var req resourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.resources.Add(r.Context(), req.Title, req.Content, req.Category)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

// userID reads the caller identity. Authentication itself is handled
// upstream; this service only needs a stable user key.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
		return "", false
	}
	return id, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	default:
		s.log.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func writeData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
