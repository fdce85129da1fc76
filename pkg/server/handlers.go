package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	swerr "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/render"
)

type routeResponse struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Found   bool     `json:"found"`
	Path    []string `json:"path"`
	Hops    int      `json:"hops"`
	Rounds  int      `json:"rounds"`
	Commits int      `json:"commits"`
}

type statsResponse struct {
	Nodes      int `json:"nodes"`
	Links      int `json:"links"`
	Components int `json:"components"`
	Largest    int `json:"largest_component"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" || to == "" {
		s.fail(w, r, swerr.New(swerr.ErrCodeInvalidInput, "query parameters 'from' and 'to' are required"))
		return
	}
	src, err := s.web.Resolve(from)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dst, err := s.web.Resolve(to)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	route, err := s.web.FindPath(r.Context(), src, dst)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := routeResponse{
		From:    from,
		To:      to,
		Found:   route.Found,
		Path:    s.web.Names(route.Path),
		Hops:    route.Hops(),
		Rounds:  route.Rounds,
		Commits: route.Commits,
	}
	if !route.Found {
		resp.Path = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	added, err := s.web.AddEdgeByName(a, b)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("link added", "a", a, "b", b, "new", added, "request_id", RequestIDFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveEdge(w http.ResponseWriter, r *http.Request) {
	a, b := chi.URLParam(r, "a"), chi.URLParam(r, "b")
	removed, err := s.web.RemoveEdgeByName(r.Context(), a, b)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("link removed", "a", a, "b", b, "existed", removed, "request_id", RequestIDFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("format")
	if name == "" {
		name = string(render.FormatJSON)
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var detailed bool
	if raw := q.Get("detailed"); raw != "" {
		detailed, err = strconv.ParseBool(raw)
		if err != nil {
			s.fail(w, r, swerr.New(swerr.ErrCodeInvalidInput, "query parameter 'detailed' must be a boolean, got %q", raw))
			return
		}
	}

	data, err := render.Artifact(r.Context(), s.web, render.Options{
		Format:   format,
		Detailed: detailed,
	}, s.cache, s.keyer)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	comps := s.web.Components()
	largest := 0
	for _, c := range comps {
		largest = max(largest, int(c.GetCardinality()))
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Nodes:      s.web.NodeCount(),
		Links:      s.web.EdgeCount(),
		Components: len(comps),
		Largest:    largest,
	})
}

// fail writes err as a JSON error with a status derived from its code.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := swerr.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = swerr.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
	}
	writeError(w, status, string(code), swerr.UserMessage(err))
}

func statusFor(code swerr.Code) int {
	switch code {
	case swerr.ErrCodeUnknownNode, swerr.ErrCodeUnknownIdentifier:
		return http.StatusNotFound
	case swerr.ErrCodeInvalidInput, swerr.ErrCodeInvalidFormat, swerr.ErrCodeInvalidNodeName,
		swerr.ErrCodeInvalidEdgeRemoval, swerr.ErrCodeUnsupported:
		return http.StatusBadRequest
	case swerr.ErrCodeDisconnected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
