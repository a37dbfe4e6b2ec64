// Package web is the HTTP surface the browser editor talks to: graph
// validation, contract generation and project persistence.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"solgraph/internal/builder"
	"solgraph/internal/codegen"
	"solgraph/internal/db"
	"solgraph/internal/graph"
	"solgraph/internal/metrics"
	"solgraph/internal/notify"
	"solgraph/internal/solc"
	"solgraph/internal/telemetry"
)

// Server serves the builder API.
type Server struct {
	store    db.Store
	compiler *solc.Client
	metrics  *metrics.Metrics
	notifier notify.Notifier
	port     int

	Optimize      bool
	OptimizerRuns int
}

// NewServer creates a new API server.
func NewServer(store db.Store, compiler *solc.Client, m *metrics.Metrics, notifier notify.Notifier, port int) *Server {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Server{
		store:         store,
		compiler:      compiler,
		metrics:       m,
		notifier:      notifier,
		port:          port,
		OptimizerRuns: 200,
	}
}

// Routes builds the request multiplexer.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/projects", s.handleCreateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("GET /api/projects/{id}/graph", s.handleGetGraph)
	mux.HandleFunc("PUT /api/projects/{id}/graph", s.handlePutGraph)
	mux.HandleFunc("GET /api/projects/{id}/artifact", s.handleGetArtifact)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

// Handler returns the full handler served by Start: the route multiplexer
// wrapped in the HTTP metrics middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Routes()
	if s.metrics != nil {
		h = s.metrics.Middleware(h)
	}
	return h
}

// Start starts the HTTP server. It binds to localhost: the service fronts a
// local editor, not the open network.
func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	telemetry.LogInfo("starting builder API", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid graph payload: "+err.Error())
		return
	}

	report := graph.Validate(&g)
	if s.metrics != nil {
		s.metrics.GraphNodes.Set(float64(len(g.Nodes())))
		if !report.Valid {
			s.metrics.ValidationFails.Inc()
		}
	}
	writeJSON(w, http.StatusOK, report)
}

// generateRequest is the POST /api/generate payload. ProjectID is optional;
// when present the resulting artifact is persisted under that project.
type generateRequest struct {
	Graph     json.RawMessage `json:"graph"`
	Options   codegen.Options `json:"options"`
	ProjectID string          `json:"project_id,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	var g graph.Graph
	if len(req.Graph) > 0 {
		if err := json.Unmarshal(req.Graph, &g); err != nil {
			writeError(w, http.StatusBadRequest, "invalid graph payload: "+err.Error())
			return
		}
	}

	session := builder.NewSession(s.compiler)
	session.Optimize = s.Optimize
	session.OptimizerRuns = s.OptimizerRuns
	session.SetOptions(req.Options)
	session.UpdateGraph(&g)

	start := time.Now()
	result := session.GenerateContract(r.Context())
	elapsed := time.Since(start)

	status := "success"
	if len(result.Errors) > 0 {
		status = "error"
	}
	if s.metrics != nil {
		s.metrics.RecordCompile(status, elapsed.Seconds())
		s.metrics.GraphNodes.Set(float64(len(g.Nodes())))
	}

	event := notify.EventSuccess
	message := fmt.Sprintf("Contract %s compiled in %s", result.Name, elapsed.Round(time.Millisecond))
	if status == "error" {
		event = notify.EventFailure
		message = fmt.Sprintf("Contract %s failed to compile: %d error(s)", result.Name, len(result.Errors))
	}
	if err := s.notifier.Notify(r.Context(), event, message); err != nil {
		telemetry.LogWarn("notification delivery failed", "error", err)
	}

	if req.ProjectID != "" && s.store != nil {
		artifact, err := json.Marshal(result)
		if err == nil {
			err = s.store.SaveArtifact(req.ProjectID, string(artifact))
		}
		if err != nil {
			telemetry.LogError("failed to persist artifact", err, "project", req.ProjectID)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// storeReady writes a clean error when the server was built without a
// project store, which otherwise would panic inside the handler.
func (s *Server) storeReady(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "project store is not configured")
		return false
	}
	return true
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}
	projects, err := s.store.ListProjects()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []db.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}
	var p db.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid project payload: "+err.Error())
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "project name is required")
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Settings == "" {
		p.Settings = "{}"
	}
	if err := s.store.SaveProject(p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	saved, err := s.store.GetProject(p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}
	if err := s.store.DeleteProject(r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}
	content, err := s.store.GetGraph(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if content == "" {
		content = `{"nodes":[],"connections":[]}`
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(content))
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}
	// Round-trip through the model so only structurally sound graphs are
	// persisted; dangling connections are dropped on the way in.
	var g graph.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid graph payload: "+err.Error())
		return
	}
	data, err := json.Marshal(&g)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.store.SaveGraph(r.PathValue("id"), string(data)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	if !s.storeReady(w) {
		return
	}
	content, err := s.store.GetArtifact(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if content == "" {
		writeError(w, http.StatusNotFound, "no artifact stored for project")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(content))
}
