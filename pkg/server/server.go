package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yurifrl/ledgeru/pkg/export"
	"github.com/yurifrl/ledgeru/pkg/ingest"
	"github.com/yurifrl/ledgeru/pkg/models"
	"github.com/yurifrl/ledgeru/pkg/pipeline"
)

// Server exposes the pipeline over HTTP: upload a statement, get back the
// normalized rows and the rendered audit report.
type Server struct {
	logger   *log.Logger
	parser   *ingest.Parser
	pipeline *pipeline.Pipeline
	router   chi.Router
}

func New(logger *log.Logger, sampleLimit int) *Server {
	s := &Server{
		logger:   logger,
		parser:   ingest.New(logger),
		pipeline: pipeline.New(logger, sampleLimit),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withLogging)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/run", s.handleRun)
	s.router = r
	return s
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("statement")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	txs, err := s.parser.ProcessBytes(data, header.Filename)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to process file", err)
		return
	}

	sourceName := r.FormValue("source")
	if sourceName == "" {
		sourceName = header.Filename
	}
	for i := range txs {
		if txs[i].AccountName == "" {
			txs[i].AccountName = r.FormValue("account_name")
		}
		if txs[i].AccountNumber == "" {
			txs[i].AccountNumber = r.FormValue("account_number")
		}
	}

	result := s.pipeline.Run([]models.SourceResult{{
		SourceName:   sourceName,
		Success:      true,
		Transactions: txs,
	}})

	content, err := export.Bytes(result.Rows)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to render csv", err)
		return
	}
	result.Audit.RecordOutput(result.Rows, header.Filename+"-ledgeru.csv", content)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"rows":    result.Rows,
		"skipped": len(result.Skipped),
		"report":  result.Audit.Render(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string, err error) {
	s.logger.Error(msg, "error", err)
	s.writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}
