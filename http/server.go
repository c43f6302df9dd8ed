package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/dartisan/webscraper"
	"github.com/go-playground/validator/v10"
)

// Version is reported by the info and status endpoints.
const Version = "1.0.0"

// ShutdownTimeout bounds how long Close waits for in-flight requests.
const ShutdownTimeout = 30 * time.Second

// AllowedMethods lists the methods advertised to CORS preflight requests.
const AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"

// Server serves the scraping API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *http.ServeMux

	validate *validator.Validate

	// Addr is the bind address, for example "localhost:8000".
	Addr string

	// Provider names the extraction backend in status responses.
	Provider string

	// Retention is the age past which stored documents are swept after
	// each successful scrape. Zero disables the sweep.
	Retention time.Duration

	// AllowedOrigins lists origins allowed by CORS. "*" allows any origin.
	AllowedOrigins []string

	Logger *slog.Logger

	ScrapeService webscraper.ScrapeService
	DataExtractor webscraper.DataExtractor
	DocumentStore webscraper.DocumentStore
}

// NewServer returns a Server with its routes registered. Services must be
// set before the server is opened.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		router:   http.NewServeMux(),
		validate: newValidator(),
		Logger:   slog.Default(),
	}

	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /api/status", s.handleStatus)
	s.router.HandleFunc("POST /api/scrape", s.handleScrape)
	s.router.HandleFunc("GET "+webscraper.DownloadPath+"{filename}", s.handleDownload)

	s.server.Handler = s.withLogging(s.withCORS(s.router))
	return s
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the listening server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes a request through the middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", AllowedMethods)
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
				}
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	return slices.Contains(s.AllowedOrigins, "*") || slices.Contains(s.AllowedOrigins, origin)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorStatus maps an application error code to an HTTP status.
func ErrorStatus(err error) int {
	switch webscraper.ErrorCode(err) {
	case webscraper.EINVALID, webscraper.EUNSUPPORTED:
		return http.StatusBadRequest
	case webscraper.ENOTFOUND:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Error writes err as an ErrorResponse. Internal errors are prefixed with
// action, for example "Scraping failed".
func (s *Server) Error(w http.ResponseWriter, r *http.Request, action string, err error) {
	status := ErrorStatus(err)
	msg := errorDetail(err)
	if status == http.StatusInternalServerError {
		msg = action + ": " + msg
	}
	s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	s.writeJSON(w, status, ErrorResponse{Error: "HTTP_ERROR", Message: msg})
}

// errorDetail returns the message of an application error, or the text
// of any other error.
func errorDetail(err error) string {
	var e *webscraper.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encoding response", "err", err)
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
