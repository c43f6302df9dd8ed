package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/dartisan/webscraper"
	"github.com/go-playground/validator/v10"
)

// MaxRequestBodySize caps the size of a scrape request body.
const MaxRequestBodySize = 1 << 20

// ScrapeResponse is the body of a successful scrape.
type ScrapeResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	Data        webscraper.Value `json:"data"`
	DownloadURL string           `json:"download_url"`
	Filename    string           `json:"filename"`
}

// StatusResponse reports service health and extraction backend availability.
type StatusResponse struct {
	Status       string `json:"status"`
	LLMProvider  string `json:"llm_provider"`
	LLMAvailable bool   `json:"llm_available"`
	Version      string `json:"version"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message":  "AI Web Scraper API",
		"version":  Version,
		"status":   "/api/status",
		"download": webscraper.DownloadPath + "{filename}",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "AI Web Scraper API is running",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	available := true
	if err := s.DataExtractor.Ping(r.Context()); err != nil {
		s.Logger.Warn("extraction backend unavailable", "provider", s.Provider, "err", err)
		available = false
	}
	s.writeJSON(w, http.StatusOK, StatusResponse{
		Status:       "healthy",
		LLMProvider:  s.Provider,
		LLMAvailable: available,
		Version:      Version,
	})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req webscraper.ScrapeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err := dec.Decode(&req); err != nil {
		s.Error(w, r, "Scraping failed", webscraper.Errorf(webscraper.EINVALID, "Invalid request body: %v", err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.Error(w, r, "Scraping failed", validationError(err))
		return
	}

	result, err := s.ScrapeService.Scrape(r.Context(), &req)
	if err != nil {
		s.Error(w, r, "Scraping failed", err)
		return
	}

	s.writeJSON(w, http.StatusOK, ScrapeResponse{
		Success:     true,
		Message:     "Scraping completed successfully",
		Data:        result.Data,
		DownloadURL: result.DownloadURL,
		Filename:    result.Filename,
	})

	// Sweep once the response has been flushed.
	_ = http.NewResponseController(w).Flush()
	s.sweep(r)
}

func (s *Server) sweep(r *http.Request) {
	if s.Retention <= 0 {
		return
	}
	// The response is already sent; a client hanging up must not cut the sweep short.
	n, err := s.DocumentStore.Sweep(context.WithoutCancel(r.Context()), s.Retention)
	if err != nil {
		s.Logger.Error("sweeping documents", "err", err)
	}
	if n > 0 {
		s.Logger.Info("swept documents", "removed", n)
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	doc, err := s.DocumentStore.FindDocument(r.Context(), r.PathValue("filename"))
	if err != nil {
		s.Error(w, r, "Download failed", err)
		return
	}

	f, err := os.Open(doc.Path)
	if errors.Is(err, os.ErrNotExist) {
		s.Error(w, r, "Download failed", webscraper.Errorf(webscraper.ENOTFOUND, "File not found"))
		return
	} else if err != nil {
		s.Error(w, r, "Download failed", err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", doc.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	http.ServeContent(w, r, doc.Filename, doc.ModTime, f)
}

// validationError converts validator failures into an EINVALID error
// naming each rejected field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return webscraper.Errorf(webscraper.EINVALID, "Invalid request: %v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return webscraper.Errorf(webscraper.EINVALID, "Invalid request: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed the %q check", fe.Field(), fe.Tag())
}
