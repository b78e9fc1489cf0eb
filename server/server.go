// Package server exposes the ingestion and query pipelines over HTTP.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/tshaw/ragapi/internal/models"
	"github.com/tshaw/ragapi/internal/types"
)

const statusMessage = "Enhanced RAG API is running"

// maxUploadMemory bounds how much of a multipart body is held in
// memory before spilling to disk.
const maxUploadMemory = 32 << 20

type Server struct {
	ingestor types.Ingestor
	querier  types.Querier
	handler  http.Handler
}

type messageResponse struct {
	Message string `json:"message"`
}

type uploadResponse struct {
	Status         string                 `json:"status"`
	ProcessedFiles []models.ProcessedFile `json:"processed_files"`
	TotalChunks    int                    `json:"total_chunks"`
}

type askResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func New(ingestor types.Ingestor, querier types.Querier, logger *zap.Logger) *Server {
	s := &Server{
		ingestor: ingestor,
		querier:  querier,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(Logger(logger))
	r.Use(CORS)

	r.Get("/", s.handleRoot)
	r.Post("/upload/", s.handleUpload)
	r.Post("/ask/", s.handleAsk)

	s.handler = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, messageResponse{Message: statusMessage})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondError(ctx, w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		s.respondError(ctx, w, http.StatusBadRequest, "at least one file is required")
		return
	}

	files := make([]models.UploadedFile, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			s.respondError(ctx, w, http.StatusInternalServerError, "read upload: "+err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.respondError(ctx, w, http.StatusInternalServerError, "read upload: "+err.Error())
			return
		}
		files = append(files, models.UploadedFile{
			Filename: part.Filename,
			Data:     data,
		})
	}

	result, err := s.ingestor.Ingest(ctx, files)
	if err != nil {
		s.respondError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	ctxzap.Info(ctx, "upload processed",
		zap.Int("files", len(result.ProcessedFiles)),
		zap.Int("total_chunks", result.TotalChunks),
	)

	s.respondJSON(w, http.StatusOK, uploadResponse{
		Status:         "success",
		ProcessedFiles: result.ProcessedFiles,
		TotalChunks:    result.TotalChunks,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	question := r.FormValue("question")
	if question == "" {
		s.respondError(ctx, w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.querier.Answer(ctx, question)
	if err != nil {
		s.respondError(ctx, w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, askResponse{
		Question: question,
		Answer:   answer,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(ctx context.Context, w http.ResponseWriter, status int, detail string) {
	ctxzap.Error(ctx, "request failed",
		zap.Int("status", status),
		zap.String("detail", detail),
	)
	s.respondJSON(w, status, errorResponse{Detail: detail})
}
