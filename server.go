package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go-document-validator/metrics"
	"go-document-validator/models"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "go-document-validator/docs"
)

const ERR_DOCUMENT_REQUIRED = "Document is required."
const ERR_INVALID_BODY = "Invalid request body."
const ERR_METHOD_NOT_ALLOWED = "Method not allowed."
const ERR_INTERNAL = "Internal server error."
const ERR_MARSHAL = "failed to marshal response message"

const shutdownTimeout = 5 * time.Second

// request structs are validated against their `validate` tags with one shared instance
var validate = validator.New()

type ServerConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	UseTls         bool   `json:"use_tls,omitempty"`
	TlsPrivKeyPath string `json:"tls_priv_key_path,omitempty"`
	TlsCertPath    string `json:"tls_cert_path,omitempty"`
}

type ServerState struct {
	documentValidator DocumentValidator
	resultCache       ResultCache
	metrics           *metrics.Metrics
}

func (s *ServerState) observeCacheLookup(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveCacheLookup(outcome)
	}
}

type Server struct {
	server *http.Server
	config ServerConfig
}

func (s *Server) ListenAndServe() error {
	if s.config.UseTls {
		slog.Info("Starting server with TLS", "host", s.config.Host, "port", s.config.Port, "cert", s.config.TlsCertPath, "key", s.config.TlsPrivKeyPath)
		return s.server.ListenAndServeTLS(s.config.TlsCertPath, s.config.TlsPrivKeyPath)
	} else {
		slog.Info("Starting server without TLS", "host", s.config.Host, "port", s.config.Port)
		return s.server.ListenAndServe()
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Stop() error {
	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("Error during server shutdown", "error", err)
	} else {
		slog.Info("Server shut down successfully")
	}
	return err
}

func NewServer(state *ServerState, config ServerConfig) (*Server, error) {
	if state.documentValidator == nil {
		return nil, fmt.Errorf("server state has no document validator")
	}
	if state.resultCache == nil {
		state.resultCache = NoopResultCache{}
	}

	slog.Info("Creating new server", "host", config.Host, "port", config.Port, "tls", config.UseTls)
	router := mux.NewRouter()
	router.Use(requestLogger(state))

	router.HandleFunc("/api/health", handleHealth)

	router.HandleFunc("/validate", func(w http.ResponseWriter, r *http.Request) {
		handleValidateDocument(state, w, r)
	})
	router.HandleFunc("/api/validate", func(w http.ResponseWriter, r *http.Request) {
		handleValidateDocument(state, w, r)
	})

	router.HandleFunc("/swagger/doc.json", handleSwaggerDoc).Methods(http.MethodGet)
	if state.metrics != nil {
		router.Handle("/metrics", state.metrics.Handler()).Methods(http.MethodGet)
	}

	slog.Debug("Registered all API routes")

	addr := fmt.Sprintf("%v:%v", config.Host, config.Port)
	srv := &http.Server{
		Handler:      router,
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	slog.Info("Server created successfully", "address", addr)
	return &Server{
		server: srv,
		config: config,
	}, nil
}

// handleValidateDocument godoc
//
//	@Summary		Validate a national identification or tax document
//	@Description	Cleans the document, classifies it by length and validates it as PAN, CPF, South Africa National ID or CNPJ.
//	@Tags			validation
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ValidateDocumentRequest	true	"Document to validate"
//	@Success		200		{object}	models.ValidateDocumentResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		405		{object}	models.ErrorResponse
//	@Router			/validate [post]
//	@Router			/api/validate [post]
func handleValidateDocument(state *ServerState, w http.ResponseWriter, r *http.Request) {
	defer closeRequestBody(r)

	if !requirePOST(w, r) {
		return
	}

	slog.Debug("Received request to validate a document")

	request, err := decodeValidateDocumentRequest(r)
	if err != nil {
		if errors.Is(err, errDocumentRequired) {
			respondWithErr(w, http.StatusBadRequest, ERR_DOCUMENT_REQUIRED, "document missing from request", err)
		} else {
			respondWithErr(w, http.StatusBadRequest, ERR_INVALID_BODY, "failed to decode validation request", err)
		}
		return
	}

	result := validateDocument(r.Context(), state, request.Document)
	response := models.NewValidateDocumentResponse(result.Valid, result.DocumentType.String())

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_INTERNAL, ERR_MARSHAL, err)
		return
	}

	slog.Info("Document validated", "document_type", response.DocumentType, "valid", response.Valid)
}

var errDocumentRequired = errors.New("document is required")

// decodeValidateDocumentRequest decodes the request body. An empty body is
// treated like an empty object.
func decodeValidateDocumentRequest(r *http.Request) (models.ValidateDocumentRequest, error) {
	var request models.ValidateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("Failed to decode validation request", "error", err)
		return request, fmt.Errorf("decode request body: %w", err)
	}

	if err := validate.Struct(request); err != nil {
		return request, fmt.Errorf("%w: %v", errDocumentRequired, err)
	}
	return request, nil
}

// handleHealth godoc
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]bool
//	@Router		/api/health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Health check request received")
	if err := writeJSON(w, http.StatusOK, map[string]bool{"ok": true}); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

func handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithErr(w, http.StatusInternalServerError, ERR_INTERNAL, "failed to read swagger document", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := io.WriteString(w, doc); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
}

func respondWithErr(w http.ResponseWriter, code int, responseBody string, logMsg string, e error) {
	slog.Error(logMsg, "error", e, "status_code", code, "response_body", responseBody)
	if err := writeJSON(w, code, models.ErrorResponse{Error: responseBody}); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}

// helpers ------------

func closeRequestBody(r *http.Request) {
	if err := r.Body.Close(); err != nil {
		slog.Error("failed to close request body", "error", err)
	}
}

func requirePOST(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		slog.Debug("Non-POST request rejected", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Allow", http.MethodPost)
		respondWithErr(w, http.StatusMethodNotAllowed, ERR_METHOD_NOT_ALLOWED, "invalid method", nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	slog.Debug("Writing JSON response", "status_code", status)
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal JSON payload", "error", err)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(payload); err != nil {
		slog.Error("failed to write body to http response", "error", err)
	}
	return nil
}
