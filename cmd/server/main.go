// Package main provides the HTTP API server for the citizen portal.
// It exposes eligibility checks, catalog ranking, scheme browsing,
// saved-scheme management and catalog import endpoints.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"scheme-eligibility-engine/internal/config"
	"scheme-eligibility-engine/internal/engine"
	"scheme-eligibility-engine/internal/metrics"
	"scheme-eligibility-engine/internal/middleware"
	"scheme-eligibility-engine/internal/models"
	"scheme-eligibility-engine/internal/services/database"
	s3service "scheme-eligibility-engine/internal/services/s3"
	"scheme-eligibility-engine/internal/services/ses"
	"scheme-eligibility-engine/internal/utils"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// maxCompareSchemes caps how many schemes a comparison request may name.
const maxCompareSchemes = 3

// Server holds all dependencies
type Server struct {
	db         *database.DB
	schemeRepo *database.SchemeRepository
	savedRepo  *database.SavedSchemeRepository
	evaluator  *engine.Evaluator
	emailSvc   *ses.Service
	s3Svc      *s3service.Service
	config     *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CheckRequest is the body for a single-scheme eligibility check. Either
// SchemeID or an inline Scheme must be provided.
type CheckRequest struct {
	Profile  models.UserProfile `json:"profile"`
	SchemeID string             `json:"scheme_id,omitempty"`
	Scheme   *models.Scheme     `json:"scheme,omitempty"`
}

// RankRequest is the body for ranking the active catalog for a profile.
type RankRequest struct {
	Profile models.UserProfile `json:"profile"`
	Filter  models.RankFilter  `json:"filter"`
	Sort    models.RankSort    `json:"sort,omitempty"`
}

// CompareRequest is the body for a side-by-side scheme comparison.
type CompareRequest struct {
	Profile   models.UserProfile `json:"profile"`
	SchemeIDs []string           `json:"scheme_ids"`
}

// DigestRequest is the body for sending an eligibility digest email.
type DigestRequest struct {
	Profile   models.UserProfile `json:"profile"`
	UserEmail string             `json:"user_email"`
	MaxItems  int                `json:"max_items,omitempty"`
}

// ImportResponse contains catalog CSV import results
type ImportResponse struct {
	BatchID      string   `json:"batch_id"`
	TotalRows    int      `json:"total_rows"`
	ValidSchemes int      `json:"valid_schemes"`
	Inserted     int      `json:"inserted"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"error_details,omitempty"`
	ProcessingMs int64    `json:"processing_ms"`
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger(getEnvOrDefault("LOG_LEVEL", "info")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{}
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run without catalog persistence")
	}

	server := &Server{
		db:        db,
		evaluator: engine.New(),
		config:    cfg,
	}

	if db != nil {
		server.schemeRepo = database.NewSchemeRepository(db)
		server.savedRepo = database.NewSavedSchemeRepository(db)
	}

	// SES is optional locally
	if cfg.SESSenderEmail != "" {
		emailSvc, err := ses.NewService(context.Background())
		if err != nil {
			log.Printf("Warning: Could not initialize email service: %v", err)
		} else {
			server.emailSvc = emailSvc
		}
	}

	// S3 is only needed for the publish-URL endpoint
	s3Svc, err := s3service.NewService(context.Background())
	if err != nil {
		log.Printf("Warning: Could not initialize S3 service: %v", err)
	} else {
		server.s3Svc = s3Svc
	}

	// Setup routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	// Scheme catalog
	mux.HandleFunc("/api/schemes", server.schemesHandler)
	mux.HandleFunc("/api/schemes/", server.schemeByIDHandler)

	// Eligibility
	mux.HandleFunc("/api/eligibility/check", server.checkHandler)
	mux.HandleFunc("/api/eligibility/rank", server.rankHandler)
	mux.HandleFunc("/api/eligibility/compare", server.compareHandler)

	// Catalog import (direct CSV upload for local use; S3 path goes
	// through the Lambda)
	mux.HandleFunc("/api/catalog/import", server.importHandler)
	mux.HandleFunc("/api/catalog/upload-url", server.uploadURLHandler)

	// Saved schemes
	mux.HandleFunc("/api/saved", server.savedHandler)

	// Digest email
	mux.HandleFunc("/api/notify/digest", server.digestHandler)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Per-IP rate limiting, then CORS
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 40
	}
	limiter := middleware.NewIPRateLimiter(rps, burst)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(limiter.Middleware(mux))

	port := getEnvOrDefault("PORT", "8080")
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log.Printf("Scheme Eligibility Engine API Server")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("Health: http://localhost:%s/health", port)
	log.Println("")

	// Start server (this blocks until error)
	log.Printf("Starting HTTP server on %s...", addr)
	serverErr := http.ListenAndServe(addr, handler)
	if serverErr != nil {
		log.Fatalf("Server failed: %v", serverErr)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	response := Response{
		Success: true,
		Message: "Scheme Eligibility Engine API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) schemesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.schemeRepo == nil {
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    []models.Scheme{},
		})
		return
	}

	schemes, err := s.schemeRepo.GetAllActive(r.Context())
	if err != nil {
		log.Printf("Error fetching schemes: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch schemes",
		})
		return
	}

	// Optional category filter
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := schemes[:0]
		for _, sc := range schemes {
			if strings.EqualFold(sc.Category, category) {
				filtered = append(filtered, sc)
			}
		}
		schemes = filtered
	}

	metrics.CatalogSize.Set(float64(len(schemes)))

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    schemes,
	})
}

func (s *Server) schemeByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/schemes/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Scheme ID is required",
		})
		return
	}

	if s.schemeRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	scheme, err := s.schemeRepo.GetByID(r.Context(), id)
	if err != nil {
		if err == models.ErrSchemeNotFound {
			writeJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Scheme not found",
			})
			return
		}
		log.Printf("Error fetching scheme %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch scheme",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    scheme,
	})
}

func (s *Server) checkHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	scheme, errResp := s.resolveScheme(r.Context(), req.SchemeID, req.Scheme)
	if errResp != nil {
		writeJSON(w, errResp.status, errResp.body)
		return
	}

	result := s.evaluator.EvaluateScheme(req.Profile, *scheme)
	metrics.EvaluationsTotal.WithLabelValues(metrics.VerdictLabel(result.IsEligible)).Inc()

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

func (s *Server) rankHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.Filter.Kind == "" {
		req.Filter.Kind = models.FilterAll
	}
	if !req.Filter.Kind.IsValid() {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid filter kind: " + string(req.Filter.Kind),
		})
		return
	}
	if req.Sort != "" && !req.Sort.IsValid() {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid sort: " + string(req.Sort),
		})
		return
	}

	if s.schemeRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	schemes, err := s.schemeRepo.GetAllActive(r.Context())
	if err != nil {
		log.Printf("Error fetching schemes for ranking: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch schemes",
		})
		return
	}

	metrics.CatalogSize.Set(float64(len(schemes)))

	start := time.Now()
	results := s.evaluator.Rank(r.Context(), req.Profile, schemes, req.Filter, req.Sort)
	metrics.RankDuration.Observe(time.Since(start).Seconds())

	for _, res := range results {
		metrics.EvaluationsTotal.WithLabelValues(metrics.VerdictLabel(res.IsEligible)).Inc()
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    results,
	})
}

func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	ids := uniqueIDs(req.SchemeIDs)
	if len(ids) == 0 {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "At least one scheme ID is required",
		})
		return
	}
	if len(ids) > maxCompareSchemes {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("At most %d schemes can be compared", maxCompareSchemes),
		})
		return
	}

	if s.schemeRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	schemes, err := s.schemeRepo.GetByIDs(r.Context(), ids)
	if err != nil {
		log.Printf("Error fetching schemes for comparison: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch schemes",
		})
		return
	}

	if len(schemes) != len(ids) {
		writeJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "One or more schemes not found",
		})
		return
	}

	// Comparison preserves the requested order
	results := make([]models.EligibilityResult, 0, len(schemes))
	for _, sc := range schemes {
		result := s.evaluator.EvaluateScheme(req.Profile, sc)
		metrics.EvaluationsTotal.WithLabelValues(metrics.VerdictLabel(result.IsEligible)).Inc()
		results = append(results, result)
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    results,
	})
}

func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("Catalog import request received")

	// Handle multipart form upload
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB max
		log.Printf("Failed to parse form: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Failed to parse form: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("No file in form: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No file provided",
		})
		return
	}
	defer file.Close()

	log.Printf("Processing file: %s (%.2f KB)", header.Filename, float64(header.Size)/1024)

	// Validate file type
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Only CSV files are allowed",
		})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to read file",
		})
		return
	}

	result, err := s.importCatalog(r.Context(), content)
	if err != nil {
		metrics.CatalogImportsTotal.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	metrics.CatalogImportsTotal.WithLabelValues("ok").Inc()

	// Keep a copy of the imported file for audit when S3 is configured
	if s.s3Svc != nil {
		key := "imports/" + time.Now().UTC().Format("2006/01/02") + "/" + result.BatchID + ".csv"
		if err := s.s3Svc.UploadFile(r.Context(), key, content, "text/csv"); err != nil {
			log.Printf("Warning: Could not archive imported catalog: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Catalog imported successfully",
		Data:    result,
	})
}

func (s *Server) importCatalog(ctx context.Context, content []byte) (*ImportResponse, error) {
	startTime := time.Now()
	batchID := fmt.Sprintf("batch_%d", time.Now().Unix())

	log.Printf("Processing catalog (BatchID: %s)", batchID)

	parser := utils.NewCSVParser()
	schemes, parseErrors := parser.ParseSchemes(string(content))

	log.Printf("Parsed: %d valid schemes, %d errors", len(schemes), len(parseErrors))

	if len(parseErrors) > 0 {
		for i, err := range parseErrors {
			if i >= 5 {
				log.Printf("   ... and %d more errors", len(parseErrors)-5)
				break
			}
			log.Printf("   - %v", err)
		}
	}

	result := &ImportResponse{
		BatchID:      batchID,
		TotalRows:    len(schemes) + len(parseErrors),
		ValidSchemes: len(schemes),
		Errors:       len(parseErrors),
	}

	for _, e := range parseErrors {
		if len(result.ErrorDetails) >= 10 {
			break
		}
		result.ErrorDetails = append(result.ErrorDetails, e.Error())
	}

	if s.schemeRepo == nil {
		result.ProcessingMs = time.Since(startTime).Milliseconds()
		return result, nil
	}

	bulk, err := s.schemeRepo.BulkInsert(ctx, schemes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert schemes: %w", err)
	}

	result.Inserted = bulk.InsertedCount
	result.Errors += bulk.FailedCount
	for _, msg := range bulk.Errors {
		if len(result.ErrorDetails) >= 10 {
			break
		}
		result.ErrorDetails = append(result.ErrorDetails, msg)
	}

	result.ProcessingMs = time.Since(startTime).Milliseconds()
	return result, nil
}

func (s *Server) uploadURLHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.s3Svc == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "S3 service not available",
		})
		return
	}

	var req struct {
		Filename      string `json:"filename"`
		ExpiryMinutes int    `json:"expiry_minutes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "filename is required",
		})
		return
	}

	if !strings.HasSuffix(strings.ToLower(req.Filename), ".csv") {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Only CSV files are allowed",
		})
		return
	}

	key := "catalogs/" + time.Now().UTC().Format("2006/01/02") + "/" + uuid.New().String() + "_" + req.Filename

	result, err := s.s3Svc.GeneratePresignedUploadURL(r.Context(), key, "text/csv", req.ExpiryMinutes)
	if err != nil {
		log.Printf("Failed to generate upload URL: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to generate upload URL",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

func (s *Server) savedHandler(w http.ResponseWriter, r *http.Request) {
	if s.savedRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listSaved(w, r)
	case http.MethodPost:
		s.saveScheme(w, r)
	case http.MethodDelete:
		s.removeSaved(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listSaved(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "user_id is required",
		})
		return
	}

	ids, err := s.savedRepo.ListIDs(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing saved schemes: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list saved schemes",
		})
		return
	}

	if len(ids) == 0 {
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    []models.Scheme{},
		})
		return
	}

	schemes, err := s.schemeRepo.GetByIDs(r.Context(), ids)
	if err != nil {
		log.Printf("Error fetching saved schemes: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch saved schemes",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    schemes,
	})
}

func (s *Server) saveScheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		SchemeID string `json:"scheme_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.SchemeID == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "user_id and scheme_id are required",
		})
		return
	}

	// Verify the scheme exists before saving
	if _, err := s.schemeRepo.GetByID(r.Context(), req.SchemeID); err != nil {
		if err == models.ErrSchemeNotFound {
			writeJSON(w, http.StatusNotFound, Response{
				Success: false,
				Error:   "Scheme not found",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to verify scheme",
		})
		return
	}

	if err := s.savedRepo.Save(r.Context(), req.UserID, req.SchemeID); err != nil {
		log.Printf("Error saving scheme: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to save scheme",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Scheme saved",
	})
}

func (s *Server) removeSaved(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	schemeID := r.URL.Query().Get("scheme_id")
	if userID == "" || schemeID == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "user_id and scheme_id are required",
		})
		return
	}

	if err := s.savedRepo.Remove(r.Context(), userID, schemeID); err != nil {
		log.Printf("Error removing saved scheme: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to remove saved scheme",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Scheme removed",
	})
}

func (s *Server) digestHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DigestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.UserEmail == "" {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "user_email is required",
		})
		return
	}

	if s.emailSvc == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Email service not available",
		})
		return
	}
	if s.schemeRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	schemes, err := s.schemeRepo.GetAllActive(r.Context())
	if err != nil {
		log.Printf("Error fetching schemes for digest: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch schemes",
		})
		return
	}

	results := s.evaluator.Rank(r.Context(), req.Profile, schemes,
		models.RankFilter{Kind: models.FilterEligible}, models.SortScoreDesc)

	if len(results) == 0 {
		writeJSON(w, http.StatusOK, Response{
			Success: false,
			Error:   "No eligible schemes found for this profile",
		})
		return
	}

	maxItems := req.MaxItems
	if maxItems <= 0 {
		maxItems = 10
	}

	params := ses.BuildDigestParams(req.Profile.Name, req.UserEmail, results,
		s.config.PortalBaseURL, maxItems)

	sendResult, err := s.emailSvc.SendEligibilityDigest(r.Context(), params)
	if err != nil {
		log.Printf("Failed to send digest: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to send digest email",
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Digest sent",
		Data: map[string]interface{}{
			"message_id":      sendResult.MessageID,
			"eligible_count":  len(results),
			"schemes_in_mail": len(params.TopSchemes),
		},
	})
}

// errorWithStatus pairs a response body with its HTTP status.
type errorWithStatus struct {
	status int
	body   Response
}

// resolveScheme loads the scheme for a check request, from the catalog by
// ID or from the inline definition.
func (s *Server) resolveScheme(ctx context.Context, schemeID string, inline *models.Scheme) (*models.Scheme, *errorWithStatus) {
	if inline != nil {
		return inline, nil
	}

	if schemeID == "" {
		return nil, &errorWithStatus{http.StatusBadRequest, Response{
			Success: false,
			Error:   "Either scheme_id or scheme must be provided",
		}}
	}

	if s.schemeRepo == nil {
		return nil, &errorWithStatus{http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		}}
	}

	scheme, err := s.schemeRepo.GetByID(ctx, schemeID)
	if err != nil {
		if err == models.ErrSchemeNotFound {
			return nil, &errorWithStatus{http.StatusNotFound, Response{
				Success: false,
				Error:   "Scheme not found",
			}}
		}
		log.Printf("Error fetching scheme %s: %v", schemeID, err)
		return nil, &errorWithStatus{http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch scheme",
		}}
	}

	return scheme, nil
}

// uniqueIDs drops duplicate ids while keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
