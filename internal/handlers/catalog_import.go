package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/events"

	appConfig "scheme-eligibility-engine/internal/config"
	"scheme-eligibility-engine/internal/metrics"
	"scheme-eligibility-engine/internal/services/database"
	s3service "scheme-eligibility-engine/internal/services/s3"
	"scheme-eligibility-engine/internal/utils"
)

// CatalogImportHandler handles S3 events for published catalog files.
type CatalogImportHandler struct {
	s3Svc      *s3service.Service
	db         *database.DB
	schemeRepo *database.SchemeRepository
}

// NewCatalogImportHandler creates a new catalog import handler.
func NewCatalogImportHandler() (*CatalogImportHandler, error) {
	s3Svc, err := s3service.NewService(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 service: %w", err)
	}

	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &CatalogImportHandler{
		s3Svc:      s3Svc,
		db:         db,
		schemeRepo: database.NewSchemeRepository(db),
	}, nil
}

// CatalogImportResult is the result of importing a catalog file.
type CatalogImportResult struct {
	Message  string   `json:"message"`
	BatchID  string   `json:"batch_id"`
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Handle processes S3 events for uploaded catalog CSV files.
func (h *CatalogImportHandler) Handle(ctx context.Context, s3Event events.S3Event) (CatalogImportResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return CatalogImportResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return CatalogImportResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}

	logger.Info("Importing catalog file",
		utils.String("bucket", record.S3.Bucket.Name),
		utils.String("key", key))

	csvContent, err := h.s3Svc.DownloadFile(ctx, key)
	if err != nil {
		metrics.CatalogImportsTotal.WithLabelValues("download_error").Inc()
		logger.Error("Failed to download catalog file", utils.Error(err))
		return CatalogImportResult{}, fmt.Errorf("failed to download catalog file: %w", err)
	}

	batchID := generateBatchID(key)

	parser := utils.NewCSVParser()
	schemes, parseErrors := parser.ParseSchemes(string(csvContent))

	if len(schemes) == 0 {
		metrics.CatalogImportsTotal.WithLabelValues("empty").Inc()
		errMsgs := make([]string, len(parseErrors))
		for i, e := range parseErrors {
			errMsgs[i] = e.Error()
		}
		return CatalogImportResult{
			Message: "No valid schemes found in catalog file",
			BatchID: batchID,
			Errors:  errMsgs,
		}, nil
	}

	logger.Info("Parsed catalog file",
		utils.String("batchID", batchID),
		utils.Int("validSchemes", len(schemes)),
		utils.Int("parseErrors", len(parseErrors)))

	result, err := h.schemeRepo.BulkInsert(ctx, schemes)
	if err != nil {
		metrics.CatalogImportsTotal.WithLabelValues("insert_error").Inc()
		logger.Error("Failed to insert schemes", utils.Error(err))
		return CatalogImportResult{}, fmt.Errorf("failed to insert schemes: %w", err)
	}

	metrics.CatalogImportsTotal.WithLabelValues("ok").Inc()
	logger.Info("Inserted schemes",
		utils.String("batchID", batchID),
		utils.Int("inserted", result.InsertedCount),
		utils.Int("failed", result.FailedCount))

	if _, err := h.s3Svc.ArchiveFile(ctx, key); err != nil {
		logger.Warn("Failed to archive file", utils.Error(err))
	}

	allErrors := make([]string, 0)
	for _, e := range parseErrors {
		allErrors = append(allErrors, e.Error())
	}
	allErrors = append(allErrors, result.Errors...)

	// Limit errors in response
	if len(allErrors) > 10 {
		allErrors = allErrors[:10]
	}

	return CatalogImportResult{
		Message:  "Catalog imported successfully",
		BatchID:  batchID,
		Inserted: result.InsertedCount,
		Failed:   result.FailedCount + len(parseErrors),
		Errors:   allErrors,
	}, nil
}

// generateBatchID derives a batch id from the file key and import time.
func generateBatchID(key string) string {
	hash := sha256.Sum256([]byte(key + time.Now().UTC().Format(time.RFC3339)))
	return "catalog_" + hex.EncodeToString(hash[:])[:12]
}
