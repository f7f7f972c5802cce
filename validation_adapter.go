package main

import (
	"context"
	"log/slog"
	"time"

	"go-document-validator/document"
)

// abstract interfaces for easier testing

type DocumentValidator interface {
	ValidateCleaned(cleaned string) document.ValidationResult
}

// validateDocument cleans raw and validates it, going through the result
// cache first. Cache failures are logged and otherwise ignored.
func validateDocument(ctx context.Context, state *ServerState, raw string) document.ValidationResult {
	start := time.Now()
	result := lookupOrValidate(ctx, state, document.CleanDocument(raw))
	if state.metrics != nil {
		state.metrics.ObserveValidation(result.DocumentType.String(), result.Valid, time.Since(start))
	}
	return result
}

func lookupOrValidate(ctx context.Context, state *ServerState, cleaned string) document.ValidationResult {
	key := CacheKey(cleaned)

	cached, found, err := state.resultCache.Retrieve(ctx, key)
	switch {
	case err != nil:
		slog.Warn("Failed to read result cache", "error", err)
		state.observeCacheLookup("error")
	case found:
		slog.Debug("Result cache hit", "document_type", cached.DocumentType.String())
		state.observeCacheLookup("hit")
		return cached
	default:
		state.observeCacheLookup("miss")
	}

	result := state.documentValidator.ValidateCleaned(cleaned)
	slog.Debug("Classified document", "document_type", result.DocumentType.String(), "length", len(cleaned))

	if err := state.resultCache.Store(ctx, key, result); err != nil {
		slog.Warn("Failed to store result in cache", "error", err)
	}
	return result
}
