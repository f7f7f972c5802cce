package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"go-document-validator/document"
	log "go-document-validator/logging"

	"github.com/stretchr/testify/require"
)

func TestLookupOrValidate_LogsClassification(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	log.InitLoggerTo(&buf, "debug", "json")
	t.Cleanup(func() { slog.SetDefault(previous) })

	state := newTestState(NoopResultCache{})
	state.documentValidator = document.NewDefaultDispatcher()

	result := lookupOrValidate(context.Background(), state, "52998224725")
	require.Equal(t, document.ValidationResult{Valid: true, DocumentType: document.CPF}, result)

	require.Contains(t, buf.String(), `"msg":"Classified document"`)
	require.Contains(t, buf.String(), `"document_type":"CPF"`)
	require.Contains(t, buf.String(), `"length":11`)
}

func TestLookupOrValidate_CacheHitSkipsValidator(t *testing.T) {
	counter := &countingDocumentValidator{inner: document.NewDefaultDispatcher()}
	state := newTestState(NewInMemoryResultCache(testCacheTtl))
	state.documentValidator = counter

	first := lookupOrValidate(context.Background(), state, "52998224725")
	second := lookupOrValidate(context.Background(), state, "52998224725")

	require.Equal(t, first, second)
	require.Equal(t, 1, counter.calls)
}
