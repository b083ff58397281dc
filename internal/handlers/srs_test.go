package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/educreate/educreate-backend/internal/apperr"
	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/services"
	"github.com/educreate/educreate-backend/internal/types"
)

type stubReviewService struct {
	batch *services.ReviewBatch
	words []*types.Word
	total int64
	err   error

	gotLevel string
	gotCount int
}

func (s *stubReviewService) SelectWordsForReview(ctx context.Context, level string, count int) (*services.ReviewBatch, error) {
	s.gotLevel = level
	s.gotCount = count
	return s.batch, s.err
}

func (s *stubReviewService) ListCatalog(ctx context.Context, level string) ([]*types.Word, int64, error) {
	return s.words, s.total, s.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestWordsToReview(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubReviewService{
		batch: &services.ReviewBatch{Words: []*services.ReviewWord{}, NewCount: 3, DueCount: 2},
	}
	h := NewSRSHandler(testLogger(t), stub)

	router := gin.New()
	router.GET("/api/srs/words-to-review", h.WordsToReview)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/srs/words-to-review?geptLevel=ELEMENTARY&count=5", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if stub.gotLevel != "ELEMENTARY" || stub.gotCount != 5 {
		t.Fatalf("service args: level=%q count=%d", stub.gotLevel, stub.gotCount)
	}
	var body struct {
		NewCount int `json:"newCount"`
		DueCount int `json:"dueCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.NewCount != 3 || body.DueCount != 2 {
		t.Fatalf("body counts: %+v", body)
	}
}

func TestWordsToReviewDefaultsCount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubReviewService{batch: &services.ReviewBatch{Words: []*services.ReviewWord{}}}
	h := NewSRSHandler(testLogger(t), stub)

	router := gin.New()
	router.GET("/api/srs/words-to-review", h.WordsToReview)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/srs/words-to-review?geptLevel=ELEMENTARY", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}
	if stub.gotCount != 15 {
		t.Fatalf("default count: expected 15, got %d", stub.gotCount)
	}
}

func TestWordsToReviewErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid level", apperr.InvalidInput("unknown gept level"), http.StatusBadRequest, "INVALID_INPUT"},
		{"no user", apperr.NotAuthorized("no user"), http.StatusUnauthorized, "NOT_AUTHORIZED"},
		{"storage down", apperr.StorageUnavailable(context.DeadlineExceeded), http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSRSHandler(testLogger(t), &stubReviewService{err: tc.err})
			router := gin.New()
			router.GET("/api/srs/words-to-review", h.WordsToReview)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/srs/words-to-review?geptLevel=X", nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status: expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantCode) {
				t.Fatalf("expected code %q in body %s", tc.wantCode, rec.Body.String())
			}
		})
	}
}

func TestListWordsReportsStoreTotal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// total comes from the store count, not the slice length
	stub := &stubReviewService{
		words: []*types.Word{{English: "apple"}},
		total: 250,
	}
	h := NewSRSHandler(testLogger(t), stub)

	router := gin.New()
	router.GET("/api/words", h.ListWords)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/words?geptLevel=ELEMENTARY", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Words []json.RawMessage `json:"words"`
		Total int64             `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Words) != 1 || body.Total != 250 {
		t.Fatalf("expected 1 word with total 250, got %d/%d", len(body.Words), body.Total)
	}
}

func TestWordsToReviewBadCount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewSRSHandler(testLogger(t), &stubReviewService{})
	router := gin.New()
	router.GET("/api/srs/words-to-review", h.WordsToReview)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/srs/words-to-review?geptLevel=ELEMENTARY&count=abc", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: expected 400, got %d", rec.Code)
	}
}
