package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gradstat/domain/core"
	"gradstat/internal/cache"
	"gradstat/internal/config"
	"gradstat/ports"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: "test"},
		Cache:  config.CacheConfig{TTLSeconds: 3600, MaxEntries: 100},
		Detection: config.DetectionConfig{
			SampleCap:     5000,
			MaxCategories: 10,
			Seed:          42,
		},
	}
	c := cache.NewManager(time.Hour, 100, nil)
	return NewServer(cfg, c, nil, nil)
}

func upload(t *testing.T, path, filename string, content []byte, query string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, path+query, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

var studyCSV = []byte("age,exam_score,method\n" +
	"34,71.2,lecture\n41,65.8,online\n29,80.1,lecture\n45,60.3,online\n" +
	"38,74.9,lecture\n27,69.5,online\n52,58.2,lecture\n31,77.4,online\n" +
	"44,62.1,lecture\n36,70.8,online\n")

func TestAutoDetectCachesByContent(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, upload(t, "/guide/auto-detect", "study.csv", studyCSV, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var first struct {
		Cached          bool                   `json:"cached"`
		Characteristics map[string]interface{} `json:"characteristics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Cached {
		t.Error("first upload reported cached=true")
	}
	if _, ok := first.Characteristics["confidence"]; !ok {
		t.Errorf("characteristics missing confidence map: %v", first.Characteristics)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, upload(t, "/guide/auto-detect", "study.csv", studyCSV, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("second upload status = %d", rec.Code)
	}
	var second struct {
		Cached bool `json:"cached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !second.Cached {
		t.Error("identical re-upload reported cached=false")
	}
}

func TestAutoDetectRequiresFile(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/guide/auto-detect", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without a file field", rec.Code)
	}
}

func TestAutoDetectRejectsCorruptUpload(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, upload(t, "/guide/auto-detect", "x.xlsx", []byte("junk"), ""))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a corrupt workbook", rec.Code)
	}
}

func TestRecommendEndpoint(t *testing.T) {
	srv := testServer(t)

	body := `{"researchQuestion":"compare_groups","answers":{"nGroups":2,"outcomeType":"continuous","isNormal":"yes"}}`
	req := httptest.NewRequest(http.MethodPost, "/guide/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Recommendations []struct {
			Key string `json:"key"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Recommendations) == 0 || resp.Recommendations[0].Key != "independent_ttest" {
		t.Errorf("recommendations = %+v, want independent_ttest first", resp.Recommendations)
	}
}

func TestRecommendValidation(t *testing.T) {
	srv := testServer(t)

	for name, body := range map[string]string{
		"missing question": `{"answers":{}}`,
		"unknown question": `{"researchQuestion":"meta_analysis"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/guide/recommend", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestTestCatalogEndpoints(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guide/tests", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 20 {
		t.Errorf("count = %d, want 20", list.Count)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guide/tests/anova", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guide/tests/levene", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown test status = %d, want 404", rec.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, upload(t, "/guide/report", "study.csv", studyCSV, "?question=compare_groups"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "# Analysis Guide: study.csv") {
		t.Error("markdown report missing its header")
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, upload(t, "/guide/report", "study.csv", studyCSV, "?question=describe_data&format=html"))
	if rec.Code != http.StatusOK {
		t.Fatalf("html status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestCacheEndpoints(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, upload(t, "/guide/auto-detect", "study.csv", studyCSV, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("seed upload status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var stats struct {
		Entries int `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Entries != 1 {
		t.Errorf("entries = %d, want 1", stats.Entries)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cache/clear", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	var cleared struct {
		Cleared int `json:"cleared"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cleared); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cleared.Cleared != 1 {
		t.Errorf("cleared = %d, want 1", cleared.Cleared)
	}
}

type stubHistory struct {
	records []ports.AnalysisRecord
}

func (s *stubHistory) Save(_ context.Context, record *ports.AnalysisRecord) error {
	s.records = append(s.records, *record)
	return nil
}

func (s *stubHistory) Recent(_ context.Context, limit int) ([]ports.AnalysisRecord, error) {
	if limit > len(s.records) {
		limit = len(s.records)
	}
	return s.records[:limit], nil
}

func (s *stubHistory) ByContentKey(_ context.Context, key core.ContentKey) ([]ports.AnalysisRecord, error) {
	var out []ports.AnalysisRecord
	for _, r := range s.records {
		if r.ContentKey == key {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestHistoryFiltersByContentKey(t *testing.T) {
	history := &stubHistory{records: []ports.AnalysisRecord{
		{ID: core.NewID(), DatasetName: "a.csv", ContentKey: core.ComputeContentKey([]byte("a"), nil)},
		{ID: core.NewID(), DatasetName: "b.csv", ContentKey: core.ComputeContentKey([]byte("b"), nil)},
	}}
	cfg := &config.Config{
		Server:    config.ServerConfig{GinMode: "test"},
		Cache:     config.CacheConfig{TTLSeconds: 3600, MaxEntries: 100},
		Detection: config.DetectionConfig{SampleCap: 5000, MaxCategories: 10, Seed: 42},
	}
	srv := NewServer(cfg, cache.NewManager(time.Hour, 100, nil), history, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var all struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if all.Count != 2 {
		t.Errorf("count = %d, want 2", all.Count)
	}

	key := string(history.records[1].ContentKey)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?key="+key, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered status = %d", rec.Code)
	}
	var filtered struct {
		Count   int `json:"count"`
		History []struct {
			DatasetName string `json:"dataset_name"`
		} `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if filtered.Count != 1 || filtered.History[0].DatasetName != "b.csv" {
		t.Errorf("filtered = %+v, want only b.csv", filtered)
	}
}

func TestHistoryUnconfigured(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without a history store", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var health struct {
		Status  string `json:"status"`
		History bool   `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" || health.History {
		t.Errorf("health = %+v, want status ok and history false", health)
	}
}
