package ui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "gradstat/domain/advisor"
	"gradstat/domain/core"
	"gradstat/domain/dataset"
	"gradstat/internal/advisor"
	apperrors "gradstat/internal/errors"
	"gradstat/internal/report"
	"gradstat/ports"
)

// handleAutoDetect profiles an uploaded dataset and answers every wizard
// question at once. Results are cached by content fingerprint: re-uploading
// the same bytes with the same detection settings skips the detector pass.
func (s *Server) handleAutoDetect(c *gin.Context) {
	name, content, ok := s.uploadedFile(c)
	if !ok {
		return
	}

	key := s.contentKey(content)
	if cached, hit := s.cache.Get(c.Request.Context(), key); hit {
		s.logger.Debug("cache hit for %s (%s)", name, key.Short())
		c.JSON(http.StatusOK, gin.H{"cached": true, "characteristics": cached})
		return
	}

	ds, err := s.reader.ReadBytes(name, content)
	if err != nil {
		s.renderError(c, err)
		return
	}

	profile := s.aggregator.Profile(c.Request.Context(), ds)
	safe, substituted := advisor.Sanitize(profile)
	if substituted > 0 {
		s.logger.Debug("replaced %d non-finite values in profile for %s", substituted, name)
	}

	s.cache.Set(c.Request.Context(), key, safe)
	s.recordHistory(name, key, "", ds, safe)

	c.JSON(http.StatusOK, gin.H{"cached": false, "characteristics": safe})
}

type recommendRequest struct {
	ResearchQuestion string         `json:"researchQuestion" binding:"required"`
	Answers          domain.Answers `json:"answers"`
}

// handleRecommend resolves a research question plus wizard answers into a
// ranked list of test recommendations.
func (s *Server) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, apperrors.InvalidInput("request body must include researchQuestion"))
		return
	}

	recs, err := advisor.Resolve(domain.Intent(req.ResearchQuestion), req.Answers)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"researchQuestion": req.ResearchQuestion,
		"recommendations":  recs,
	})
}

// handleListTests returns the full static test catalog.
func (s *Server) handleListTests(c *gin.Context) {
	keys := advisor.CatalogKeys()
	tests := make([]domain.TestRecommendation, 0, len(keys))
	for _, key := range keys {
		if rec, ok := advisor.Lookup(key, domain.ConfidenceHigh); ok {
			tests = append(tests, rec)
		}
	}
	c.JSON(http.StatusOK, gin.H{"tests": tests, "count": len(tests)})
}

func (s *Server) handleGetTest(c *gin.Context) {
	key := c.Param("key")
	rec, ok := advisor.Lookup(key, domain.ConfidenceHigh)
	if !ok {
		s.renderError(c, apperrors.NotFound("test "+key))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleReport profiles an upload, resolves the requested question against
// the detected answers, and returns a rendered report. Pass ?format=html for
// browser output, markdown is the default.
func (s *Server) handleReport(c *gin.Context) {
	name, content, ok := s.uploadedFile(c)
	if !ok {
		return
	}
	intent := domain.Intent(c.DefaultQuery("question", string(domain.IntentDescribeData)))

	ds, err := s.reader.ReadBytes(name, content)
	if err != nil {
		s.renderError(c, err)
		return
	}

	profile := s.aggregator.Profile(c.Request.Context(), ds)
	recs, err := advisor.Resolve(intent, domain.AnswersFromProfile(profile))
	if err != nil {
		s.renderError(c, err)
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(name, profile, recs))
		return
	}
	c.String(http.StatusOK, report.Markdown(name, profile, recs))
}

func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.cache.Stats(c.Request.Context()))
}

func (s *Server) handleCacheClear(c *gin.Context) {
	cleared := s.cache.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

// handleHistory lists recent analyses; ?key= narrows the listing to every
// analysis of one content fingerprint.
func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		s.renderError(c, apperrors.New(apperrors.CodeDatabaseError, "analysis history is not configured"))
		return
	}

	var records []ports.AnalysisRecord
	var err error
	if key := c.Query("key"); key != "" {
		records, err = s.history.ByContentKey(c.Request.Context(), core.ContentKey(key))
	} else {
		records, err = s.history.Recent(c.Request.Context(), 20)
	}
	if err != nil {
		s.renderError(c, apperrors.Wrap(err, "failed to load analysis history"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records, "count": len(records)})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.started).Truncate(time.Second).String(),
		"history": s.history != nil,
	})
}

// uploadedFile pulls the multipart "file" field out of the request. On
// failure it writes the error response itself and reports ok=false.
func (s *Server) uploadedFile(c *gin.Context) (string, []byte, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		s.renderError(c, apperrors.InvalidInput("multipart field 'file' is required"))
		return "", nil, false
	}
	f, err := header.Open()
	if err != nil {
		s.renderError(c, apperrors.UnreadableFile(header.Filename, err))
		return "", nil, false
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		s.renderError(c, apperrors.UnreadableFile(header.Filename, err))
		return "", nil, false
	}
	return header.Filename, content, true
}

// contentKey fingerprints an upload together with the detection settings, so
// cached profiles are invalidated when tuning changes.
func (s *Server) contentKey(content []byte) core.ContentKey {
	return core.ComputeContentKey(content, map[string]interface{}{
		"sample_cap":     s.cfg.Detection.SampleCap,
		"max_categories": s.cfg.Detection.MaxCategories,
		"seed":           s.cfg.Detection.Seed,
	})
}

// recordHistory persists the analysis asynchronously; history is best-effort
// and never blocks or fails a request.
func (s *Server) recordHistory(name string, key core.ContentKey, intent string, ds *dataset.Dataset, profile interface{}) {
	if s.history == nil {
		return
	}
	encoded, err := json.Marshal(profile)
	if err != nil {
		s.logger.Warn("could not encode profile for history: %v", err)
		encoded = nil
	}
	record := &ports.AnalysisRecord{
		ID:          core.NewID(),
		RequestID:   core.RequestID(core.NewID()),
		DatasetName: name,
		ContentKey:  key,
		Intent:      intent,
		NRows:       ds.Rows(),
		NColumns:    len(ds.ColumnNames()),
		Profile:     encoded,
		CreatedAt:   time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.history.Save(ctx, record); err != nil {
			s.logger.Warn("failed to save analysis record: %v", err)
		}
	}()
}

// renderError maps application error codes to HTTP statuses and emits the
// uniform error envelope.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeValidationError,
		apperrors.CodeUnknownIntent, apperrors.CodeUnreadableFile:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeDatabaseError:
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
}
