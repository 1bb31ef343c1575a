package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/franckalain/nutritionguard/internal/analysis"
	"github.com/franckalain/nutritionguard/internal/models"
	"github.com/franckalain/nutritionguard/internal/normalize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sourceHeader = "X-Analysis-Source"

// envelope is the wire form of an analysis: the record fields at the top
// level plus the display projection and request metadata.
type envelope struct {
	models.AnalysisRecord
	Display     normalize.Display `json:"display"`
	Source      analysis.Source   `json:"source"`
	RequestID   string            `json:"request_id"`
	Model       string            `json:"model"`
	RawResponse string            `json:"raw_response,omitempty"`
}

type analyzeRequest struct {
	Image  json.RawMessage `json:"image"`
	Prompt json.RawMessage `json:"prompt"`
}

func (s *Server) envelope(o *analysis.Outcome, requestID string) envelope {
	env := envelope{
		AnalysisRecord: o.Record,
		Display:        s.service.Display(o),
		Source:         o.Source,
		RequestID:      requestID,
		Model:          s.service.ModelName(),
	}
	if s.opts.Debug {
		env.RawResponse = o.Raw
	}
	return env
}

func (s *Server) handleAnalyzeFood(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	var req analyzeRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
	}

	payload := models.ImagePayload{
		Image:       stringValue(req.Image),
		Instruction: stringValue(req.Prompt),
	}

	requestID := c.GetString(requestIDKey)
	outcome, err := s.service.Analyze(c.Request.Context(), payload)
	if err != nil {
		s.logger.Error("Analysis failed", zap.String("request_id", requestID), zap.Error(err))
		resp := gin.H{"error": s.service.Catalog().AnalysisFailed}
		if s.opts.Debug {
			resp["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.Header(sourceHeader, string(outcome.Source))
	c.JSON(http.StatusOK, s.envelope(outcome, requestID))
}

func (s *Server) handleAPIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": s.service.Catalog().ServiceHealthy,
	})
}

// stringValue returns raw as a string when it is a JSON string; anything else counts as absent.
func stringValue(raw json.RawMessage) string {
	var v string
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	return v
}
