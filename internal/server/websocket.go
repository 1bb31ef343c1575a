package server

import (
	"encoding/json"

	"github.com/franckalain/nutritionguard/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if s.opts.MaxBodyBytes > 0 {
		conn.SetReadLimit(s.opts.MaxBodyBytes)
	}

	clientID := uuid.New().String()
	s.logger.Info("WebSocket client connected", zap.String("client_id", clientID))
	defer s.logger.Info("WebSocket client disconnected", zap.String("client_id", clientID))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Error reading message", zap.String("client_id", clientID), zap.Error(err))
			}
			break
		}

		// Parse message
		var msg map[string]any
		if err := json.Unmarshal(message, &msg); err != nil {
			s.logger.Debug("Error parsing message", zap.String("client_id", clientID), zap.Error(err))
			s.sendError(conn, "Invalid message format")
			continue
		}

		s.handleWebSocketMessage(c, conn, msg)
	}
}

func (s *Server) handleWebSocketMessage(c *gin.Context, conn *websocket.Conn, message map[string]any) {
	messageType, ok := message["type"].(string)
	if !ok {
		s.sendError(conn, "Invalid message format")
		return
	}

	data, _ := message["data"].(map[string]any)

	switch messageType {
	case "analyze":
		s.handleAnalyze(c, conn, data)
	default:
		s.sendError(conn, "Unknown message type")
	}
}

func (s *Server) handleAnalyze(c *gin.Context, conn *websocket.Conn, data map[string]any) {
	// Non-string values count as absent, like the HTTP endpoint
	image, _ := data["image"].(string)
	prompt, _ := data["prompt"].(string)

	requestID := uuid.New().String()
	outcome, err := s.service.Analyze(c.Request.Context(), models.ImagePayload{
		Image:       image,
		Instruction: prompt,
	})
	if err != nil {
		s.logger.Error("Analysis failed", zap.String("request_id", requestID), zap.Error(err))
		s.sendError(conn, s.service.Catalog().AnalysisFailed)
		return
	}

	s.sendMessage(conn, "analysis_result", s.envelope(outcome, requestID))
}

func (s *Server) sendMessage(conn *websocket.Conn, messageType string, data any) {
	msg := map[string]any{
		"type": messageType,
		"data": data,
	}

	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("Error sending message", zap.String("type", messageType), zap.Error(err))
	}
}

func (s *Server) sendError(conn *websocket.Conn, message string) {
	msg := map[string]any{
		"type":    "error",
		"message": message,
	}

	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("Error sending error message", zap.Error(err))
	}
}
