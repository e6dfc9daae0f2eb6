package handler

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/garudacbt/cbt-backend/internal/middleware"
	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/service"
	ws "github.com/garudacbt/cbt-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams one exam session: countdown ticks out, answers and
// the finish confirmation in.
type WSHandler struct {
	flowService *service.ExamFlowService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(flowService *service.ExamFlowService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		flowService: flowService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// sessionStream serializes writes; the tick goroutine and the read loop
// both send events on the same connection.
type sessionStream struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *sessionStream) send(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ws.WriteTyped(s.conn, v)
}

func (s *sessionStream) sendError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws.WriteError(s.conn, msg)
}

// SessionStream godoc
// WS /ws/v1/exam/sessions/:session_id/stream
// Upgrades to WebSocket. The server pushes a tick event every second
// with the remaining time; when the countdown reaches zero the session
// is finished server-side and the graded summary is pushed as a forced
// finished event before the connection closes.
func (h *WSHandler) SessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	stream := &sessionStream{conn: conn}

	session, err := h.flowService.SessionForParticipant(c.Request.Context(), claims.UserID, sessionID)
	if err != nil {
		stream.sendError("no access to this session")
		return
	}
	if session.Status != model.SessionStatusInProgress {
		stream.sendError("session is already finished")
		return
	}

	wsLog := h.log.With().
		Str("participant_id", claims.UserID.String()).
		Str("session_id", sessionID.String()).
		Logger()

	wsLog.Info().Msg("Participant connected")

	done := make(chan struct{})
	defer close(done)

	var finishOnce sync.Once
	finish := func(forced bool) {
		finishOnce.Do(func() {
			// The connection context dies with the socket; finishing
			// must not.
			result, err := h.flowService.Finish(context.Background(), sessionID)
			if err != nil {
				wsLog.Error().Err(err).Bool("forced", forced).Msg("Finish failed")
				stream.sendError("finish failed")
				conn.Close()
				return
			}
			stream.send(ws.FinishedEvent{
				Event:   ws.EventFinished,
				Forced:  forced,
				Correct: result.Correct,
				Wrong:   result.Wrong,
				Score:   result.Score,
			})
			wsLog.Info().Bool("forced", forced).Int("score", result.Score).Msg("Session finished over stream")
			conn.Close()
		})
	}

	go h.tickLoop(done, stream, session, finish)

	for {
		var msg ws.Request
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionAnswer:
			h.handleAnswer(stream, claims.UserID, sessionID, &msg)
		case ws.ActionFinish:
			finish(false)
			return
		case ws.ActionPing:
			stream.send(ws.PongEvent{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			stream.sendError("unknown action: " + string(msg.Action))
		}
	}
}

// tickLoop pushes the countdown once per second and triggers the forced
// finish when it reaches zero.
func (h *WSHandler) tickLoop(done <-chan struct{}, stream *sessionStream, session *model.ExamSession, finish func(forced bool)) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			remaining := session.RemainingSeconds(now)
			if err := stream.send(ws.TickEvent{
				Event:            ws.EventTick,
				RemainingSeconds: remaining,
			}); err != nil {
				return
			}
			if remaining <= 0 {
				finish(true)
				return
			}
		}
	}
}

// handleAnswer applies the type-specific encoding rule and acknowledges
// the stored value.
func (h *WSHandler) handleAnswer(stream *sessionStream, participantID, sessionID uuid.UUID, msg *ws.Request) {
	questionID, err := uuid.Parse(msg.QuestionID)
	if err != nil {
		stream.sendError("invalid question_id format")
		return
	}

	stored, err := h.flowService.SubmitAnswer(context.Background(), participantID, sessionID, &model.SubmitAnswerRequest{
		QuestionID: questionID,
		Value:      msg.Value,
		Slot:       msg.Slot,
	})
	if err != nil {
		stream.sendError(err.Error())
		return
	}

	stream.send(ws.SavedEvent{
		Event:      ws.EventSaved,
		QuestionID: msg.QuestionID,
		Value:      stored,
	})
}
