package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	"github.com/prepzone/prepzone-backend/internal/middleware"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/service"
	ws "github.com/prepzone/prepzone-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WSHandler runs the live attempt stream: one socket per in-progress
// attempt carrying autosaves, heartbeats, and the final submission.
type WSHandler struct {
	attemptService *service.AttemptService
	upgrader       gorilla.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(attemptService *service.AttemptService) *WSHandler {
	return &WSHandler{
		attemptService: attemptService,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser origins are enforced by the CORS layer; the socket
			// authenticates with a token instead.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// AttemptStream godoc
// GET /api/v1/ws/attempts/:exam_id?token=...
func (h *WSHandler) AttemptStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn := ws.NewConn(raw)
	defer conn.Close()

	// Push current state so a reconnecting client can resync immediately.
	state, err := h.attemptService.GetState(c.Request.Context(), claims.UserID, examID)
	if err != nil {
		conn.WriteError(err.Error())
		return
	}
	conn.WriteEvent(ws.EventState, state)

	for {
		msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			state, err := h.attemptService.GetState(c.Request.Context(), claims.UserID, examID)
			if err != nil {
				conn.WriteError(err.Error())
				continue
			}
			conn.WriteEvent(ws.EventPong, gin.H{"remaining_seconds": state.RemainingSeconds})

		case ws.ActionAutosave:
			var req model.AutosaveRequest
			if err := json.Unmarshal(msg.Data, &req); err != nil || req.QuestionID == "" {
				conn.WriteError("malformed autosave payload")
				continue
			}
			if err := h.attemptService.Autosave(c.Request.Context(), claims.UserID, examID, &req); err != nil {
				conn.WriteError(err.Error())
				continue
			}
			conn.WriteEvent(ws.EventSaved, gin.H{"question_id": req.QuestionID})

		case ws.ActionSubmit:
			var req model.SubmitAttemptRequest
			if len(msg.Data) > 0 {
				if err := json.Unmarshal(msg.Data, &req); err != nil {
					conn.WriteError("malformed submit payload")
					continue
				}
			}
			result, err := h.attemptService.Submit(c.Request.Context(), claims.UserID, examID, req.Answers)
			if err != nil {
				conn.WriteError(err.Error())
				continue
			}
			conn.WriteEvent(ws.EventGraded, gin.H{"result": result})
			return

		default:
			conn.WriteError("unknown action")
		}
	}
}
