package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// WSHandler plays one quiz session per websocket connection.
type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

type leaderboardPayload struct {
	Limit int `json:"limit"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

func errorMessage(err error) outboundMessage[any] {
	payload, _ := classify(err)
	return outboundMessage[any]{Type: "error", Payload: payload}
}

func badPayload(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Kind: "bad_request", Message: msg}}
}

// ServeWS upgrades the request and binds the connection to a session.
// An existing session is resumed with ?sessionId=; otherwise a new one is created.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.URL.Query().Get("sessionId")

	var view domain.SessionView
	var err error
	if sessionID == "" {
		view, err = h.service.CreateSession(ctx)
	} else {
		view, err = h.service.Session(ctx, sessionID)
	}
	if err != nil {
		payload, status := classify(err)
		http.Error(w, payload.Message, status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Warn("ws write failed", zap.String("session_id", view.ID), zap.Error(err))
				return
			}
		}
	}()

	if enqueue(send, writerDone, outboundMessage[any]{Type: "session", Payload: view}) {
	read:
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				break
			}
			for _, msg := range h.handle(ctx, view.ID, inbound) {
				if !enqueue(send, writerDone, msg) {
					break read
				}
			}
		}
	}

	close(send)
	<-writerDone
}

// enqueue hands msg to the writer goroutine. It reports false once the writer has stopped.
func enqueue(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

func (h *WSHandler) handle(ctx context.Context, sessionID string, inbound inboundMessage) []outboundMessage[any] {
	switch inbound.Type {
	case "start":
		var req startRequest
		if err := json.Unmarshal(inbound.Payload, &req); err != nil {
			return []outboundMessage[any]{badPayload("invalid start payload")}
		}
		cfg, ok := req.config()
		if !ok {
			return []outboundMessage[any]{badPayload("unknown difficulty")}
		}
		view, err := h.service.Start(ctx, sessionID, cfg)
		if err != nil {
			return []outboundMessage[any]{errorMessage(err)}
		}
		return []outboundMessage[any]{{Type: "session", Payload: view}}

	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return []outboundMessage[any]{badPayload("invalid answer payload")}
		}
		feedback, err := h.service.Submit(ctx, sessionID, domain.AnswerSubmission{
			QuestionIndex: payload.QuestionIndex,
			Answer:        payload.Answer,
		})
		if err != nil {
			return []outboundMessage[any]{errorMessage(err)}
		}
		out := []outboundMessage[any]{{Type: "feedback", Payload: feedback}}
		if feedback.State == domain.StateCompleted {
			return append(out, h.result(ctx, sessionID))
		}
		view, err := h.service.Session(ctx, sessionID)
		if err != nil {
			return append(out, errorMessage(err))
		}
		return append(out, outboundMessage[any]{Type: "session", Payload: view})

	case "result":
		return []outboundMessage[any]{h.result(ctx, sessionID)}

	case "score":
		var req scoreRequest
		if err := json.Unmarshal(inbound.Payload, &req); err != nil {
			return []outboundMessage[any]{badPayload("invalid score payload")}
		}
		record, err := h.service.SubmitScore(ctx, sessionID, req.Player)
		if err != nil {
			return []outboundMessage[any]{errorMessage(err)}
		}
		return []outboundMessage[any]{
			{Type: "score", Payload: record},
			h.leaderboard(ctx, 0),
		}

	case "leaderboard":
		var req leaderboardPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &req); err != nil {
				return []outboundMessage[any]{badPayload("invalid leaderboard payload")}
			}
		}
		return []outboundMessage[any]{h.leaderboard(ctx, req.Limit)}

	default:
		return []outboundMessage[any]{badPayload("unsupported message type")}
	}
}

func (h *WSHandler) result(ctx context.Context, sessionID string) outboundMessage[any] {
	result, err := h.service.Result(ctx, sessionID)
	if err != nil {
		return errorMessage(err)
	}
	return outboundMessage[any]{Type: "result", Payload: result}
}

func (h *WSHandler) leaderboard(ctx context.Context, limit int) outboundMessage[any] {
	records, err := h.service.Leaderboard(ctx, limit)
	if err != nil {
		return errorMessage(err)
	}
	return outboundMessage[any]{Type: "leaderboard", Payload: records}
}
