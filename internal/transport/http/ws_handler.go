// Package http serves the live quiz session over a websocket: the role the
// browser quiz page played in the hosted UI. A connected client receives the
// section material once, then a stream of countdown/state snapshots, and
// drives the session with select and submit messages.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"aula-quiz-client/internal/domain"
	"aula-quiz-client/internal/quiz"
	"aula-quiz-client/internal/session"
)

// MaterialSource provides the section and question content for a session.
// Satisfied by the gateway client and by the catalog cache wrapped around it.
type MaterialSource interface {
	GetSection(ctx context.Context, sectionID int) (domain.Section, error)
	GetQuestionsBySection(ctx context.Context, sectionID int) ([]domain.Question, error)
}

type SessionHandler struct {
	material   MaterialSource
	sessions   session.Store
	countdowns quiz.CountdownStore
	submitter  quiz.Submitter
	upgrader   websocket.Upgrader
}

func NewSessionHandler(material MaterialSource, sessions session.Store, countdowns quiz.CountdownStore, submitter quiz.Submitter) *SessionHandler {
	return &SessionHandler{
		material:   material,
		sessions:   sessions,
		countdowns: countdowns,
		submitter:  submitter,
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

type selectPayload struct {
	QuestionID int `json:"questionId"`
	OptionID   int `json:"optionId"`
}

type materialPayload struct {
	Section   domain.Section    `json:"section"`
	Questions []domain.Question `json:"questions"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one quiz-taking session for the
// connection's lifetime. Closing the connection tears the session down
// without clearing the persisted countdown, so reconnecting resumes it.
func (h *SessionHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sectionID, err := strconv.Atoi(r.URL.Query().Get("sectionId"))
	if err != nil || sectionID <= 0 {
		http.Error(w, "missing or invalid sectionId", http.StatusBadRequest)
		return
	}

	userID, err := session.CurrentUserID(r.Context(), h.sessions)
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	sec, err := h.material.GetSection(r.Context(), sectionID)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrSectionNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	questions, err := h.material.GetQuestionsBySection(r.Context(), sectionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	collector := quiz.NewCollector()
	engine := quiz.NewEngine(sec, userID, h.countdowns, h.submitter, collector)
	if err := engine.Start(context.Background()); err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer engine.Stop()

	updates, cancel := engine.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "material", Payload: materialPayload{Section: sec, Questions: questions}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}
				continue
			}
			engine.Select(payload.QuestionID, payload.OptionID)
		case "submit":
			// The connected page confirms with the user before sending this.
			if err := engine.Submit(context.Background()); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "submitted", Payload: engine.Snapshot()}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
