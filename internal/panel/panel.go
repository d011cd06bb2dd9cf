// Package panel is a man-in-the-middle debug panel for the model
// endpoint. The loop points at the panel instead of the real endpoint;
// every chat completion request parks here until a browser reviews it,
// optionally edits the body or canvas, and either forwards it upstream
// or answers by hand. Browsers follow the traffic over SSE.
package panel

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server intercepts chat completion traffic between the loop and the
// upstream endpoint.
type Server struct {
	addr     string
	upstream string
	logger   *slog.Logger

	router *chi.Mux
	events *broker

	editedRequest  chan string
	editedResponse chan string
	turn           atomic.Int64

	// upstreamClient is swappable for tests.
	upstreamClient *http.Client
}

// NewServer wires the panel routes. addr is the listen address the loop
// and browsers talk to; upstream is the real chat completions URL.
func NewServer(addr, upstream string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		addr:           addr,
		upstream:       upstream,
		logger:         logger,
		events:         newBroker(),
		editedRequest:  make(chan string, 1),
		editedResponse: make(chan string, 1),
		upstreamClient: &http.Client{Timeout: 5 * time.Minute},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/", s.handleIndex)
	r.Get("/events", s.handleEvents)
	r.Post("/v1/chat/completions", s.handleCompletions)
	r.Post("/forward_request", s.handleForwardRequest)
	r.Post("/forward_response", s.handleForwardResponse)
	r.Post("/skip_upstream", s.handleSkipUpstream)

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks serving the panel.
func (s *Server) ListenAndServe() error {
	s.logger.Info("panel listening", "addr", s.addr, "upstream", s.upstream)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	io.WriteString(w, panelHTML)
}

// handleCompletions parks the intercepted request until the browser
// forwards or answers it, then parks the upstream response the same way.
func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(raw) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}

	turn := s.turn.Add(1)
	rawStr := string(raw)
	d := extractDisplay(raw)
	drain(s.editedRequest)
	drain(s.editedResponse)
	stripped := stripImages(rawStr)

	s.events.broadcast("incoming_request", map[string]any{
		"turn":              turn,
		"model":             d.Model,
		"story":             d.Story,
		"screenshot_b64":    d.ScreenshotB64,
		"raw_body_stripped": stripped,
	})
	s.logger.Info("request intercepted", "turn", turn, "model", d.Model)

	var edited string
	select {
	case edited = <-s.editedRequest:
	case <-r.Context().Done():
		return
	}

	var sig struct {
		Skip    bool   `json:"__skip"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(edited), &sig); err == nil && sig.Skip {
		model := d.Model
		if model == "" {
			model = "human"
		}
		s.logger.Info("manual response", "turn", turn, "chars", len(sig.Content))
		writeJSON(w, http.StatusOK, map[string]any{
			"id":      fmt.Sprintf("deskloop-%d", turn),
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": sig.Content},
				"finish_reason": "stop",
			}},
			"usage": map[string]int{"prompt_tokens": 0, "completion_tokens": 0, "total_tokens": 0},
		})
		s.events.broadcast("turn_complete", map[string]any{"turn": turn, "mode": "manual"})
		return
	}

	editedStripped := stripped
	canvas := d.ScreenshotB64
	var edit struct {
		RawBodyStripped *string `json:"raw_body_stripped"`
		CanvasB64       *string `json:"canvas_b64"`
	}
	if err := json.Unmarshal([]byte(edited), &edit); err == nil {
		if edit.RawBodyStripped != nil {
			editedStripped = *edit.RawBodyStripped
		}
		if edit.CanvasB64 != nil {
			canvas = *edit.CanvasB64
		}
	} else {
		editedStripped = edited
	}

	finalBody := injectImage(editedStripped, canvas, rawStr)
	s.events.broadcast("forwarding", map[string]any{"turn": turn})

	status, upResp := s.forwardUpstream(finalBody)
	s.logger.Info("upstream replied", "turn", turn, "status", status, "chars", len(upResp))

	assistant := ""
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(upResp), &parsed); err == nil && len(parsed.Choices) > 0 {
		assistant = parsed.Choices[0].Message.Content
	}

	s.events.broadcast("incoming_response", map[string]any{
		"turn":              turn,
		"status":            status,
		"assistant_content": assistant,
		"raw_body":          upResp,
	})

	var final string
	select {
	case final = <-s.editedResponse:
	case <-r.Context().Done():
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, final)
	s.events.broadcast("turn_complete", map[string]any{"turn": turn, "mode": "proxy"})
}

func (s *Server) forwardUpstream(body string) (int, string) {
	resp, err := s.upstreamClient.Post(s.upstream, "application/json", strings.NewReader(body))
	if err != nil {
		msg, _ := json.Marshal(map[string]string{"error": "upstream failed: " + err.Error()})
		return http.StatusBadGateway, string(msg)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		msg, _ := json.Marshal(map[string]string{"error": "upstream read failed: " + err.Error()})
		return http.StatusBadGateway, string(msg)
	}
	return resp.StatusCode, string(data)
}

func (s *Server) handleForwardRequest(w http.ResponseWriter, r *http.Request) {
	body, err := readJSONBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if !s.offer(s.editedRequest, body) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no pending request"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleForwardResponse(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RawBody string `json:"raw_body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	body := payload.RawBody
	if body == "" {
		body = "{}"
	}
	if !s.offer(s.editedResponse, body) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no pending response"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSkipUpstream(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sig, _ := json.Marshal(map[string]any{"__skip": true, "content": payload.Content})
	if !s.offer(s.editedRequest, string(sig)) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no pending request"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := s.events.subscribe()
	defer s.events.unsubscribe(ch)

	ping := time.NewTicker(15 * time.Second)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		case <-ping.C:
			if _, err := io.WriteString(w, "event: ping\ndata: {}\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

// offer is a non-blocking send; a full queue means no handler is parked
// waiting on the other side.
func (s *Server) offer(ch chan string, v string) bool {
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}

func drain(ch chan string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

func readJSONBody(r *http.Request) (string, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "{}", nil
	}
	if !json.Valid(data) {
		return "", fmt.Errorf("invalid json body")
	}
	return string(data), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
