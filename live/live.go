// Package live is a thin demonstration shell over the morph engine: an HTTP
// handler that holds one server-side document, accepts replacement markup,
// morphs the held tree toward it and pushes the re-serialized result to
// connected WebSocket viewers. Because the document is morphed rather than
// rebuilt, node identity and mutation counts are observable across pushes.
package live

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/morphlex/morphlex"
	"github.com/morphlex/morphlex/dom"
)

var wsUpgrader = websocket.Upgrader{}

// Config configures a live preview Handler.
type Config struct {
	// Seed is the initial HTML document to hold and serve.
	Seed string

	// PreserveChanges is passed through to the morph options.
	PreserveChanges bool

	// AttributeGuards are expr-lang rules; attributes matched by any rule
	// are never touched by a push.
	AttributeGuards []string

	// NodeGuards are expr-lang rules; nodes matched by any rule are never
	// removed or replaced by a push.
	NodeGuards []string

	// Logger configures logging for internal events.
	Logger *slog.Logger
}

// PushResult reports what one push mutated.
type PushResult struct {
	NodesAdded        int `json:"nodesAdded"`
	NodesRemoved      int `json:"nodesRemoved"`
	AttributesUpdated int `json:"attributesUpdated"`
	Subscribers       int `json:"subscribers"`
}

// Handler serves the held document, accepts pushes and fans the result out
// to WebSocket subscribers.
type Handler struct {
	logger *slog.Logger
	router chi.Router

	attrGuard morphlex.AttributeGuard
	nodeGuard morphlex.NodeGuard
	preserve  bool

	mu   sync.Mutex
	doc  *dom.Node
	subs map[*websocket.Conn]struct{}
}

// New parses the seed document and compiles the guard rules.
func New(cfg Config) (*Handler, error) {
	doc, err := dom.ParseString(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("parse seed document: %w", err)
	}
	h := &Handler{
		logger:   cfg.Logger,
		preserve: cfg.PreserveChanges,
		doc:      doc,
		subs:     make(map[*websocket.Conn]struct{}),
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(cfg.AttributeGuards) > 0 {
		if h.attrGuard, err = morphlex.CompileAttributeGuard(cfg.AttributeGuards...); err != nil {
			return nil, err
		}
	}
	if len(cfg.NodeGuards) > 0 {
		if h.nodeGuard, err = morphlex.CompileNodeGuard(cfg.NodeGuards...); err != nil {
			return nil, err
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", h.serveDocument)
	r.Get("/ws", h.serveWS)
	r.Post("/push", h.servePush)
	h.router = r

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Document returns the current serialized (minified) document.
func (h *Handler) Document() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renderLocked()
}

func (h *Handler) renderLocked() (string, error) {
	s, err := dom.RenderString(h.doc)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return minifyHTML(s), nil
}

func (h *Handler) serveDocument(w http.ResponseWriter, r *http.Request) {
	s, err := h.Document()
	if err != nil {
		h.logger.Error("Serve document", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, s)
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Upgrade websocket", "error", err)
		return
	}

	// the mutex also serializes this initial write against Push broadcasts
	h.mu.Lock()
	doc, err := h.renderLocked()
	if err == nil {
		err = ws.WriteMessage(websocket.TextMessage, []byte(doc))
	}
	if err == nil {
		h.subs[ws] = struct{}{}
	}
	h.mu.Unlock()

	if err != nil {
		h.logger.Error("Send initial document", "error", err)
		_ = ws.Close()
		return
	}

	// Subscribers only listen; the read loop exists to notice the close.
	go func() {
		defer h.dropSubscriber(ws)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("Read websocket message", "error", err)
				}
				return
			}
		}
	}()
}

func (h *Handler) dropSubscriber(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.subs, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

func (h *Handler) servePush(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	res, err := h.Push(string(body))
	if err != nil {
		h.logger.Error("Push document", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// Push parses markup as a full document, morphs the held document toward it
// and broadcasts the result. It reports the mutations the morph committed.
func (h *Handler) Push(markup string) (*PushResult, error) {
	ref, err := dom.ParseString(markup)
	if err != nil {
		return nil, fmt.Errorf("parse pushed document: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	res := &PushResult{}
	opts := &morphlex.Options{
		PreserveChanges:        h.preserve,
		BeforeAttributeUpdated: h.attrGuard,
		BeforeNodeRemoved:      h.nodeGuard,
		AfterNodeAdded:         func(*dom.Node) { res.NodesAdded++ },
		AfterNodeRemoved:       func(*dom.Node) { res.NodesRemoved++ },
		AfterAttributeUpdated:  func(*dom.Node, string, *string) { res.AttributesUpdated++ },
	}
	if err := morphlex.MorphDocument(h.doc, ref, opts); err != nil {
		return nil, err
	}

	doc, err := h.renderLocked()
	if err != nil {
		return nil, err
	}
	for ws := range h.subs {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(doc)); err != nil {
			h.logger.Warn("Broadcast to subscriber", "error", err)
			delete(h.subs, ws)
			_ = ws.Close()
		}
	}
	res.Subscribers = len(h.subs)
	return res, nil
}
