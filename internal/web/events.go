package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

type stateHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newStateHub() *stateHub {
	return &stateHub{subs: map[chan struct{}]struct{}{}}
}

func (h *stateHub) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}
}

func (h *stateHub) broadcast() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

// stateBroadcaster polls the saved state and wakes subscribers when it changes.
type stateBroadcaster struct {
	loader Loader
	every  time.Duration
	log    *slog.Logger
	hub    *stateHub

	mu sync.Mutex
	fp string

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newStateBroadcaster(loader Loader, every time.Duration, log *slog.Logger) *stateBroadcaster {
	return &stateBroadcaster{
		loader: loader,
		every:  every,
		log:    log,
		hub:    newStateHub(),
		stopCh: make(chan struct{}),
	}
}

func (b *stateBroadcaster) Stop() {
	if b == nil {
		return
	}
	b.stopOnce.Do(func() {
		close(b.stopCh)
	})
}

func (b *stateBroadcaster) currentFingerprint() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fp
}

// fingerprint hashes the saved state; empty when nothing is saved.
func (b *stateBroadcaster) fingerprint(ctx context.Context) (string, error) {
	st, ok, err := b.loader.Load(ctx)
	if err != nil || !ok {
		return "", err
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8]), nil
}

// poll checks once and reports whether the state changed since the last poll.
func (b *stateBroadcaster) poll(ctx context.Context) bool {
	fp, err := b.fingerprint(ctx)
	if err != nil {
		b.log.Debug("poll state", "err", err)
		return false
	}
	b.mu.Lock()
	changed := fp != b.fp
	b.fp = fp
	b.mu.Unlock()
	if changed {
		b.hub.broadcast()
	}
	return changed
}

func (b *stateBroadcaster) watchLoop() {
	// Seed without waking anyone.
	if fp, err := b.fingerprint(context.Background()); err == nil {
		b.mu.Lock()
		b.fp = fp
		b.mu.Unlock()
	}

	t := time.NewTicker(b.every)
	defer t.Stop()
	for {
		select {
		case <-b.stopCh:
			return
		case <-t.C:
		}
		ctx, cancel := context.WithTimeout(context.Background(), b.every)
		b.poll(ctx)
		cancel()
	}
}

// handleEvents streams canvas patches to the preview page whenever the saved
// state changes.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	_ = sse.MarshalAndPatchSignals(map[string]any{"formVersion": s.bc.currentFingerprint()})

	ch, cancel := s.bc.hub.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			html, err := s.renderCanvas(sse.Context())
			if err != nil {
				_ = sse.ExecuteScript(fmt.Sprintf(`console.error(%q)`, err.Error()))
				continue
			}
			if strings.TrimSpace(html) == "" {
				continue
			}
			_ = sse.PatchElements(html, datastar.WithSelector("#formbench-form"), datastar.WithMode(datastar.ElementPatchModeOuter))
			_ = sse.MarshalAndPatchSignals(map[string]any{"formVersion": s.bc.currentFingerprint()})
		}
	}
}

func (s *Server) renderCanvas(ctx context.Context) (string, error) {
	st, saved, err := s.loadState(ctx)
	if err != nil {
		return "", err
	}
	vm, err := s.canvasVM(st, saved)
	if err != nil {
		return "", err
	}
	return s.renderTemplate("canvas", vm)
}
