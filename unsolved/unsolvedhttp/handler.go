package unsolvedhttp

import (
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/unsolved/metrics"
	"github.com/programme-lv/unsolved/unsolved/unsolvedsrvc"
)

type UnsolvedHttpHandler struct {
	srvc           *unsolvedsrvc.UnsolvedSrvc
	problemBaseURL string
	metrics        *metrics.Metrics

	// per-handle cooldown between fetches, the judge rate limits per IP
	cooldown time.Duration
	lastReq  map[string]time.Time // route + handle -> last request time
	rateLock sync.Mutex
	now      func() time.Time
}

func NewUnsolvedHttpHandler(
	srvc *unsolvedsrvc.UnsolvedSrvc,
	problemBaseURL string,
	cooldown time.Duration,
	m *metrics.Metrics,
) *UnsolvedHttpHandler {
	return &UnsolvedHttpHandler{
		srvc:           srvc,
		problemBaseURL: problemBaseURL,
		metrics:        m,
		cooldown:       cooldown,
		lastReq:        make(map[string]time.Time),
		now:            time.Now,
	}
}

func (h *UnsolvedHttpHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users/{handle}/unsolved", func(r chi.Router) {
		r.Get("/", h.GetUnsolved)
		r.Get("/tags.png", h.GetTagChart)
	})
}

// allow reports whether key may trigger a fetch now and, if so, records it.
func (h *UnsolvedHttpHandler) allow(key string) bool {
	if h.cooldown <= 0 {
		return true
	}

	h.rateLock.Lock()
	defer h.rateLock.Unlock()

	now := h.now()
	if last, ok := h.lastReq[key]; ok && now.Sub(last) < h.cooldown {
		return false
	}
	h.lastReq[key] = now

	if len(h.lastReq) > 1024 {
		for k, t := range h.lastReq {
			if now.Sub(t) >= h.cooldown {
				delete(h.lastReq, k)
			}
		}
	}
	return true
}
