package unsolvedhttp

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/unsolved/httpjson"
	"github.com/programme-lv/unsolved/logger"
	"github.com/programme-lv/unsolved/present"
	"github.com/programme-lv/unsolved/unsolved/unsolvedsrvc"
)

// handleParam returns the handle exactly as the client sent it. chi matches
// on RawPath when it is set, so only then is the param still escaped.
func handleParam(r *http.Request) string {
	param := chi.URLParam(r, "handle")
	if r.URL.RawPath == "" {
		return param
	}
	if handle, err := url.PathUnescape(param); err == nil {
		return handle
	}
	return param
}

// compute runs the pipeline for the handle in the URL. On failure the
// error response has already been written and ok is false.
func (h *UnsolvedHttpHandler) compute(w http.ResponseWriter, r *http.Request, route string) (present.UnsolvedView, bool) {
	handle := handleParam(r)
	log := logger.FromContext(r.Context())

	if !h.allow(route + ":" + handle) {
		h.metrics.IncThrottled()
		httpjson.HandleError(log, w, newErrTooManyRequests(handle, h.cooldown))
		return present.UnsolvedView{}, false
	}

	res, err := h.srvc.ComputeUnsolved.Handle(r.Context(), unsolvedsrvc.ComputeUnsolvedParams{
		Handle: handle,
	})
	if err != nil {
		httpjson.HandleError(log, w, err)
		return present.UnsolvedView{}, false
	}

	return present.NewUnsolvedView(res.Handle, res.Buckets, res.Tags, h.problemBaseURL), true
}

func (h *UnsolvedHttpHandler) GetUnsolved(w http.ResponseWriter, r *http.Request) {
	view, ok := h.compute(w, r, "unsolved")
	if !ok {
		return
	}
	httpjson.WriteSuccessJson(w, view)
}

func (h *UnsolvedHttpHandler) GetTagChart(w http.ResponseWriter, r *http.Request) {
	view, ok := h.compute(w, r, "tags.png")
	if !ok {
		return
	}

	log := logger.FromContext(r.Context())
	if len(view.Tags) == 0 {
		httpjson.HandleError(log, w, newErrNoTags(view.Handle))
		return
	}

	var buf bytes.Buffer
	if err := present.RenderTagChart(&buf, view.Tags); err != nil {
		httpjson.HandleError(log, w, fmt.Errorf("failed to render tag chart: %w", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("failed to write tag chart", "error", err)
	}
}
