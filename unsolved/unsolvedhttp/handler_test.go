package unsolvedhttp_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/unsolved/cfapi"
	"github.com/programme-lv/unsolved/metrics"
	"github.com/programme-lv/unsolved/present"
	"github.com/programme-lv/unsolved/unsolved/unsolvedhttp"
	"github.com/programme-lv/unsolved/unsolved/unsolvedsrvc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const judgeBody = `{"status":"OK","result":[
  {"id":4,"problem":{"contestId":1500,"index":"C","name":"Tree","rating":1900,"tags":["trees","dp"]},"verdict":"WRONG_ANSWER"},
  {"id":3,"problem":{"contestId":1500,"index":"A","name":"Sum","rating":800,"tags":["math"]},"verdict":"OK"},
  {"id":2,"problem":{"contestId":1500,"index":"A","name":"Sum","rating":800,"tags":["math"]},"verdict":"WRONG_ANSWER"},
  {"id":1,"problem":{"contestId":1501,"index":"B","name":"Guess","tags":["dp"]},"verdict":"TIME_LIMIT_EXCEEDED"}
]}`

type testEnv struct {
	router     http.Handler
	judgeCalls *atomic.Int32
	metrics    *metrics.Metrics
}

func setup(t *testing.T, judge http.HandlerFunc, cooldown time.Duration) testEnv {
	t.Helper()
	calls := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		judge(w, r)
	}))
	t.Cleanup(server.Close)

	m := metrics.New(prometheus.NewRegistry())
	client := cfapi.NewClient(cfapi.WithHTTPClient(server.Client()), cfapi.WithBaseURL(server.URL))
	srvc := unsolvedsrvc.NewUnsolvedSrvc(client, m)
	handler := unsolvedhttp.NewUnsolvedHttpHandler(srvc, present.ProblemBaseURL, cooldown, m)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return testEnv{router: r, judgeCalls: calls, metrics: m}
}

func serveJudge(body string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetUnsolved(t *testing.T) {
	env := setup(t, serveJudge(judgeBody, http.StatusOK), 0)

	w := get(t, env.router, "/users/petr/unsolved")
	require.Equal(t, http.StatusOK, w.Code, "response body: %s", w.Body.String())

	var resp struct {
		Status string               `json:"status"`
		Data   present.UnsolvedView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)

	view := resp.Data
	require.Equal(t, "petr", view.Handle)
	require.Equal(t, 2, view.Total)
	require.Len(t, view.Buckets, 2)
	require.Equal(t, "1900", view.Buckets[0].Rating)
	require.Equal(t, "Unrated", view.Buckets[1].Rating)
	require.Equal(t, "https://codeforces.com/problemset/problem/1500/C", view.Buckets[0].Problems[0].URL)
	require.Equal(t, []present.Tag{{Tag: "trees", Count: 1}, {Tag: "dp", Count: 2}}, view.Tags)
}

func TestGetUnsolvedEmptyHistory(t *testing.T) {
	env := setup(t, serveJudge(`{"status":"OK","result":[]}`, http.StatusOK), 0)

	w := get(t, env.router, "/users/newbie/unsolved")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t,
		`{"status":"success","data":{"handle":"newbie","total":0,"buckets":[],"tags":[]}}`,
		w.Body.String())
}

func TestGetUnsolvedUnknownHandle(t *testing.T) {
	env := setup(t, serveJudge(
		`{"status":"FAILED","comment":"handle: User with handle ghost not found"}`,
		http.StatusBadRequest), 0)

	w := get(t, env.router, "/users/ghost/unsolved")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Status  string `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "error", resp.Status)
	require.Equal(t, unsolvedsrvc.ErrCodeHandleNotFound, resp.Code)
	require.Equal(t, "fetch failed: handle: User with handle ghost not found", resp.Message)
}

func TestGetUnsolvedJudgeDown(t *testing.T) {
	env := setup(t, serveJudge("bad gateway", http.StatusBadGateway), 0)

	w := get(t, env.router, "/users/petr/unsolved")
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, w.Body.String(), unsolvedsrvc.ErrCodeFetchFailedTransport)
	require.Contains(t, w.Body.String(), "fetch failed: user.status returned status 502")
}

func TestGetUnsolvedCooldown(t *testing.T) {
	env := setup(t, serveJudge(judgeBody, http.StatusOK), time.Hour)

	require.Equal(t, http.StatusOK, get(t, env.router, "/users/petr/unsolved").Code)

	w := get(t, env.router, "/users/petr/unsolved")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Contains(t, w.Body.String(), unsolvedhttp.ErrCodeTooManyRequests)
	require.Equal(t, int32(1), env.judgeCalls.Load(), "throttled request must not reach the judge")
	require.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Throttled))

	// other handles and the chart route have their own cooldown
	require.Equal(t, http.StatusOK, get(t, env.router, "/users/tourist/unsolved").Code)
	require.Equal(t, http.StatusOK, get(t, env.router, "/users/petr/unsolved/tags.png").Code)
	require.Equal(t, int32(3), env.judgeCalls.Load())
}

func TestGetUnsolvedNoCooldownRefetches(t *testing.T) {
	env := setup(t, serveJudge(judgeBody, http.StatusOK), 0)

	get(t, env.router, "/users/petr/unsolved")
	get(t, env.router, "/users/petr/unsolved")
	require.Equal(t, int32(2), env.judgeCalls.Load())
}

func TestGetUnsolvedHandleReachesJudgeUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		handle string
	}{
		{name: "escaped percent", path: "/users/a%2541/unsolved", handle: "a%41"},
		{name: "escaped slash", path: "/users/a%2Fb/unsolved", handle: "a/b"},
		{name: "non-ascii", path: "/users/t%C3%BCrk/unsolved", handle: "türk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			env := setup(t, func(w http.ResponseWriter, r *http.Request) {
				seen = r.URL.Query().Get("handle")
				serveJudge(`{"status":"OK","result":[]}`, http.StatusOK)(w, r)
			}, 0)

			w := get(t, env.router, tt.path)
			require.Equal(t, http.StatusOK, w.Code, "response body: %s", w.Body.String())
			require.Equal(t, tt.handle, seen)

			var resp struct {
				Data present.UnsolvedView `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tt.handle, resp.Data.Handle)
		})
	}
}

func TestGetTagChart(t *testing.T) {
	env := setup(t, serveJudge(judgeBody, http.StatusOK), 0)

	w := get(t, env.router, "/users/petr/unsolved/tags.png")
	require.Equal(t, http.StatusOK, w.Code, "response body: %s", w.Body.String())
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestGetTagChartNoTags(t *testing.T) {
	env := setup(t, serveJudge(
		`{"status":"OK","result":[{"id":1,"problem":{"contestId":1,"index":"A","name":"x","tags":[]},"verdict":"WRONG_ANSWER"}]}`,
		http.StatusOK), 0)

	w := get(t, env.router, "/users/petr/unsolved/tags.png")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), unsolvedhttp.ErrCodeNoTags)
}
