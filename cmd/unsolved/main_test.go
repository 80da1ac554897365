package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/programme-lv/unsolved/cfapi"
	"github.com/programme-lv/unsolved/present"
	"github.com/programme-lv/unsolved/unsolved/unsolvedsrvc"
	"github.com/stretchr/testify/require"
)

const judgeBody = `{"status":"OK","result":[
  {"id":2,"problem":{"contestId":1200,"index":"B","name":"Two Arrays","rating":1200,"tags":["dp"]},"verdict":"WRONG_ANSWER"},
  {"id":1,"problem":{"contestId":1200,"index":"A","name":"Sum","rating":800,"tags":["math"]},"verdict":"OK"}
]}`

func newSrvc(t *testing.T, status int, body string) *unsolvedsrvc.UnsolvedSrvc {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return unsolvedsrvc.NewUnsolvedSrvc(cfapi.NewClient(cfapi.WithBaseURL(server.URL)), nil)
}

func TestRunText(t *testing.T) {
	srvc := newSrvc(t, http.StatusOK, judgeBody)
	chart := filepath.Join(t.TempDir(), "tags.png")

	var out bytes.Buffer
	err := run(context.Background(), &out, srvc, runOpts{
		handle:         "petr",
		problemBaseURL: present.ProblemBaseURL,
		chartPath:      chart,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Rating:1200 problems")
	require.Contains(t, out.String(), "1200-B: Two Arrays")
	require.NotContains(t, out.String(), "1200-A")

	png, err := os.ReadFile(chart)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRunJSON(t *testing.T) {
	srvc := newSrvc(t, http.StatusOK, judgeBody)

	var out bytes.Buffer
	err := run(context.Background(), &out, srvc, runOpts{
		handle:         "petr",
		problemBaseURL: present.ProblemBaseURL,
		json:           true,
	})
	require.NoError(t, err)

	var view present.UnsolvedView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	require.Equal(t, 1, view.Total)
	require.Equal(t, []present.Tag{{Tag: "dp", Count: 1}}, view.Tags)
}

func TestRunFetchFailed(t *testing.T) {
	srvc := newSrvc(t, http.StatusBadRequest, `{"status":"FAILED","comment":"handle: User with handle ghost not found"}`)

	var out bytes.Buffer
	err := run(context.Background(), &out, srvc, runOpts{handle: "ghost"})
	require.ErrorContains(t, err, "fetch failed: handle: User with handle ghost not found")
	require.Zero(t, out.Len(), "no partial output on failure")
}

func TestRunNoTagsSkipsChart(t *testing.T) {
	srvc := newSrvc(t, http.StatusOK, `{"status":"OK","result":[]}`)
	chart := filepath.Join(t.TempDir(), "tags.png")

	var out, notes bytes.Buffer
	err := run(context.Background(), &out, srvc, runOpts{
		handle:         "newbie",
		problemBaseURL: present.ProblemBaseURL,
		chartPath:      chart,
		notes:          &notes,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "nothing left unsolved")
	require.Contains(t, notes.String(), "no tags to chart")
	require.NoFileExists(t, chart)
}

func TestRunNoTagsJSONStaysClean(t *testing.T) {
	srvc := newSrvc(t, http.StatusOK, `{"status":"OK","result":[]}`)
	chart := filepath.Join(t.TempDir(), "tags.png")

	var out, notes bytes.Buffer
	err := run(context.Background(), &out, srvc, runOpts{
		handle:    "newbie",
		chartPath: chart,
		json:      true,
		notes:     &notes,
	})
	require.NoError(t, err)

	var view present.UnsolvedView
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	require.Zero(t, view.Total)
	require.NotEmpty(t, notes.String())
	require.NoFileExists(t, chart)
}

func TestModelSkipsChartWithoutTags(t *testing.T) {
	srvc := newSrvc(t, http.StatusOK, `{"status":"OK","result":[]}`)
	chart := filepath.Join(t.TempDir(), "tags.png")
	var m tea.Model = initialModel(srvc, present.ProblemBaseURL, chart)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("newbie")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(m.(model).fetchCmd("newbie")())

	require.NoError(t, m.(model).err)
	require.True(t, m.(model).chartSkipped)
	require.Contains(t, m.View(), "no tags to chart")
	require.NoFileExists(t, chart)
}

func TestModelFlow(t *testing.T) {
	srvc := newSrvc(t, http.StatusOK, judgeBody)
	var m tea.Model = initialModel(srvc, present.ProblemBaseURL, "")

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	for _, r := range "petr" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, phaseLoading, m.(model).phase)
	require.Contains(t, m.View(), "Loading submissions of petr")

	msg := m.(model).fetchCmd("petr")()
	m, _ = m.Update(msg)
	require.Equal(t, phaseResults, m.(model).phase)
	require.NoError(t, m.(model).err)
	require.Contains(t, m.View(), "1200-B: Two Arrays")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	require.Equal(t, phaseEnterHandle, m.(model).phase)
	require.Empty(t, m.(model).input.Value())
}

func TestModelShowsError(t *testing.T) {
	srvc := newSrvc(t, http.StatusServiceUnavailable, "down")
	var m tea.Model = initialModel(srvc, present.ProblemBaseURL, "")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("petr")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(m.(model).fetchCmd("petr")())

	require.Error(t, m.(model).err)
	require.Contains(t, m.View(), "fetch failed")
}

func TestModelIgnoresEmptyHandle(t *testing.T) {
	srvc := newSrvc(t, http.StatusOK, judgeBody)
	var m tea.Model = initialModel(srvc, present.ProblemBaseURL, "")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Equal(t, phaseEnterHandle, m.(model).phase)
}
