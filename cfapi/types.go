package cfapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/programme-lv/unsolved/unsolved/unsolveddomain"
)

// verdictAccepted is the judge's verdict string for a solved submission.
const verdictAccepted = "OK"

const (
	statusOK     = "OK"
	statusFailed = "FAILED"
)

type envelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

type submission struct {
	ID                  int64    `json:"id"`
	ContestID           int      `json:"contestId,omitempty"`
	CreationTimeSeconds int64    `json:"creationTimeSeconds"`
	Problem             *problem `json:"problem"`
	ProgrammingLanguage string   `json:"programmingLanguage"`
	Verdict             *string  `json:"verdict,omitempty"`
}

type problem struct {
	ContestID *int     `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    *int     `json:"rating,omitempty"`
	Tags      []string `json:"tags"`
}

func mapVerdict(v *string) unsolveddomain.Verdict {
	if v == nil {
		return unsolveddomain.NotAccepted("")
	}
	if *v == verdictAccepted {
		return unsolveddomain.Accepted
	}
	return unsolveddomain.NotAccepted(*v)
}

func mapSubmission(pos int, s submission) (unsolveddomain.Submission, error) {
	if s.Problem == nil {
		return unsolveddomain.Submission{}, fmt.Errorf("submission #%d (id %d) has no problem", pos, s.ID)
	}
	p := s.Problem
	if p.ContestID == nil {
		return unsolveddomain.Submission{}, fmt.Errorf("submission #%d (id %d): problem has no contestId", pos, s.ID)
	}
	if p.Index == "" {
		return unsolveddomain.Submission{}, fmt.Errorf("submission #%d (id %d): problem has no index", pos, s.ID)
	}

	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)

	return unsolveddomain.Submission{
		ID: s.ID,
		Problem: unsolveddomain.Problem{
			ContestID: *p.ContestID,
			Index:     p.Index,
			Name:      p.Name,
			Rating:    p.Rating,
			Tags:      tags,
		},
		Verdict:   mapVerdict(s.Verdict),
		Language:  s.ProgrammingLanguage,
		CreatedAt: time.Unix(s.CreationTimeSeconds, 0).UTC(),
	}, nil
}
