package unsolveddomain

import (
	"fmt"
	"time"
)

// ProblemKey identifies a judge problem within a single fetch result.
type ProblemKey struct {
	ContestID int
	Index     string
}

func (k ProblemKey) String() string {
	return fmt.Sprintf("%d-%s", k.ContestID, k.Index)
}

type Problem struct {
	ContestID int
	Index     string
	Name      string
	Rating    *int // nil when the judge has not rated the problem
	Tags      []string
}

func (p Problem) Key() ProblemKey {
	return ProblemKey{ContestID: p.ContestID, Index: p.Index}
}

// Submission is one attempt at a problem as reported by the judge.
type Submission struct {
	ID        int64
	Problem   Problem
	Verdict   Verdict
	Language  string
	CreatedAt time.Time
}

// Record is the representative submission of an unsolved problem.
type Record struct {
	Problem      Problem
	SubmissionID int64
	Verdict      Verdict
}

func (r Record) Key() ProblemKey {
	return r.Problem.Key()
}

func newRecord(s Submission) Record {
	return Record{
		Problem:      s.Problem,
		SubmissionID: s.ID,
		Verdict:      s.Verdict,
	}
}
