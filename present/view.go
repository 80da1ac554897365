package present

import (
	"fmt"
	"slices"
	"strings"

	"github.com/programme-lv/unsolved/unsolved/unsolveddomain"
)

const ProblemBaseURL = "https://codeforces.com/problemset/problem"

// ProblemURL links to the problem statement on the judge.
func ProblemURL(baseURL string, key unsolveddomain.ProblemKey) string {
	return fmt.Sprintf("%s/%d/%s", strings.TrimRight(baseURL, "/"), key.ContestID, key.Index)
}

// ProblemLabel is the display text of a problem link, e.g. "1200-B: Two Arrays".
func ProblemLabel(p unsolveddomain.Problem) string {
	return fmt.Sprintf("%s: %s", p.Key(), p.Name)
}

type Problem struct {
	ContestID int    `json:"contestId"`
	Index     string `json:"index"`
	Name      string `json:"name"`
	Label     string `json:"label"`
	URL       string `json:"url"`
}

type Bucket struct {
	Rating   string    `json:"rating"` // rating number or "Unrated"
	Problems []Problem `json:"problems"`
}

type Tag struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type UnsolvedView struct {
	Handle  string   `json:"handle"`
	Total   int      `json:"total"`
	Buckets []Bucket `json:"buckets"`
	Tags    []Tag    `json:"tags"`
}

// NewUnsolvedView flattens the grouped result for rendering. Buckets are
// listed by ascending rating with Unrated last; tags keep their order.
func NewUnsolvedView(
	handle string,
	buckets *unsolveddomain.RatingBuckets,
	tags *unsolveddomain.TagCounts,
	problemBaseURL string,
) UnsolvedView {
	view := UnsolvedView{
		Handle:  handle,
		Buckets: make([]Bucket, 0, buckets.Len()),
		Tags:    make([]Tag, 0, tags.Len()),
	}

	for _, key := range SortedByRating(buckets) {
		records, _ := buckets.Get(key)
		if len(records) == 0 {
			continue
		}
		bucket := Bucket{Rating: key.String(), Problems: make([]Problem, len(records))}
		for i, r := range records {
			bucket.Problems[i] = Problem{
				ContestID: r.Problem.ContestID,
				Index:     r.Problem.Index,
				Name:      r.Problem.Name,
				Label:     ProblemLabel(r.Problem),
				URL:       ProblemURL(problemBaseURL, r.Key()),
			}
		}
		view.Total += len(records)
		view.Buckets = append(view.Buckets, bucket)
	}

	for tag, count := range tags.All() {
		view.Tags = append(view.Tags, Tag{Tag: tag, Count: count})
	}

	return view
}

// SortedByRating returns bucket keys by ascending rating, Unrated last.
func SortedByRating(buckets *unsolveddomain.RatingBuckets) []unsolveddomain.RatingKey {
	keys := buckets.Keys()
	slices.SortStableFunc(keys, func(a, b unsolveddomain.RatingKey) int {
		ra, aRated := a.Rating()
		rb, bRated := b.Rating()
		switch {
		case aRated && bRated:
			return ra - rb
		case aRated:
			return -1
		case bRated:
			return 1
		default:
			return 0
		}
	})
	return keys
}
