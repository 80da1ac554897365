package unsolveddomain_test

import (
	"testing"

	"github.com/programme-lv/unsolved/unsolved/unsolveddomain"
	"github.com/stretchr/testify/require"
)

func record(contestID int, index string, rating *int, tags ...string) unsolveddomain.Record {
	p := problem(contestID, index)
	p.Rating = rating
	p.Tags = tags
	return unsolveddomain.Record{Problem: p}
}

func TestGroupByRatingSingleRated(t *testing.T) {
	b := record(2, "B", intPtr(1200), "dp")

	buckets := unsolveddomain.GroupByRating([]unsolveddomain.Record{b})

	require.Equal(t, 1, buckets.Len())
	got, ok := buckets.Get(unsolveddomain.Rated(1200))
	require.True(t, ok)
	require.Equal(t, []unsolveddomain.Record{b}, got)
}

func TestGroupByRatingUnrated(t *testing.T) {
	c := record(3, "C", nil)

	buckets := unsolveddomain.GroupByRating([]unsolveddomain.Record{c})

	require.Equal(t, []unsolveddomain.RatingKey{unsolveddomain.Unrated}, buckets.Keys())
	got, _ := buckets.Get(unsolveddomain.Unrated)
	require.Equal(t, []unsolveddomain.Record{c}, got)
	require.Equal(t, "Unrated", unsolveddomain.Unrated.String())
}

func TestGroupByRatingKeepsOrder(t *testing.T) {
	r1 := record(1, "A", intPtr(1600))
	r2 := record(1, "B", intPtr(800))
	r3 := record(1, "C", nil)
	r4 := record(2, "A", intPtr(1600))
	r5 := record(2, "B", intPtr(800))

	buckets := unsolveddomain.GroupByRating([]unsolveddomain.Record{r1, r2, r3, r4, r5})

	// bucket keys are left unsorted, in first-occurrence order
	require.Equal(t, []unsolveddomain.RatingKey{
		unsolveddomain.Rated(1600),
		unsolveddomain.Rated(800),
		unsolveddomain.Unrated,
	}, buckets.Keys())

	got, _ := buckets.Get(unsolveddomain.Rated(1600))
	require.Equal(t, []unsolveddomain.Record{r1, r4}, got)
	got, _ = buckets.Get(unsolveddomain.Rated(800))
	require.Equal(t, []unsolveddomain.Record{r2, r5}, got)
}

func TestGroupByRatingZeroRatingIsRated(t *testing.T) {
	r := record(1, "A", intPtr(0))

	buckets := unsolveddomain.GroupByRating([]unsolveddomain.Record{r})

	require.True(t, buckets.Has(unsolveddomain.Rated(0)))
	require.False(t, buckets.Has(unsolveddomain.Unrated))
}

func TestGroupByRatingEmpty(t *testing.T) {
	buckets := unsolveddomain.GroupByRating(nil)
	require.Equal(t, 0, buckets.Len())
	require.Empty(t, buckets.Keys())
}
