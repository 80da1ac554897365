package unsolveddomain

import "strconv"

// RatingKey groups problems by declared difficulty. The zero value is the
// "Unrated" key.
type RatingKey struct {
	rating int
	rated  bool
}

var Unrated = RatingKey{}

func Rated(rating int) RatingKey {
	return RatingKey{rating: rating, rated: true}
}

func RatingKeyOf(p Problem) RatingKey {
	if p.Rating == nil {
		return Unrated
	}
	return Rated(*p.Rating)
}

// Rating returns the numeric rating and false for the Unrated key.
func (k RatingKey) Rating() (int, bool) {
	return k.rating, k.rated
}

func (k RatingKey) String() string {
	if !k.rated {
		return "Unrated"
	}
	return strconv.Itoa(k.rating)
}

type RatingBuckets = OrderedMap[RatingKey, []Record]

// GroupByRating partitions records into rating buckets. Buckets appear in
// order of their first record and keep the relative order of records. Keys
// are not sorted and empty buckets are never created.
func GroupByRating(records []Record) *RatingBuckets {
	buckets := NewOrderedMap[RatingKey, []Record]()
	for _, r := range records {
		key := RatingKeyOf(r.Problem)
		bucket, _ := buckets.Get(key)
		buckets.Set(key, append(bucket, r))
	}
	return buckets
}
