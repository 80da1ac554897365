package unsolveddomain

type TagCounts = OrderedMap[string, int]

// CountTags counts for each tag how many of the records' problems carry it.
// Tags are ordered by first occurrence. A tag repeated within one problem's
// tag list is counted once for that problem.
func CountTags(records []Record) *TagCounts {
	counts := NewOrderedMap[string, int]()
	for _, r := range records {
		seen := make(map[string]struct{}, len(r.Problem.Tags))
		for _, tag := range r.Problem.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			n, _ := counts.Get(tag)
			counts.Set(tag, n+1)
		}
	}
	return counts
}
