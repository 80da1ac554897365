package unsolveddomain

// ClassifyUnsolved returns one record per problem that has at least one
// non-accepted submission and no accepted submission anywhere in subms.
// Records follow the order in which their problems first failed, and each
// record holds the first non-accepted submission for its problem.
func ClassifyUnsolved(subms []Submission) []Record {
	// the solved set must be complete before anything is excluded: an
	// accepted submission may come after earlier failures in the feed
	solved := make(map[ProblemKey]struct{})
	for _, s := range subms {
		if s.Verdict.IsAccepted() {
			solved[s.Problem.Key()] = struct{}{}
		}
	}

	unsolved := NewOrderedMap[ProblemKey, Record]()
	for _, s := range subms {
		if s.Verdict.IsAccepted() {
			continue
		}
		key := s.Problem.Key()
		if _, ok := solved[key]; ok {
			continue
		}
		if unsolved.Has(key) {
			continue
		}
		unsolved.Set(key, newRecord(s))
	}

	return unsolved.Values()
}

// SolvedKeys returns the keys of problems with an accepted submission, in
// order of their first acceptance.
func SolvedKeys(subms []Submission) []ProblemKey {
	solved := NewOrderedMap[ProblemKey, struct{}]()
	for _, s := range subms {
		if s.Verdict.IsAccepted() {
			solved.Set(s.Problem.Key(), struct{}{})
		}
	}
	return solved.Keys()
}
