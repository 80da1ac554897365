package unsolveddomain

// Verdict is the outcome of a single submission. Only two outcomes matter
// for classification: accepted, and everything else. The judge's own wording
// for a non-accepted outcome is kept as an opaque reason.
type Verdict struct {
	accepted bool
	reason   string
}

// Accepted is the verdict of a submission that solved its problem.
var Accepted = Verdict{accepted: true}

// NotAccepted returns a non-accepted verdict. An empty reason is valid and
// stands for a submission without a verdict yet (e.g. still being judged).
func NotAccepted(reason string) Verdict {
	return Verdict{accepted: false, reason: reason}
}

func (v Verdict) IsAccepted() bool {
	return v.accepted
}

func (v Verdict) Reason() string {
	return v.reason
}

func (v Verdict) String() string {
	if v.accepted {
		return "ACCEPTED"
	}
	if v.reason == "" {
		return "PENDING"
	}
	return v.reason
}
