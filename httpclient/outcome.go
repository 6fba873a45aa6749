package httpclient

import "net/http"

// Stage is the transport's progress through one request
type Stage int

const (
	StageUnsent Stage = iota
	StageOpened
	StageHeadersReceived
	StageLoading
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageUnsent:
		return "unsent"
	case StageOpened:
		return "opened"
	case StageHeadersReceived:
		return "headers_received"
	case StageLoading:
		return "loading"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Complete reports whether the request has reached its terminal stage
func (s Stage) Complete() bool {
	return s >= StageDone
}

// State is a single observation of a request: its stage and, once complete,
// the status code. Code 0 on a complete request means the transport failed
// before a status was received.
type State struct {
	Stage Stage
	Code  int
}

// OutcomeKind classifies a State
type OutcomeKind int

const (
	OutcomePending OutcomeKind = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePending:
		return "pending"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is derived from a State, never stored on its own
type Outcome struct {
	Kind OutcomeKind
	Code int
}

// Terminal reports whether the outcome ends the request
func (o Outcome) Terminal() bool {
	return o.Kind != OutcomePending
}

// Classify derives the outcome of an observation. Success and failure are
// only decided once the stage is complete.
func Classify(s State) Outcome {
	if !s.Stage.Complete() {
		return Outcome{Kind: OutcomePending}
	}
	if s.Code == http.StatusOK {
		return Outcome{Kind: OutcomeSucceeded, Code: s.Code}
	}
	return Outcome{Kind: OutcomeFailed, Code: s.Code}
}

// Dispatch classifies s and invokes exactly one callback of h
func Dispatch(s State, h IOutcomeHandler) Outcome {
	outcome := Classify(s)
	if h == nil {
		return outcome
	}

	switch outcome.Kind {
	case OutcomeSucceeded:
		h.OnSuccess()
	case OutcomeFailed:
		h.OnFailure(outcome.Code)
	default:
		h.OnPending()
	}
	return outcome
}
