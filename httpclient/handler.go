package httpclient

// IHttpStatusHandler is an interface for observing request lifecycle events
type IHttpStatusHandler interface {
	// OnStage handles every lifecycle stage a request reaches
	OnStage(stage string)
	// OnRequest handles the terminal outcome of a request
	OnRequest(status string)
}

// IOutcomeHandler receives the classified outcome of a request observation.
// Exactly one method is called per observation.
type IOutcomeHandler interface {
	OnPending()
	OnSuccess()
	OnFailure(code int)
}

// HandlerFuncs adapts plain functions to IOutcomeHandler.
// A nil field is skipped.
type HandlerFuncs struct {
	Pending func()
	Success func()
	Failure func(code int)
}

var _ IOutcomeHandler = HandlerFuncs{}

func (h HandlerFuncs) OnPending() {
	if h.Pending != nil {
		h.Pending()
	}
}

func (h HandlerFuncs) OnSuccess() {
	if h.Success != nil {
		h.Success()
	}
}

func (h HandlerFuncs) OnFailure(code int) {
	if h.Failure != nil {
		h.Failure(code)
	}
}
