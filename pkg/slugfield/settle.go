package slugfield

import "context"

// Settle applies e to s and, when the transition issues a check, runs it
// synchronously and applies the result. It is the request/response
// counterpart of Field for callers that have no clock of their own, such as
// an HTTP handler re-rendering the field on every keystroke batch.
//
// Lookup failures leave the state in its failed (idle) form.
func (n Normalizer) Settle(ctx context.Context, b Backend, t Target, s State, e Event) State {
	s, eff := n.Transition(s, e)
	if eff.Schedule == nil {
		return s
	}

	c := *eff.Schedule
	candidate, err := Resolve(ctx, b, t, c.Value)
	if err != nil {
		s, _ = n.Transition(s, CheckFailed{RequestID: c.RequestID, Err: err})
		return s
	}
	s, _ = n.Transition(s, CheckResolved{RequestID: c.RequestID, Base: c.Value, Candidate: candidate})
	return s
}

// Settle is Normalizer.Settle with slug.Make as the normalizer.
func Settle(ctx context.Context, b Backend, t Target, s State, e Event) State {
	return Normalizer(nil).Settle(ctx, b, t, s, e)
}
