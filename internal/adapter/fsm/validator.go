package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/petmercado/petmercado/internal/domain"
)

// Compile-time check: Validator implements domain.TransitionValidator.
var _ domain.TransitionValidator = (*Validator)(nil)

// eventsByKind converts domain.Transitions into looplab/fsm EventDesc
// format, one machine description per record kind. The event name is the
// target status, so requesting a transition is firing the event named
// after the destination. Transitions sharing an event+destination are
// consolidated into a single EventDesc with multiple source states.
var eventsByKind = buildEvents()

func buildEvents() map[domain.Kind][]loopfsm.EventDesc {
	type key struct {
		kind domain.Kind
		dst  string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, t := range domain.Transitions {
		k := key{kind: t.Kind, dst: string(t.Dst)}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], string(t.Src))
	}

	out := make(map[domain.Kind][]loopfsm.EventDesc)
	for _, k := range order {
		out[k.kind] = append(out[k.kind], loopfsm.EventDesc{
			Name: k.dst,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// Validator implements domain.TransitionValidator using looplab/fsm.
// It creates a short-lived FSM instance per Apply call, initialized with
// the record's current state. This is necessary because looplab/fsm is
// stateful (it tracks the current state internally).
type Validator struct{}

// New creates a new FSM-backed transition validator.
func New() *Validator {
	return &Validator{}
}

// Apply checks that target is reachable from current for the given kind.
// Returns a domain.TransitionError if the transition is not allowed,
// including any request against a terminal state.
func (v *Validator) Apply(ctx context.Context, kind domain.Kind, current, target domain.Status) error {
	machine := loopfsm.NewFSM(string(current), eventsByKind[kind], nil)

	if err := machine.Event(ctx, string(target)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) || errors.As(err, &noTransition) {
			return &domain.TransitionError{Kind: kind, Current: current, Target: target}
		}
		return err
	}

	return nil
}
