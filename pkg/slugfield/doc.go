// Package slugfield keeps a slug field unique against a backend collection.
//
// The package has three layers that can be used independently:
//
//   - [Resolve] and [NextAvailable] implement the lookup: one Count query for
//     the exact base, and on collision one SelectPrefix query followed by a
//     sequential search for the smallest free "base-N".
//   - [Transition] is a pure state machine over [State] and [Event]. It owns
//     sync/manual mode, the request token that discards superseded results,
//     and the [Effects] a driver must perform (schedule or cancel a check).
//     [DeriveStatus] maps a state to idle, checking, available or taken.
//   - [Field] drives the state machine with a real clock: checks are debounced
//     (500ms by default), superseded lookups are cancelled, and every state
//     change is reported through an OnChange callback as a [Snapshot].
//
// Basic usage:
//
//	f := slugfield.New(backend, slugfield.Target{Resource: "prompts", Field: "id"},
//	    slugfield.WithOnChange(func(s slugfield.Snapshot) {
//	        fmt.Println(s.Value, s.Status)
//	    }),
//	)
//	defer f.Close()
//
//	f.SetSource("My Great Prompt!") // value "my-great-prompt", status checking
//	// ~500ms later: value "my-great-prompt" or "my-great-prompt-2", status available
//
// Editing the field directly switches to manual mode: the source no longer
// drives the value and the status reports on the literal value. Regenerate
// switches back to sync mode and checks immediately.
//
// Lookup failures never surface to the caller. The status falls back to idle
// until the value changes again. Uniqueness is advisory: the backend's own
// constraint remains the authority at write time.
package slugfield
