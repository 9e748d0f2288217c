package signal

import "github.com/joeycumines/go-fiber/internal/archctx"

// Run drives h one step, per §4.4's signal policy:
//
//  1. If h is terminal, its state is returned unchanged.
//  2. If the signal h is gated on is still pending (not yet pulsed), h's
//     state is returned without switching -- the caller should re-invoke
//     Run once that signal fires.
//  3. Otherwise, control switches into h; it runs until it calls Wait on a
//     not-yet-ready signal, finishes, or panics, and the resulting state
//     is returned.
func Run(h *Handle) State {
	if h.state.Terminal() {
		return h.state
	}
	if h.state.Signal != nil && h.state.Signal.IsPending() {
		return h.state
	}

	env := currentEnv()
	h.env = env

	cur := env.top()
	env.push(h)

	archctx.Swap(&cur.ctx, &h.ctx)

	return h.state
}
