package playback

import (
	"context"
	"time"
)

// Run plays anim in real time on the calling goroutine until it finishes,
// is paused, is reset by onStep, or ctx is cancelled. The animator must not
// be touched from other goroutines while Run is active. onStep, when set,
// is called after every applied step.
func Run(ctx context.Context, anim *Animator, onStep func(View)) error {
	run := anim.Run()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		delay, ok := anim.Advance(run)
		if !ok {
			return nil
		}
		if onStep != nil {
			onStep(anim.View())
		}
		timer.Reset(delay)
	}
}
