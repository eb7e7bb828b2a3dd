// Package channel drives the monitor radio across a fixed set of 2.4GHz
// channels.
//
// A Plan is a validated hop order. A Scheduler owns the current position
// within the plan: it tunes the radio to the first channel when it starts
// and then advances one step per interval, wrapping from the last channel
// back to the first.
//
//	plan, err := channel.NewRangePlan(1, 13)
//	if err != nil {
//	    return err
//	}
//	s, err := channel.NewScheduler(plan, tuner,
//	    channel.WithInterval(500*time.Millisecond),
//	    channel.WithIndicator(led),
//	)
//	if err != nil {
//	    return err
//	}
//	go s.Run(ctx)
//
// The position is only ever written by the goroutine running Run, so the
// channel produced is always a member of the plan.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package channel
