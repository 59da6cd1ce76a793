// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assign turns a routine template into dated routines.

# Queue

All assignment writes in the process go through one Queue. It owns a single
worker goroutine and waits a fixed delay (50ms by default) between tasks,
so two batches never write concurrently and the store is not burst-loaded.

	q := assign.NewQueue(cfg.AssignDelay)
	defer q.Close()

# Executor

Assign walks its dates in order. For each date it optionally deletes the
existing routine of the template's type (overwrite), then creates a new
routine carrying only the payload matching that type plus the notes. Each
date ends as exactly one of:

  - success: the routine was created
  - exists: a routine of that type already occupies the date
  - error: anything else, with the message kept in Result.Errors

Without overwrite an existing routine is never replaced. A failing date
never stops the batch; only a missing template, an empty weekday set or an
invalid template payload are returned as errors. A pattern that matches no
dates yields an empty Result.

	res, err := exec.AssignRecurring(ctx, userID, &tpl, assign.Pattern{
		Start:    start,
		End:      end,
		Weekdays: []int{0, 2, 4}, // Mon, Wed, Fri
	}, false)
	msg := res.Summary(5) // "" on full success
*/
package assign
