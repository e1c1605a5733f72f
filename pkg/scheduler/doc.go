// Package scheduler implements a worker pool for executing async work with futures.
//
// The scheduler owns a fixed pool of workers. Work submitted with AddWork waits in a
// FIFO queue until a worker is free and returns a Future right away:
//
//	┌──────────────┐   AddWork(fn)   ┌────────────┐  dispatch()  ┌──────────────┐
//	│    caller    │ ──────────────► │ work queue │ ───────────► │ worker 1..N  │
//	└──────────────┘                 └────────────┘              └──────┬───────┘
//	       ▲                                                            │
//	       └──────────────────── future.C() ◄── Result{Data, Err} ──────┘
//
// The event loop dispatches both when work arrives and when a worker returns to the
// pool, so queued work starts as soon as capacity frees up.
//
// # Futures
//
// A Future delivers exactly one Result. Stop cancels the context of its work; Wait
// blocks on the result and stops the work when the caller's context ends first.
// Submit is AddWork with a typed result:
//
//	futures := make([]*scheduler.Future[scheduler.Result[migration.Report]], 0, len(variants))
//	for _, v := range variants {
//	    futures = append(futures, scheduler.Submit(sched, func(ctx context.Context) (migration.Report, error) {
//	        return engine.Run(ctx, unit, networkID, v.Num)
//	    }))
//	}
//	for _, f := range futures {
//	    r := scheduler.Wait(ctx, f)
//	    ...
//	}
//
// # Panics and shutdown
//
// A panicking work function is recovered by its worker and reported as the Result
// error; the worker goes back to the pool.
//
// Close cancels the main context, which every work context derives from, then waits
// for in-flight work to return. AddWork after Close yields context.Canceled. Close is
// idempotent.
package scheduler
