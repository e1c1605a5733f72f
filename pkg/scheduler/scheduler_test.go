package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gridstore/network-store/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("AddWork", func() {
		It("should add work and return a future", func() {
			s = scheduler.NewScheduler(1)

			work := func(ctx context.Context) (any, error) {
				return "done", nil
			}

			future := s.AddWork(work)
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})
	})

	Describe("Run work", func() {
		It("should execute multiple work items", func() {
			s = scheduler.NewScheduler(2)

			results := make(chan int, 3)
			for i := range 3 {
				idx := i
				work := func(ctx context.Context) (any, error) {
					results <- idx
					return idx, nil
				}
				s.AddWork(work)
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			future := s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler(4)

			work := func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			for i := 0; i < 200; i++ {
				s.AddWork(work)
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler(1)
			s.Close()

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler(1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			work := func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			}

			s.AddWork(work)
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})
	Describe("Wait", func() {
		It("should return the result of the work", func() {
			s = scheduler.NewScheduler(2)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return 42, nil
			})

			result := scheduler.Wait(context.Background(), future)
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal(42))
		})

		It("should stop the work when the context is done", func() {
			s = scheduler.NewScheduler(1)

			stopped := make(chan struct{})
			future := s.AddWork(func(ctx context.Context) (any, error) {
				<-ctx.Done()
				close(stopped)
				return nil, ctx.Err()
			})

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			result := scheduler.Wait(ctx, future)
			Expect(result.Err).To(MatchError(context.DeadlineExceeded))
			Eventually(stopped, 1*time.Second).Should(BeClosed())
		})

		It("should run with one worker when asked for none", func() {
			s = scheduler.NewScheduler(0)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})
			Expect(scheduler.Wait(context.Background(), future).Data).To(Equal("done"))
		})
	})
	Describe("Submit", func() {
		It("should deliver a typed result", func() {
			s = scheduler.NewScheduler(2)

			future := scheduler.Submit(s, func(ctx context.Context) (int, error) {
				return 7, nil
			})

			result := scheduler.Wait(context.Background(), future)
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal(7))
		})

		It("should deliver the zero value with the error of a panicking work", func() {
			s = scheduler.NewScheduler(1)

			future := scheduler.Submit(s, func(ctx context.Context) (string, error) {
				panic("boom")
			})

			result := scheduler.Wait(context.Background(), future)
			Expect(result.Err).To(MatchError(ContainSubstring("boom")))
			Expect(result.Data).To(BeEmpty())
		})

		It("should deliver context.Canceled after Close", func() {
			s = scheduler.NewScheduler(1)
			s.Close()

			future := scheduler.Submit(s, func(ctx context.Context) (int, error) {
				return 1, nil
			})

			Expect(scheduler.Wait(context.Background(), future).Err).To(MatchError(context.Canceled))
		})
	})

	Describe("Per-variant jobs", func() {
		type variantReport struct {
			VariantNum  int
			RowsWritten int
		}

		// Given a pool of two workers and one migration job per variant of a network
		// When one variant fails
		// Then at most two variants run at once, every other variant still reports
		// and the failure is returned for its variant only
		It("should fan variants out over the pool and collect each result", func() {
			s = scheduler.NewScheduler(2)

			var running, peak atomic.Int32
			migrate := func(variantNum int) scheduler.Work[variantReport] {
				return func(ctx context.Context) (variantReport, error) {
					n := running.Add(1)
					defer running.Add(-1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					select {
					case <-time.After(30 * time.Millisecond):
					case <-ctx.Done():
						return variantReport{}, ctx.Err()
					}
					if variantNum == 3 {
						return variantReport{}, fmt.Errorf("variant %d: conflicting permanent limits", variantNum)
					}
					return variantReport{VariantNum: variantNum, RowsWritten: variantNum * 10}, nil
				}
			}

			variants := []int{0, 1, 2, 3, 4}
			futures := make([]*scheduler.Future[scheduler.Result[variantReport]], len(variants))
			for i, v := range variants {
				futures[i] = scheduler.Submit(s, migrate(v))
			}

			var reports []variantReport
			var errs []error
			for _, f := range futures {
				r := scheduler.Wait(context.Background(), f)
				if r.Err != nil {
					errs = append(errs, r.Err)
					continue
				}
				reports = append(reports, r.Data)
			}

			Expect(peak.Load()).To(BeNumerically("<=", 2))
			Expect(reports).To(Equal([]variantReport{
				{VariantNum: 0, RowsWritten: 0},
				{VariantNum: 1, RowsWritten: 10},
				{VariantNum: 2, RowsWritten: 20},
				{VariantNum: 4, RowsWritten: 40},
			}))
			Expect(errors.Join(errs...)).To(MatchError("variant 3: conflicting permanent limits"))
		})

		It("should stop the remaining variants when the caller gives up", func() {
			s = scheduler.NewScheduler(1)

			started := make(chan int, 3)
			block := func(variantNum int) scheduler.Work[variantReport] {
				return func(ctx context.Context) (variantReport, error) {
					started <- variantNum
					<-ctx.Done()
					return variantReport{}, ctx.Err()
				}
			}

			first := scheduler.Submit(s, block(1))
			second := scheduler.Submit(s, block(2))
			Eventually(started, time.Second).Should(Receive(Equal(1)))

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			Expect(scheduler.Wait(ctx, first).Err).To(MatchError(context.DeadlineExceeded))

			second.Stop()
			Expect(scheduler.Wait(context.Background(), second).Err).To(MatchError(context.Canceled))
		})
	})
})
