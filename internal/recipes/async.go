package recipes

import (
	"context"
	"time"

	"cookbook/internal/async"
	"cookbook/internal/cache"
	"cookbook/internal/events"
	"cookbook/internal/scheduler"
)

const categoryAsync = "async"

// promiseDelay is how long the delayed-result recipe waits.
var promiseDelay = 2 * time.Second

func asyncRecipes() []Recipe {
	return []Recipe{
		{Number: 24, Title: "Cron Job", Category: categoryAsync,
			Summary: "Schedule a task with CRON_SPEC and wait for its first run.",
			Run:     cronJob},
		{Number: 38, Title: "Promises", Category: categoryAsync,
			Summary: "A future that resolves after a delay.",
			Run: func(ctx context.Context, rt *Runtime) error {
				v, err := async.After(ctx, promiseDelay, "Done!").Await(ctx)
				if err != nil {
					return err
				}
				rt.println(v)
				return nil
			}},
		{Number: 39, Title: "Async/Await", Category: categoryAsync,
			Summary: "Run work in a goroutine and wait for its result.",
			Run: func(ctx context.Context, rt *Runtime) error {
				f := async.Go(ctx, func(context.Context) (string, error) {
					return "Done!", nil
				})
				v, err := f.Await(ctx)
				if err != nil {
					return err
				}
				rt.println(v)
				return nil
			}},
		{Number: 47, Title: "EventEmitter", Category: categoryAsync,
			Summary: "Register a listener and emit an event.",
			Run: func(_ context.Context, rt *Runtime) error {
				var em events.Emitter
				em.On("event", func(...any) {
					rt.println("An event occurred!")
				})
				em.Emit("event")
				return nil
			}},
		{Number: 55, Title: "Caching", Category: categoryAsync,
			Summary: "Store and read back a value with a TTL.",
			Run: func(_ context.Context, rt *Runtime) error {
				c := cache.New(cache.NoExpiration, 0)
				c.Set("key", "value", 100*time.Second)
				v, ok := c.Get("key")
				if !ok {
					rt.println("key not found")
					return nil
				}
				rt.println(v)
				return nil
			}},
	}
}

func cronJob(ctx context.Context, rt *Runtime) error {
	s := scheduler.New(rt.Log)
	ran := make(chan struct{}, 1)
	if _, err := s.Add(rt.Config.CronSpec, "every-minute", func(context.Context) {
		rt.println("Running a task every minute")
		select {
		case ran <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	for _, e := range s.Entries() {
		rt.printf("scheduled %q with %q\n", e.Name, e.Spec)
	}

	s.Start()
	defer s.Stop(context.WithoutCancel(ctx))

	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
