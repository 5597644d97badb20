package reactive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope(t *testing.T) {
	t.Run("runs function and destroys", func(t *testing.T) {
		log := []string{}

		s := NewScope()

		s.Run(func() {
			NewEffect(func() {
				log = append(log, "effect")

				OnCleanup(func() { log = append(log, "cleanup") })
			})
		})

		log = append(log, "ran")
		s.Destroy()
		log = append(log, "destroyed")

		assert.Equal(t, []string{
			"effect",
			"ran",
			"cleanup",
			"destroyed",
		}, log)
	})

	t.Run("destroy order", func(t *testing.T) {
		log := []string{}

		count := NewCell(7)
		s := NewScope()

		s.Run(func() {
			NewEffect(func() { count.Read() }, WithCleanup(func() {
				log = append(log, "effect destroyed")
			}))
		})

		s.RegisterTeardown(func() { log = append(log, "first teardown") })
		s.RegisterTeardown(func() { log = append(log, "second teardown") })
		s.OnDestroy(func() {
			log = append(log, fmt.Sprintf("hook sees %d", count.Read()))
		})

		s.Destroy()
		assert.True(t, s.Destroyed())

		s.Destroy()

		assert.Equal(t, []string{
			"hook sees 7",
			"second teardown",
			"first teardown",
			"effect destroyed",
		}, log)
	})

	t.Run("owns effects created elsewhere", func(t *testing.T) {
		runs := 0

		count := NewCell(0)
		e := NewEffect(func() {
			count.Read()
			runs++
		})

		s := NewScope()
		s.Own(e)
		s.Destroy()

		count.Write(1)
		assert.False(t, e.Active())
		assert.Equal(t, 1, runs)
	})

	t.Run("cleanup outside an effect becomes a teardown", func(t *testing.T) {
		log := []string{}

		s := NewScope()
		s.Run(func() {
			OnCleanup(func() { log = append(log, "teardown") })
		})

		assert.Empty(t, log)
		s.Destroy()
		assert.Equal(t, []string{"teardown"}, log)
	})

	t.Run("nested scopes", func(t *testing.T) {
		log := []string{}

		outer := NewScope()
		outer.OnDestroy(func() {
			log = append(log, "outer destroyed")
		})

		var inner *Scope
		outer.Run(func() {
			inner = NewScope()
			inner.OnDestroy(func() {
				log = append(log, "inner destroyed")
			})
		})

		outer.Destroy()

		assert.True(t, inner.Destroyed())
		assert.NotEqual(t, outer.ID(), inner.ID())
		assert.Equal(t, []string{
			"outer destroyed",
			"inner destroyed",
		}, log)
	})

	t.Run("catches effect failures", func(t *testing.T) {
		caught := []error{}
		reported := []error{}

		rt := NewRuntime(WithErrorReporter(func(err error) {
			reported = append(reported, err)
		}))

		rt.Run(func() {
			outer := NewScope()
			outer.OnError(func(err error) {
				caught = append(caught, err)
			})

			outer.Run(func() {
				NewScope().Run(func() {
					NewEffect(func() { panic(errors.New("render failed")) })
				})
			})

			NewEffect(func() { panic("unscoped") })
		})

		require.Len(t, caught, 1)
		assert.EqualError(t, errors.Unwrap(caught[0]), "render failed")
		assert.Len(t, reported, 1)
	})

	t.Run("teardown failures do not stop destroy", func(t *testing.T) {
		log := []string{}
		errs := []error{}

		rt := NewRuntime(WithErrorReporter(func(err error) {
			errs = append(errs, err)
		}))

		rt.Run(func() {
			count := NewCell(0)
			s := NewScope()

			var e *Effect
			s.Run(func() {
				e = NewEffect(func() {
					log = append(log, fmt.Sprintf("run %d", count.Read()))
				})
			})

			s.OnDestroy(func() { panic("hook boom") })
			s.RegisterTeardown(func() { log = append(log, "teardown 1") })
			s.RegisterTeardown(func() { panic("teardown boom") })

			assert.NotPanics(t, s.Destroy)
			s.Destroy()
			count.Write(1)

			assert.True(t, s.Destroyed())
			assert.False(t, e.Active())

			require.Len(t, errs, 2)
			for _, err := range errs {
				assert.ErrorIs(t, err, ErrTeardownFailed)

				var teardownErr *TeardownError
				require.ErrorAs(t, err, &teardownErr)
				assert.Equal(t, s.ID(), teardownErr.ScopeID)
			}
		})

		assert.Equal(t, []string{"run 0", "teardown 1"}, log)
	})

	t.Run("teardown failures reach the scope handler", func(t *testing.T) {
		caught := []error{}
		reported := 0

		rt := NewRuntime(WithErrorReporter(func(error) { reported++ }))
		rt.Run(func() {
			s := NewScope()
			s.OnError(func(err error) { caught = append(caught, err) })
			s.RegisterTeardown(func() { panic(io.ErrClosedPipe) })
			s.Destroy()
		})

		require.Len(t, caught, 1)
		assert.ErrorIs(t, caught[0], io.ErrClosedPipe)
		assert.Equal(t, 0, reported)
	})

	t.Run("cleanup without an owner is ignored", func(t *testing.T) {
		var buf bytes.Buffer

		ran := false
		rt := NewRuntime(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		rt.Run(func() {
			OnCleanup(func() { ran = true })
		})

		assert.False(t, ran)
		assert.Contains(t, buf.String(), "cleanup registered outside an effect or scope")
	})

	t.Run("write after destroy is dropped", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		log := []string{}

		rt := NewRuntime(WithLogger(logger))
		rt.Run(func() {
			s := NewScope()

			var count *Cell[int]
			s.Run(func() {
				count = NewCell(1)
			})

			NewEffect(func() {
				log = append(log, fmt.Sprintf("count %d", count.Read()))
			})

			s.Destroy()
			count.Write(2)

			assert.Equal(t, 1, count.Peek())
		})

		assert.Equal(t, []string{"count 1"}, log)
		assert.Equal(t, uint64(1), rt.Stats().WritesDropped)
		assert.Contains(t, buf.String(), "write to destroyed scope dropped")
	})

	t.Run("creating inside a destroyed scope", func(t *testing.T) {
		runs := 0

		s := NewScope()
		s.Destroy()

		var e *Effect
		s.Run(func() {
			e = NewEffect(func() { runs++ })
		})

		assert.False(t, e.Active())
		assert.Equal(t, 0, runs)
	})
}
