package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

func TestActivityLog_TouchIsMonotonic(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	log := f.session.Activity

	if _, ok := log.Last(ctx); ok {
		t.Fatalf("fresh session must have no activity")
	}

	f.clock.Set(t0.Add(time.Minute))
	if err := log.Touch(ctx); err != nil {
		t.Fatalf("touch: %v", err)
	}

	f.clock.Set(t0)
	if err := log.Touch(ctx); err != nil {
		t.Fatalf("touch: %v", err)
	}

	last, ok := log.Last(ctx)
	if !ok || !last.Equal(t0.Add(time.Minute)) {
		t.Fatalf("activity moved backwards: %v", last)
	}
}

func TestActivityLog_UnparseableReadsAbsent(t *testing.T) {
	f := newSessionFixture()
	f.set(t, domain.LastActivityKey, "yesterday")

	if _, ok := f.session.Activity.Last(context.Background()); ok {
		t.Fatalf("unparseable value must read as absent")
	}
}

func TestActivityLog_Forget(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	_ = f.session.Activity.Touch(ctx)

	if err := f.session.Activity.Forget(ctx); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if _, ok := f.session.Activity.Last(ctx); ok {
		t.Fatalf("expected activity forgotten")
	}
}

func TestActivityTracker_AttachRelease(t *testing.T) {
	tracker := NewActivityTracker(zerolog.Nop())

	r1 := tracker.Attach("sid")
	r2 := tracker.Attach("sid")
	if n := tracker.Listeners("sid"); n != 2 {
		t.Fatalf("expected 2 listeners, got %d", n)
	}

	r1()
	r1()
	if n := tracker.Listeners("sid"); n != 1 {
		t.Fatalf("release must be idempotent, got %d listeners", n)
	}

	r2()
	if n := tracker.Listeners("sid"); n != 0 {
		t.Fatalf("expected no listeners, got %d", n)
	}
}

func TestActivityTracker_Record(t *testing.T) {
	f := newSessionFixture()
	tracker := NewActivityTracker(zerolog.Nop())
	ctx := context.Background()

	if err := tracker.Record(ctx, f.session, domain.ActivityClick); !errors.Is(err, domain.ErrNoActiveListener) {
		t.Fatalf("expected ErrNoActiveListener, got %v", err)
	}
	if _, ok := f.session.Activity.Last(ctx); ok {
		t.Fatalf("events without a listener must not refresh activity")
	}

	release := tracker.Attach("sid")
	defer release()

	if err := tracker.Record(ctx, f.session, "resize"); !errors.Is(err, domain.ErrUnknownActivity) {
		t.Fatalf("expected ErrUnknownActivity, got %v", err)
	}

	for _, ev := range []domain.ActivityEvent{
		domain.ActivityMouseDown, domain.ActivityMouseMove, domain.ActivityKeyPress,
		domain.ActivityScroll, domain.ActivityTouchStart, domain.ActivityClick,
	} {
		f.clock.Set(f.clock.Now().Add(time.Second))
		if err := tracker.Record(ctx, f.session, ev); err != nil {
			t.Fatalf("record %s: %v", ev, err)
		}
		if last, _ := f.session.Activity.Last(ctx); !last.Equal(f.clock.Now()) {
			t.Fatalf("%s: expected activity at %v, got %v", ev, f.clock.Now(), last)
		}
	}
}

func TestActivityTracker_ReleaseStopsRecording(t *testing.T) {
	f := newSessionFixture()
	tracker := NewActivityTracker(zerolog.Nop())

	release := tracker.Attach("sid")
	release()

	if err := tracker.Record(context.Background(), f.session, domain.ActivityScroll); !errors.Is(err, domain.ErrNoActiveListener) {
		t.Fatalf("expected ErrNoActiveListener after release, got %v", err)
	}
}
