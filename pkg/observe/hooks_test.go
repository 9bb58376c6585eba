package observe

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksNotifyFansOut(t *testing.T) {
	first := &CaptureHook{}
	second := &CaptureHook{}
	hooks := Hooks{first, nil, second}

	if !hooks.Enabled() {
		t.Fatalf("hooks should report enabled")
	}
	err := hooks.Notify(context.Background(), Event{
		Verb:          "attr.set",
		PrimitiveType: "scatter",
		Attr:          "markersize",
		NewValue:      12.0,
	})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(first.Events) != 1 || len(second.Events) != 1 {
		t.Fatalf("expected the event on both hooks, got %d and %d", len(first.Events), len(second.Events))
	}
	if first.Events[0].OccurredAt.IsZero() {
		t.Fatalf("notify should stamp a timestamp")
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	boom := errors.New("sink unavailable")
	failing := &CaptureHook{Err: boom}
	ok := &CaptureHook{}
	hooks := Hooks{failing, ok}

	err := hooks.Notify(context.Background(), Event{Verb: "attr.set", PrimitiveType: "lines"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(ok.Events) != 1 {
		t.Fatalf("a failing hook must not block the others")
	}
}

func TestHooksNotifySkipsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}

	if err := hooks.Notify(context.Background(), Event{Verb: "attr.set"}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if err := hooks.Notify(context.Background(), Event{PrimitiveType: "lines"}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("incomplete events should be dropped, got %d", len(capture.Events))
	}

	var none Hooks
	if none.Enabled() {
		t.Fatalf("empty hooks should report disabled")
	}
	if err := none.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("empty hooks notify should be a no-op: %v", err)
	}
}

func TestNormalizeEventTrimsAndClones(t *testing.T) {
	meta := map[string]any{"frame": 7}
	event := NormalizeEvent(Event{
		Verb:          " attr.resolved ",
		PrimitiveType: " heatmap ",
		Attr:          " colorrange ",
		Origin:        " automatic ",
		Metadata:      meta,
	})
	if event.Verb != "attr.resolved" || event.PrimitiveType != "heatmap" || event.Attr != "colorrange" {
		t.Fatalf("fields should be trimmed, got %+v", event)
	}
	if event.Origin != "automatic" {
		t.Fatalf("origin should be trimmed, got %q", event.Origin)
	}
	meta["frame"] = 8
	if event.Metadata["frame"] != 7 {
		t.Fatalf("metadata should be cloned")
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("timestamp should be stamped")
	}

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stamped := NormalizeEvent(Event{OccurredAt: at})
	if !stamped.OccurredAt.Equal(at) {
		t.Fatalf("existing timestamp should be preserved")
	}
}

func TestCaptureHookByVerb(t *testing.T) {
	capture := &CaptureHook{}
	_ = capture.Notify(context.Background(), Event{Verb: "attr.set", PrimitiveType: "lines", Attr: "color"})
	_ = capture.Notify(context.Background(), Event{Verb: "attr.resolved", PrimitiveType: "lines", Attr: "colorrange"})
	_ = capture.Notify(context.Background(), Event{Verb: "attr.set", PrimitiveType: "lines", Attr: "linewidth"})

	sets := capture.ByVerb("attr.set")
	if len(sets) != 2 || sets[0].Attr != "color" || sets[1].Attr != "linewidth" {
		t.Fatalf("unexpected filtered events %v", sets)
	}
	if len(capture.ByVerb("primitive.constructed")) != 0 {
		t.Fatalf("expected no constructed events")
	}
}

func TestHookFuncNil(t *testing.T) {
	var fn HookFunc
	if err := fn.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("nil HookFunc should be a no-op: %v", err)
	}
}
