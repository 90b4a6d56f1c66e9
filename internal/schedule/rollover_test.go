package schedule

import (
	"testing"
	"time"
)

func TestNextRollover(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			"morning",
			time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
			time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"exactly midnight",
			time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"year end",
			time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRollover(tt.from); !got.Equal(tt.want) {
				t.Errorf("NextRollover(%v) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestFireDeliversRolloverMsg(t *testing.T) {
	r := NewRollover(time.UTC, nil)
	at := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	r.Fire(at)
	r.Fire(at.Add(time.Second))

	msg, ok := r.Wait()().(RolloverMsg)
	if !ok {
		t.Fatal("expected a RolloverMsg")
	}
	if !msg.At.Equal(at) {
		t.Errorf("expected first tick %v, got %v", at, msg.At)
	}

	select {
	case extra := <-r.ticks:
		t.Errorf("expected coalesced ticks, got another at %v", extra)
	default:
	}
}

func TestStartStop(t *testing.T) {
	r := NewRollover(time.UTC, nil)

	cmd, err := r.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if cmd == nil {
		t.Fatal("expected a wait command from the first Start")
	}
	if again, _ := r.Start(); again != nil {
		t.Error("expected nil command from a second Start")
	}
	if n := len(r.cron.Entries()); n != 1 {
		t.Errorf("expected one cron entry, got %d", n)
	}

	r.Stop()
	r.Stop()
}
