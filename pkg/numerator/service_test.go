package numerator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sequences table: every call bumps the stored
// value by the increment the query carries (1 for strict, the range size
// for cached) and returns the new value.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	calls        int
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	var increment int64 = 1
	if len(args) == 3 {
		if val, ok := args[2].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestNext_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.Next(ctx, "FAC", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "FAC-2026-00001" {
		t.Errorf("expected FAC-2026-00001, got %s", num)
	}

	num, err = svc.Next(ctx, "FAC", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "FAC-2026-00002" {
		t.Errorf("expected FAC-2026-00002, got %s", num)
	}

	if q.calls != 2 {
		t.Errorf("strict strategy must hit the database per number, got %d calls", q.calls)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ORD")
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	// first call allocates 1..10 from the database
	num, err := svc.GetNextNumber(ctx, cfg, opts, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00001" {
		t.Errorf("expected ORD-2026-00001, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value 10, got %d", q.currentValue)
	}

	// second call comes from memory
	num, err = svc.GetNextNumber(ctx, cfg, opts, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00002" {
		t.Errorf("expected ORD-2026-00002, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to stay 10, got %d", q.currentValue)
	}

	// exhaust the range; the next call reserves 11..20
	for i := 0; i < 8; i++ {
		if _, err := svc.GetNextNumber(ctx, cfg, opts, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	num, err = svc.GetNextNumber(ctx, cfg, opts, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-00011" {
		t.Errorf("expected ORD-2026-00011, got %s", num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value 20, got %d", q.currentValue)
	}
}

func TestFormatNumber_NoYear(t *testing.T) {
	svc := New(&mockQuerier{})
	cfg := Config{Prefix: "REF", IncludeYear: false, PadWidth: 3}
	got := svc.formatNumber(cfg, time.Now(), 7)
	if got != "REF-007" {
		t.Errorf("expected REF-007, got %s", got)
	}
}

func TestNext_SeparateSeriesPerPrefix(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	// the mock shares one counter, so just check the formatting per prefix
	for i, prefix := range []string{"FAC", "COM"} {
		num, err := svc.Next(ctx, prefix, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := fmt.Sprintf("%s-2026-%05d", prefix, i+1)
		if num != want {
			t.Errorf("expected %s, got %s", want, num)
		}
	}
}
