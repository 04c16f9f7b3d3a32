package loan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

func TestComputeTerms(t *testing.T) {
	tests := []struct {
		name         string
		principal    string
		rate         string
		wantInterest string
		wantTotal    string
	}{
		{"flat ten percent", "1000.00", "10", "100.00", "1100.00"},
		{"zero rate", "500.00", "0", "0.00", "500.00"},
		{"rounds half up", "333.33", "5", "16.67", "350.00"},
		{"fractional rate", "1000.00", "7.5", "75.00", "1075.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := ComputeTerms(types.MustMoney(tt.principal), types.MustMoney(tt.rate))

			if got := terms.Interest.StringFixed(2); got != tt.wantInterest {
				t.Errorf("interest: want %s, got %s", tt.wantInterest, got)
			}
			if got := terms.TotalPayable.StringFixed(2); got != tt.wantTotal {
				t.Errorf("total: want %s, got %s", tt.wantTotal, got)
			}
		})
	}
}

func TestBuildSchedule_EvenSplit(t *testing.T) {
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	schedule := BuildSchedule(id.New(), types.MustMoney("1100.00"), 5, start)

	if len(schedule) != 5 {
		t.Fatalf("want 5 installments, got %d", len(schedule))
	}

	for i, inst := range schedule {
		if got := inst.Amount.StringFixed(2); got != "220.00" {
			t.Errorf("installment %d: want 220.00, got %s", i+1, got)
		}
		if inst.Sequence != i+1 {
			t.Errorf("installment %d: sequence %d", i+1, inst.Sequence)
		}
		wantDue := time.Date(2026, time.March+time.Month(i+1), 15, 0, 0, 0, 0, time.UTC)
		if !inst.DueDate.Equal(wantDue) {
			t.Errorf("installment %d: due %s, want %s", i+1, inst.DueDate, wantDue)
		}
	}

}

func TestBuildSchedule_ResidueOnLast(t *testing.T) {
	// 100 / 3 does not divide evenly; the last row absorbs the residue.
	schedule := BuildSchedule(id.New(), types.MustMoney("100.00"), 3, time.Now())

	if got := schedule[0].Amount.StringFixed(2); got != "33.33" {
		t.Errorf("first: want 33.33, got %s", got)
	}
	if got := schedule[1].Amount.StringFixed(2); got != "33.33" {
		t.Errorf("second: want 33.33, got %s", got)
	}
	if got := schedule[2].Amount.StringFixed(2); got != "33.34" {
		t.Errorf("last: want 33.34, got %s", got)
	}

	sum := decimal.Zero
	for _, inst := range schedule {
		sum = sum.Add(inst.Amount)
	}
	if got := sum.StringFixed(2); got != "100.00" {
		t.Errorf("sum: want 100.00, got %s", got)
	}
}

func TestBuildSchedule_RemainingStartsAtAmount(t *testing.T) {
	schedule := BuildSchedule(id.New(), types.MustMoney("1100.00"), 5, time.Now())

	for i, inst := range schedule {
		if !inst.Remaining.Equal(inst.Amount) {
			t.Errorf("installment %d: remaining %s, want %s", i+1, inst.Remaining, inst.Amount)
		}
	}
}

func TestBuildSchedule_TinyTotalKeepsAmountsNonNegative(t *testing.T) {
	// 0.05 / 10 truncates to 0.00 per row; the residue lands on the last
	// installment instead of going negative.
	schedule := BuildSchedule(id.New(), types.MustMoney("0.05"), 10, time.Now())

	sum := decimal.Zero
	for i, inst := range schedule {
		if inst.Amount.IsNegative() {
			t.Errorf("installment %d: negative amount %s", i+1, inst.Amount)
		}
		sum = sum.Add(inst.Amount)
	}
	if got := schedule[len(schedule)-1].Amount.StringFixed(2); got != "0.05" {
		t.Errorf("last: want 0.05, got %s", got)
	}
	if got := sum.StringFixed(2); got != "0.05" {
		t.Errorf("sum: want 0.05, got %s", got)
	}
}

func TestBuildSchedule_MonthEndClamping(t *testing.T) {
	// Jan 31 + 1 month clamps to the end of February.
	start := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	schedule := BuildSchedule(id.New(), types.MustMoney("300.00"), 3, start)

	want := []time.Time{
		time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
	}
	for i, inst := range schedule {
		if !inst.DueDate.Equal(want[i]) {
			t.Errorf("installment %d: due %s, want %s", i+1, inst.DueDate.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestBuildSchedule_LeapYearFebruary(t *testing.T) {
	start := time.Date(2028, time.January, 30, 0, 0, 0, 0, time.UTC)
	schedule := BuildSchedule(id.New(), types.MustMoney("100.00"), 1, start)

	want := time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !schedule[0].DueDate.Equal(want) {
		t.Errorf("due %s, want %s", schedule[0].DueDate.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestBuildSchedule_InvalidCount(t *testing.T) {
	if got := BuildSchedule(id.New(), types.MustMoney("100.00"), 0, time.Now()); got != nil {
		t.Errorf("want nil for zero installments, got %d rows", len(got))
	}
}
