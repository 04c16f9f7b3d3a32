package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

var hundred = decimal.NewFromInt(100)

// Terms is the financial outcome of granting a loan: the flat interest
// and the total the employee ends up owing.
type Terms struct {
	Interest     types.Money
	TotalPayable types.Money
}

// ComputeTerms derives the loan terms from a principal and a flat rate
// given in percent. Interest is rounded to storage precision before the
// total is formed, so TotalPayable is always Principal + Interest exactly.
func ComputeTerms(principal, ratePercent types.Money) Terms {
	interest := types.Round2(principal.Mul(ratePercent).Div(hundred))
	return Terms{
		Interest:     interest,
		TotalPayable: principal.Add(interest),
	}
}

// BuildSchedule splits a total over n equal monthly installments starting
// one month after start. The even share is truncated to cents, never
// rounded up, so the residue the last installment absorbs is always
// non-negative and the schedule sums to the total exactly. Remaining on
// each row starts at the row's own amount; payments draw it down later.
func BuildSchedule(loanID id.ID, total types.Money, n int, start time.Time) []Installment {
	if n < 1 {
		return nil
	}

	even := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)

	schedule := make([]Installment, n)
	left := total
	for i := 0; i < n; i++ {
		amount := even
		if i == n-1 {
			amount = left
		}
		left = left.Sub(amount)

		schedule[i] = Installment{
			ID:        id.New(),
			LoanID:    loanID,
			Sequence:  i + 1,
			DueDate:   addMonths(start, i+1),
			Amount:    amount,
			Remaining: amount,
		}
	}
	return schedule
}

// addMonths advances a date by whole calendar months, clamping to the last
// day of the target month. Jan 31 + 1 month is Feb 28 (or 29), not Mar 3.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
