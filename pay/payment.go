package pay

import (
	"time"

	"github.com/palveluspolku/service-engine/generic"
	"github.com/palveluspolku/service-engine/timeline"
)

// PaymentWeekday is the day allowances are paid out.
const PaymentWeekday = time.Friday

// halfMonth splits the month into the two pay cycles.
const halfMonth = 15

// Payment is the estimated next payout.
type Payment struct {
	Date             generic.TimePoint
	DaysSincePayment int
	Amount           generic.Amount
}

// NextPaymentDate is the next Friday on or after now.
func NextPaymentDate(now time.Time) generic.TimePoint {
	return generic.NextWeekday(generic.DayOf(now), PaymentWeekday)
}

// DaysSinceLastPayment approximates the twice-monthly pay cycle from the
// day of month alone: 1-15 counts from the 1st, 16-31 from the 15th.
// It is not tied to the real payroll calendar.
func DaysSinceLastPayment(now time.Time) int {
	day := generic.DayOf(now).Day()
	if day <= halfMonth {
		return day
	}
	return day - halfMonth
}

// NextPaymentEstimate pairs the next Friday with DaysSinceLastPayment days
// at today's rate. The amount is an estimate; see DaysSinceLastPayment.
func NextPaymentEstimate(period timeline.ServicePeriod, p Profile, now time.Time) Payment {
	days := DaysSinceLastPayment(now)
	return Payment{
		Date:             NextPaymentDate(now),
		DaysSincePayment: days,
		Amount:           CurrentDailyRate(period, p, now).MulInt(days),
	}
}
