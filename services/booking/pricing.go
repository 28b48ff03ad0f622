package booking

import "deskhive/models"

// Rate is the fixed tariff for one duration type. PricePerSeat is in minor
// currency units.
type Rate struct {
	WorkingDays  int
	PricePerSeat int64
}

// rateTable is the wire contract between the UI and the engine: these three
// duration strings are the only accepted values.
var rateTable = map[models.DurationType]Rate{
	models.DurationDay:   {WorkingDays: 1, PricePerSeat: 150000},
	models.DurationWeek:  {WorkingDays: 6, PricePerSeat: 600000},
	models.DurationMonth: {WorkingDays: 24, PricePerSeat: 2400000},
}

// PriceFor maps a duration type to its working-day count and per-seat price.
// Pure lookup, no side effects.
func PriceFor(durationType models.DurationType) (Rate, error) {
	rate, ok := rateTable[durationType]
	if !ok {
		return Rate{}, ErrInvalidDurationType
	}
	return rate, nil
}

// TotalAmount computes the booking amount for a rate and seat count.
func TotalAmount(rate Rate, seatCount int) int64 {
	return rate.PricePerSeat * int64(seatCount)
}
