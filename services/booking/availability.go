package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"deskhive/models"
	"deskhive/utils"
)

// CheckAvailability scans the bookedSeats ledger for each requested seat and
// tests the parent bookings for inclusive date-range overlap. The first
// conflicting seat short-circuits the scan. When rescheduling, the booking's
// own prior ledger entries are excluded via excludeBookingID.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, seatIDs []string, startDate, endDate, excludeBookingID string) (*AvailabilityResult, error) {
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}

	for _, seatID := range seatIDs {
		entries, err := s.Repo.ListActiveLedgerBySeat(ctx, seatID)
		if err != nil {
			return nil, fmt.Errorf("availability scan failed for seat %s: %w", seatID, err)
		}

		bookingIDs := make([]string, 0, len(entries))
		seatNumbers := make(map[string]int, len(entries))
		for _, entry := range entries {
			if entry.BookingID == excludeBookingID {
				continue
			}
			bookingIDs = append(bookingIDs, entry.BookingID)
			seatNumbers[entry.BookingID] = entry.SeatNumber
		}
		if len(bookingIDs) == 0 {
			continue
		}

		bookings, err := s.Repo.GetByIDs(ctx, bookingIDs)
		if err != nil {
			return nil, fmt.Errorf("availability scan failed for seat %s: %w", seatID, err)
		}
		for _, b := range bookings {
			if rangesOverlap(b.StartDate, b.EndDate, startDate, endDate) {
				return &AvailabilityResult{Available: false, ConflictingSeat: seatNumbers[b.ID]}, nil
			}
		}
	}
	return &AvailabilityResult{Available: true}, nil
}

// SeatMap returns every seat with its derived availability for the proposed
// range. Occupancy is never stored on seats; it is always computed from the
// ledger. Computed maps are cached briefly per range, since the full scan is
// one ledger query per seat; the booking path never reads this cache.
func (s *DefaultBookingService) SeatMap(ctx context.Context, startDate, endDate string) ([]models.SeatAvailability, error) {
	key := utils.SeatMapCachePrefix + startDate + ":" + endDate
	if s.Cache != nil {
		if raw, ok := s.Cache.Get(ctx, key); ok {
			var cached []models.SeatAvailability
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	seats, err := s.Seats.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		res, err := s.CheckAvailability(ctx, []string{seat.ID}, startDate, endDate, "")
		if err != nil {
			return nil, err
		}
		out = append(out, models.SeatAvailability{Seat: seat, Available: res.Available})
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			s.Cache.Set(ctx, key, raw, utils.SeatMapCacheTTL)
		}
	}
	return out, nil
}
