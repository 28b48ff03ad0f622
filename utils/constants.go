package utils

import "time"

// SeatLockPrefix is the prefix used for Redis seat lock keys.
const SeatLockPrefix = "seatlock:"

// SeatLockTTL bounds how long a seat lock lease may be held if a caller
// crashes before releasing it.
const SeatLockTTL = 10 * time.Second

// PaymentHoldWindow is how long a pending booking holds its seats before the
// sweeper expires it.
const PaymentHoldWindow = 10 * time.Minute

// SeatMapCachePrefix is the prefix for cached seat map payloads, keyed by
// date range.
const SeatMapCachePrefix = "seatmap:"

// SeatMapCacheTTL bounds how stale a cached seat map may get. The booking
// path re-checks availability under the seat locks, so staleness here only
// affects the browse view.
const SeatMapCacheTTL = 30 * time.Second
