package utils

import "time"

// ReservationCachePrefix is the prefix used for Redis reservation cache keys.
const ReservationCachePrefix = "reservation:"

// ReservationCacheTTL is the time-to-live for reservation cache entries.
const ReservationCacheTTL = 10 * time.Minute

// HotelCapacity is the maximum number of guests accepted for a single booking.
const HotelCapacity = 50

// BookingReferenceLength is the length of generated booking numbers.
const BookingReferenceLength = 3
