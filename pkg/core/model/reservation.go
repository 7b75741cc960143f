// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reservation models a claim on the catway with CatwayNumber number
// for the closed [StartDate, EndDate] interval.
type Reservation struct {
	ID           uuid.UUID `json:"id"`
	CatwayNumber int       `json:"catwayNumber"`
	ClientName   string    `json:"clientName"`
	BoatName     string    `json:"boatName"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
}

// Range returns the closed date range of r.
func (r *Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// Validate checks the reservation fields, ignoring its ID and
// CatwayNumber which are verified against the catways registry.
// A missing name wraps ErrMissingField and a wrong date range
// wraps ErrInvalidRange.
func (r *Reservation) Validate() error {
	switch {
	case r.ClientName == "":
		return fmt.Errorf("%w: clientName", ErrMissingField)
	case r.BoatName == "":
		return fmt.Errorf("%w: boatName", ErrMissingField)
	}
	return r.Range().Validate()
}

// ReservationUpdate lists the reservation fields which may be changed
// by an update operation. Omitted fields keep their stored values, so
// an update which supplies only one of the dates is checked against
// the merged range.
type ReservationUpdate struct {
	ClientName Field[string]
	BoatName   Field[string]
	StartDate  Field[time.Time]
	EndDate    Field[time.Time]
}

// Apply returns a copy of r having the supplied fields of u.
func (u ReservationUpdate) Apply(r Reservation) Reservation {
	r.ClientName = u.ClientName.Or(r.ClientName)
	r.BoatName = u.BoatName.Or(r.BoatName)
	r.StartDate = u.StartDate.Or(r.StartDate)
	r.EndDate = u.EndDate.Or(r.EndDate)
	return r
}

// DateRange is a closed interval of instants. Both ends belong to
// the range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate returns an error wrapping ErrMissingField if either end is
// zero, or wrapping ErrInvalidRange if Start comes after End.
func (dr DateRange) Validate() error {
	switch {
	case dr.Start.IsZero():
		return fmt.Errorf("%w: startDate", ErrMissingField)
	case dr.End.IsZero():
		return fmt.Errorf("%w: endDate", ErrMissingField)
	case dr.Start.After(dr.End):
		return fmt.Errorf(
			"%w: start %s is after end %s", ErrInvalidRange,
			dr.Start.Format(time.RFC3339), dr.End.Format(time.RFC3339),
		)
	}
	return nil
}

// Length returns the duration between Start and End.
func (dr DateRange) Length() time.Duration {
	return dr.End.Sub(dr.Start)
}

// Overlaps reports if dr and other share at least one instant.
func (dr DateRange) Overlaps(other DateRange) bool {
	return Overlaps(dr.Start, dr.End, other.Start, other.End)
}

// Overlaps reports if the closed [aStart, aEnd] and [bStart, bEnd]
// intervals intersect. Touching endpoints count as an intersection.
// Instants are compared, so time zones do not matter. Callers are
// responsible to reject ranges whose start comes after their end.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
