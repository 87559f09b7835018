package request

import (
	"errors"
	"time"

	"stagebook/internal/domain/booking"
	"stagebook/internal/domain/party"

	"github.com/google/uuid"
)

var (
	ErrMissingDate   = errors.New("request date is required")
	ErrMissingOwner  = errors.New("request owner is required")
	ErrMissingScope  = errors.New("request needs a target counterpart or a region")
	ErrAlreadyClosed = errors.New("request is already closed")
	ErrNotOpen       = errors.New("request is not open")
)

// Request is an open call for proposals against one date. Either side
// can initiate; the owner is whoever opened it.
type Request struct {
	id          uuid.UUID
	owner       party.Party
	date        time.Time
	initiatedBy party.Kind
	status      Status
	// Target scope: a specific counterpart, or an open geographic area.
	targetID *uuid.UUID
	region   *string

	createdAt time.Time
	updatedAt time.Time
}

func NewRequest(owner party.Party, date time.Time, targetID *uuid.UUID, region *string, now time.Time) (*Request, error) {
	if owner.IsZero() {
		return nil, ErrMissingOwner
	}
	if date.IsZero() {
		return nil, ErrMissingDate
	}
	if targetID == nil && (region == nil || *region == "") {
		return nil, ErrMissingScope
	}

	return &Request{
		id:          uuid.New(),
		owner:       owner,
		date:        booking.NormalizeDate(date),
		initiatedBy: owner.Kind,
		status:      StatusOpen,
		targetID:    targetID,
		region:      region,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRequest(
	id uuid.UUID,
	owner party.Party,
	date time.Time,
	initiatedBy party.Kind,
	status Status,
	targetID *uuid.UUID,
	region *string,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:          id,
		owner:       owner,
		date:        booking.NormalizeDate(date),
		initiatedBy: initiatedBy,
		status:      status,
		targetID:    targetID,
		region:      region,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Request) ID() uuid.UUID           { return r.id }
func (r *Request) Owner() party.Party      { return r.owner }
func (r *Request) Date() time.Time         { return r.date }
func (r *Request) InitiatedBy() party.Kind { return r.initiatedBy }
func (r *Request) Status() Status          { return r.status }
func (r *Request) TargetID() *uuid.UUID    { return r.targetID }
func (r *Request) Region() *string         { return r.region }
func (r *Request) CreatedAt() time.Time    { return r.createdAt }
func (r *Request) UpdatedAt() time.Time    { return r.updatedAt }

func (r *Request) IsOpen() bool {
	return r.status == StatusOpen
}

// Close stops the request from accepting further proposals. Called
// when a competing proposal is accepted for the same date.
func (r *Request) Close(now time.Time) error {
	if r.status == StatusClosed {
		return ErrAlreadyClosed
	}
	if r.status != StatusOpen {
		return ErrNotOpen
	}
	r.status = StatusClosed
	r.updatedAt = now
	return nil
}
