//go:build unit || e2e

package builder

import (
	"time"

	"stagebook/internal/domain/party"
	domrequest "stagebook/internal/domain/request"

	"github.com/google/uuid"
)

type RequestBuilder struct {
	ID       uuid.UUID
	Owner    party.Party
	Date     time.Time
	Status   domrequest.Status
	TargetID *uuid.UUID
	Region   *string
	Now      time.Time
}

func NewRequestBuilder() *RequestBuilder {
	now := time.Now()
	region := "portland"
	return &RequestBuilder{
		ID:     uuid.New(),
		Owner:  party.NewArtist(uuid.New()),
		Date:   now.AddDate(0, 1, 0),
		Status: domrequest.StatusOpen,
		Region: &region,
		Now:    now,
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *RequestBuilder) BuildDomain() (*domrequest.Request, error) {
	return domrequest.NewRequest(b.Owner, b.Date, b.TargetID, b.Region, b.Now)
}

// BuildStored rehydrates a request as if read back from the database.
func (b *RequestBuilder) BuildStored() *domrequest.Request {
	return domrequest.ReconstructRequest(
		b.ID, b.Owner, b.Date,
		b.Owner.Kind, b.Status,
		b.TargetID, b.Region,
		b.Now, b.Now,
	)
}

// Fluent builder methods
func (b *RequestBuilder) WithOwner(p party.Party) *RequestBuilder {
	b.Owner = p
	return b
}

func (b *RequestBuilder) WithDate(date time.Time) *RequestBuilder {
	b.Date = date
	return b
}

func (b *RequestBuilder) WithStatus(status domrequest.Status) *RequestBuilder {
	b.Status = status
	return b
}

func (b *RequestBuilder) WithTargetID(id uuid.UUID) *RequestBuilder {
	b.TargetID = &id
	return b
}

func (b *RequestBuilder) WithRegion(region string) *RequestBuilder {
	b.Region = &region
	return b
}

func (b *RequestBuilder) WithoutScope() *RequestBuilder {
	b.TargetID = nil
	b.Region = nil
	return b
}

func (b *RequestBuilder) WithNow(now time.Time) *RequestBuilder {
	b.Now = now
	return b
}
