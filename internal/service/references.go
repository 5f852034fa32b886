package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/repository"
)

// ReferenceResolver validates that foreign references in a request
// point at live records. A soft-deleted target counts as missing.
type ReferenceResolver struct {
	companies *repository.CompanyRepository
	contacts  *repository.ContactRepository
	users     *repository.UserRepository
	enquiries *repository.EnquiryRepository
	quotes    *repository.QuoteRepository
	bookings  *repository.BookingRepository
}

func NewReferenceResolver(
	companies *repository.CompanyRepository,
	contacts *repository.ContactRepository,
	users *repository.UserRepository,
	enquiries *repository.EnquiryRepository,
	quotes *repository.QuoteRepository,
	bookings *repository.BookingRepository,
) *ReferenceResolver {
	return &ReferenceResolver{
		companies: companies,
		contacts:  contacts,
		users:     users,
		enquiries: enquiries,
		quotes:    quotes,
		bookings:  bookings,
	}
}

func (r *ReferenceResolver) Company(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := r.companies.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Field: "companyId", Reason: "company not found"}
	}
	return nil
}

// Contact checks the contact exists and, when a company is also
// referenced, that the contact belongs to it.
func (r *ReferenceResolver) Contact(ctx context.Context, id *uuid.UUID, companyID *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if companyID != nil {
		ok, err := r.contacts.BelongsToCompany(ctx, *id, *companyID)
		if err != nil {
			return err
		}
		if !ok {
			return &ReferenceError{Field: "contactId", Reason: "contact not found for company"}
		}
		return nil
	}
	ok, err := r.contacts.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Field: "contactId", Reason: "contact not found"}
	}
	return nil
}

func (r *ReferenceResolver) User(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := r.users.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Field: "userId", Reason: "user not found"}
	}
	return nil
}

func (r *ReferenceResolver) Enquiry(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := r.enquiries.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Field: "enquiryId", Reason: "enquiry not found"}
	}
	return nil
}

func (r *ReferenceResolver) Quote(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := r.quotes.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Field: "quoteId", Reason: "quote not found"}
	}
	return nil
}

func (r *ReferenceResolver) Booking(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := r.bookings.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return &ReferenceError{Field: "bookingId", Reason: "booking not found"}
	}
	return nil
}
