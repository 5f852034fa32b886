package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pagination carries the page window metadata returned with every list.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse is the envelope for all list operations.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// DataResponse wraps a single resource payload.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// APIResponse is the acknowledgment envelope for operations with no payload.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Summary DTOs embed just enough of a related entity for listings.

type CompanySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ContactSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type EnquirySummary struct {
	ID      uuid.UUID `json:"id"`
	Subject string    `json:"subject"`
}

type BookingSummary struct {
	ID            uuid.UUID `json:"id"`
	BookingNumber string    `json:"bookingNumber"`
	Title         string    `json:"title"`
}

type ContractSummary struct {
	ID     uuid.UUID      `json:"id"`
	Status ContractStatus `json:"status"`
}

type CompanyDTO struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	CompanyNumber    string          `json:"companyNumber,omitempty"`
	VATNumber        string          `json:"vatNumber,omitempty"`
	Website          string          `json:"website,omitempty"`
	Industry         string          `json:"industry,omitempty"`
	Size             string          `json:"size,omitempty"`
	AddressLine1     string          `json:"addressLine1,omitempty"`
	AddressLine2     string          `json:"addressLine2,omitempty"`
	City             string          `json:"city,omitempty"`
	County           string          `json:"county,omitempty"`
	Postcode         string          `json:"postcode,omitempty"`
	Country          string          `json:"country"`
	Phone            string          `json:"phone,omitempty"`
	Email            string          `json:"email,omitempty"`
	Status           CompanyStatus   `json:"status"`
	Tags             []string        `json:"tags"`
	Notes            string          `json:"notes,omitempty"`
	Rating           *int            `json:"rating,omitempty"`
	PrimaryContactID *uuid.UUID      `json:"primaryContactId,omitempty"`
	PrimaryContact   *ContactSummary `json:"primaryContact,omitempty"`
	EnquiryCount     int64           `json:"enquiryCount"`
	BookingCount     int64           `json:"bookingCount"`
	InvoiceCount     int64           `json:"invoiceCount"`
	CreatedAt        string          `json:"createdAt"` // ISO 8601
	UpdatedAt        string          `json:"updatedAt"` // ISO 8601
	DeletedAt        *string         `json:"deletedAt,omitempty"`
}

type ContactDTO struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"companyId"`
	Company   *CompanySummary `json:"company,omitempty"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	FullName  string          `json:"fullName"`
	JobTitle  string          `json:"jobTitle,omitempty"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Mobile    string          `json:"mobile,omitempty"`
	IsPrimary bool            `json:"isPrimary"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

type EnquiryDTO struct {
	ID              uuid.UUID        `json:"id"`
	CompanyID       *uuid.UUID       `json:"companyId,omitempty"`
	Company         *CompanySummary  `json:"company,omitempty"`
	ContactID       *uuid.UUID       `json:"contactId,omitempty"`
	Contact         *ContactSummary  `json:"contact,omitempty"`
	UserID          *uuid.UUID       `json:"userId,omitempty"`
	AssignedTo      *UserSummary     `json:"assignedTo,omitempty"`
	Subject         string           `json:"subject"`
	Description     string           `json:"description,omitempty"`
	EnquiryType     string           `json:"enquiryType"`
	EventDate       *string          `json:"eventDate,omitempty"`
	EventLocation   string           `json:"eventLocation,omitempty"`
	EstimatedGuests *int             `json:"estimatedGuests,omitempty"`
	Budget          *decimal.Decimal `json:"budget,omitempty"`
	Status          EnquiryStatus    `json:"status"`
	Priority        Priority         `json:"priority"`
	Source          string           `json:"source,omitempty"`
	Tags            []string         `json:"tags"`
	CustomFields    map[string]any   `json:"customFields,omitempty"`
	QuoteCount      int64            `json:"quoteCount"`
	BookingCount    int64            `json:"bookingCount"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

// EnquiryDetailDTO is the single-fetch shape with related records inlined.
type EnquiryDetailDTO struct {
	EnquiryDTO
	Quotes    []QuoteDTO   `json:"quotes"`
	Bookings  []BookingDTO `json:"bookings"`
	Notes     []NoteDTO    `json:"notes"`
	OpenTasks []TaskDTO    `json:"openTasks"`
}

type NoteDTO struct {
	ID        uuid.UUID    `json:"id"`
	Body      string       `json:"body"`
	CreatedBy *UserSummary `json:"createdBy,omitempty"`
	CreatedAt string       `json:"createdAt"`
}

type LineItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	Total       decimal.Decimal `json:"total"`
	SortOrder   int             `json:"sortOrder"`
}

type QuoteDTO struct {
	ID                uuid.UUID       `json:"id"`
	QuoteNumber       string          `json:"quoteNumber"`
	EnquiryID         *uuid.UUID      `json:"enquiryId,omitempty"`
	Enquiry           *EnquirySummary `json:"enquiry,omitempty"`
	CompanyID         *uuid.UUID      `json:"companyId,omitempty"`
	Company           *CompanySummary `json:"company,omitempty"`
	ContactID         *uuid.UUID      `json:"contactId,omitempty"`
	Contact           *ContactSummary `json:"contact,omitempty"`
	UserID            *uuid.UUID      `json:"userId,omitempty"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	VATRate           decimal.Decimal `json:"vatRate"`
	VATAmount         decimal.Decimal `json:"vatAmount"`
	Total             decimal.Decimal `json:"total"`
	Currency          string          `json:"currency"`
	QuoteDate         string          `json:"quoteDate"`
	ValidUntil        *string         `json:"validUntil,omitempty"`
	EventDate         *string         `json:"eventDate,omitempty"`
	EventDuration     *int            `json:"eventDuration,omitempty"`
	Location          string          `json:"location,omitempty"`
	Status            QuoteStatus     `json:"status"`
	PaymentTerms      string          `json:"paymentTerms,omitempty"`
	CancellationTerms string          `json:"cancellationTerms,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	LineItems         []LineItemDTO   `json:"lineItems"`
	BookingCount      int64           `json:"bookingCount"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
}

type BookingDTO struct {
	ID              uuid.UUID        `json:"id"`
	BookingNumber   string           `json:"bookingNumber"`
	EnquiryID       *uuid.UUID       `json:"enquiryId,omitempty"`
	QuoteID         *uuid.UUID       `json:"quoteId,omitempty"`
	CompanyID       *uuid.UUID       `json:"companyId,omitempty"`
	Company         *CompanySummary  `json:"company,omitempty"`
	ContactID       *uuid.UUID       `json:"contactId,omitempty"`
	Contact         *ContactSummary  `json:"contact,omitempty"`
	UserID          *uuid.UUID       `json:"userId,omitempty"`
	AssignedTo      *UserSummary     `json:"assignedTo,omitempty"`
	Title           string           `json:"title"`
	EventDate       string           `json:"eventDate"`
	EventTime       string           `json:"eventTime,omitempty"`
	EventDuration   int              `json:"eventDuration"`
	SetupTime       string           `json:"setupTime,omitempty"`
	Location        string           `json:"location,omitempty"`
	LocationDetails string           `json:"locationDetails,omitempty"`
	Postcode        string           `json:"postcode,omitempty"`
	ServiceType     string           `json:"serviceType,omitempty"`
	SpecialRequests string           `json:"specialRequests,omitempty"`
	Requirements    string           `json:"requirements,omitempty"`
	Status          BookingStatus    `json:"status"`
	AgreedPrice     *decimal.Decimal `json:"agreedPrice,omitempty"`
	DepositAmount   *decimal.Decimal `json:"depositAmount,omitempty"`
	DepositPaid     bool             `json:"depositPaid"`
	BalancePaid     bool             `json:"balancePaid"`
	ConfirmedAt     *string          `json:"confirmedAt,omitempty"`
	Contract        *ContractSummary `json:"contract,omitempty"`
	InvoiceCount    int64            `json:"invoiceCount"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

type PaymentDTO struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoiceId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"paymentDate"`
	Method      string          `json:"method,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   string          `json:"createdAt"`
}

type InvoiceDTO struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	BookingID     *uuid.UUID      `json:"bookingId,omitempty"`
	Booking       *BookingSummary `json:"booking,omitempty"`
	QuoteID       *uuid.UUID      `json:"quoteId,omitempty"`
	CompanyID     *uuid.UUID      `json:"companyId,omitempty"`
	Company       *CompanySummary `json:"company,omitempty"`
	ContactID     *uuid.UUID      `json:"contactId,omitempty"`
	Contact       *ContactSummary `json:"contact,omitempty"`
	UserID        *uuid.UUID      `json:"userId,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	InvoiceDate   string          `json:"invoiceDate"`
	DueDate       string          `json:"dueDate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VATRate       decimal.Decimal `json:"vatRate"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
	Total         decimal.Decimal `json:"total"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	Currency      string          `json:"currency"`
	Status        InvoiceStatus   `json:"status"`
	PaymentTerms  string          `json:"paymentTerms,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	BankDetails   string          `json:"bankDetails,omitempty"`
	LineItems     []LineItemDTO   `json:"lineItems"`
	Payments      []PaymentDTO    `json:"payments"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

type ContractDTO struct {
	ID             uuid.UUID       `json:"id"`
	ContractNumber string          `json:"contractNumber"`
	BookingID      uuid.UUID       `json:"bookingId"`
	Booking        *BookingSummary `json:"booking,omitempty"`
	CompanyID      *uuid.UUID      `json:"companyId,omitempty"`
	Company        *CompanySummary `json:"company,omitempty"`
	ContactID      *uuid.UUID      `json:"contactId,omitempty"`
	Contact        *ContactSummary `json:"contact,omitempty"`
	Title          string          `json:"title"`
	Content        string          `json:"content,omitempty"`
	TemplateID     *uuid.UUID      `json:"templateId,omitempty"`
	Status         ContractStatus  `json:"status"`
	SignedAt       *string         `json:"signedAt,omitempty"`
	HasDocument    bool            `json:"hasDocument"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

type TaskDTO struct {
	ID          uuid.UUID       `json:"id"`
	EnquiryID   *uuid.UUID      `json:"enquiryId,omitempty"`
	Enquiry     *EnquirySummary `json:"enquiry,omitempty"`
	BookingID   *uuid.UUID      `json:"bookingId,omitempty"`
	Booking     *BookingSummary `json:"booking,omitempty"`
	UserID      *uuid.UUID      `json:"userId,omitempty"`
	AssignedTo  *UserSummary    `json:"assignedTo,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    Priority        `json:"priority"`
	DueDate     *string         `json:"dueDate,omitempty"`
	IsCompleted bool            `json:"isCompleted"`
	CompletedAt *string         `json:"completedAt,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type CalendarEventDTO struct {
	ID            uuid.UUID         `json:"id"`
	BookingID     *uuid.UUID        `json:"bookingId,omitempty"`
	Booking       *BookingDTO       `json:"booking,omitempty"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	EventType     CalendarEventType `json:"eventType"`
	StartDateTime string            `json:"startDateTime"`
	EndDateTime   string            `json:"endDateTime"`
	Location      string            `json:"location,omitempty"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

// Request DTOs

// InlineContactRequest carries a primary contact created with a company.
type InlineContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	JobTitle  string `json:"jobTitle,omitempty" validate:"max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	Mobile    string `json:"mobile,omitempty" validate:"max=50"`
}

type CreateCompanyRequest struct {
	Name          string                `json:"name" validate:"required,max=200"`
	CompanyNumber string                `json:"companyNumber,omitempty" validate:"max=20"`
	VATNumber     string                `json:"vatNumber,omitempty" validate:"max=20"`
	Website       string                `json:"website,omitempty" validate:"omitempty,url,max=500"`
	Industry      string                `json:"industry,omitempty" validate:"max=100"`
	Size          string                `json:"size,omitempty" validate:"max=50"`
	AddressLine1  string                `json:"addressLine1,omitempty" validate:"max=200"`
	AddressLine2  string                `json:"addressLine2,omitempty" validate:"max=200"`
	City          string                `json:"city,omitempty" validate:"max=100"`
	County        string                `json:"county,omitempty" validate:"max=100"`
	Postcode      string                `json:"postcode,omitempty" validate:"max=20"`
	Country       string                `json:"country,omitempty" validate:"omitempty,len=2"`
	Phone         string                `json:"phone,omitempty" validate:"max=50"`
	Email         string                `json:"email,omitempty" validate:"omitempty,email"`
	Status        CompanyStatus         `json:"status,omitempty"`
	Tags          []string              `json:"tags,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Rating        *int                  `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Contact       *InlineContactRequest `json:"contact,omitempty"`
}

type UpdateCompanyRequest struct {
	Name          *string        `json:"name,omitempty" validate:"omitempty,max=200"`
	CompanyNumber *string        `json:"companyNumber,omitempty" validate:"omitempty,max=20"`
	VATNumber     *string        `json:"vatNumber,omitempty" validate:"omitempty,max=20"`
	Website       *string        `json:"website,omitempty" validate:"omitempty,url,max=500"`
	Industry      *string        `json:"industry,omitempty" validate:"omitempty,max=100"`
	Size          *string        `json:"size,omitempty" validate:"omitempty,max=50"`
	AddressLine1  *string        `json:"addressLine1,omitempty" validate:"omitempty,max=200"`
	AddressLine2  *string        `json:"addressLine2,omitempty" validate:"omitempty,max=200"`
	City          *string        `json:"city,omitempty" validate:"omitempty,max=100"`
	County        *string        `json:"county,omitempty" validate:"omitempty,max=100"`
	Postcode      *string        `json:"postcode,omitempty" validate:"omitempty,max=20"`
	Country       *string        `json:"country,omitempty" validate:"omitempty,len=2"`
	Phone         *string        `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email         *string        `json:"email,omitempty" validate:"omitempty,email"`
	Status        *CompanyStatus `json:"status,omitempty"`
	Tags          *[]string      `json:"tags,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	Rating        *int           `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

type CreateContactRequest struct {
	CompanyID uuid.UUID `json:"companyId" validate:"required"`
	FirstName string    `json:"firstName" validate:"required,max=100"`
	LastName  string    `json:"lastName" validate:"required,max=100"`
	JobTitle  string    `json:"jobTitle,omitempty" validate:"max=100"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string    `json:"phone,omitempty" validate:"max=50"`
	Mobile    string    `json:"mobile,omitempty" validate:"max=50"`
	IsPrimary bool      `json:"isPrimary,omitempty"`
}

type UpdateContactRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	JobTitle  *string `json:"jobTitle,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Mobile    *string `json:"mobile,omitempty" validate:"omitempty,max=50"`
	IsPrimary *bool   `json:"isPrimary,omitempty"`
}

type CreateEnquiryRequest struct {
	CompanyID       *uuid.UUID       `json:"companyId,omitempty"`
	ContactID       *uuid.UUID       `json:"contactId,omitempty"`
	UserID          *uuid.UUID       `json:"userId,omitempty"`
	Subject         string           `json:"subject" validate:"required,max=200"`
	Description     string           `json:"description,omitempty"`
	EnquiryType     string           `json:"enquiryType,omitempty" validate:"max=50"`
	EventDate       *string          `json:"eventDate,omitempty"`
	EventLocation   string           `json:"eventLocation,omitempty" validate:"max=500"`
	EstimatedGuests *int             `json:"estimatedGuests,omitempty" validate:"omitempty,gte=0"`
	Budget          *decimal.Decimal `json:"budget,omitempty"`
	Status          EnquiryStatus    `json:"status,omitempty"`
	Priority        Priority         `json:"priority,omitempty"`
	Source          string           `json:"source,omitempty" validate:"max=100"`
	Tags            []string         `json:"tags,omitempty"`
	CustomFields    map[string]any   `json:"customFields,omitempty"`
}

type UpdateEnquiryRequest struct {
	CompanyID       *uuid.UUID       `json:"companyId,omitempty"`
	ContactID       *uuid.UUID       `json:"contactId,omitempty"`
	UserID          *uuid.UUID       `json:"userId,omitempty"`
	Subject         *string          `json:"subject,omitempty" validate:"omitempty,max=200"`
	Description     *string          `json:"description,omitempty"`
	EnquiryType     *string          `json:"enquiryType,omitempty" validate:"omitempty,max=50"`
	EventDate       *string          `json:"eventDate,omitempty"`
	EventLocation   *string          `json:"eventLocation,omitempty" validate:"omitempty,max=500"`
	EstimatedGuests *int             `json:"estimatedGuests,omitempty" validate:"omitempty,gte=0"`
	Budget          *decimal.Decimal `json:"budget,omitempty"`
	Status          *EnquiryStatus   `json:"status,omitempty"`
	Priority        *Priority        `json:"priority,omitempty"`
	Source          *string          `json:"source,omitempty" validate:"omitempty,max=100"`
	Tags            *[]string        `json:"tags,omitempty"`
	CustomFields    *map[string]any  `json:"customFields,omitempty"`
}

type CreateNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

// LineItemInput is one inbound line item row; a caller-supplied total
// wins over the computed quantity x unitPrice.
type LineItemInput struct {
	Description string           `json:"description" validate:"required,max=500"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	VATRate     *decimal.Decimal `json:"vatRate,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

type CreateQuoteRequest struct {
	EnquiryID         *uuid.UUID       `json:"enquiryId,omitempty"`
	CompanyID         *uuid.UUID       `json:"companyId,omitempty"`
	ContactID         *uuid.UUID       `json:"contactId,omitempty"`
	UserID            *uuid.UUID       `json:"userId,omitempty"`
	Title             string           `json:"title" validate:"required,max=200"`
	Description       string           `json:"description,omitempty"`
	VATRate           *decimal.Decimal `json:"vatRate,omitempty"`
	Currency          string           `json:"currency,omitempty" validate:"omitempty,len=3"`
	QuoteDate         *string          `json:"quoteDate,omitempty"`
	ValidUntil        *string          `json:"validUntil,omitempty"`
	EventDate         *string          `json:"eventDate,omitempty"`
	EventDuration     *int             `json:"eventDuration,omitempty" validate:"omitempty,gte=0"`
	Location          string           `json:"location,omitempty" validate:"max=500"`
	Status            QuoteStatus      `json:"status,omitempty"`
	PaymentTerms      string           `json:"paymentTerms,omitempty"`
	CancellationTerms string           `json:"cancellationTerms,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	LineItems         []LineItemInput  `json:"lineItems,omitempty" validate:"omitempty,dive"`
}

type UpdateQuoteRequest struct {
	Title             *string      `json:"title,omitempty" validate:"omitempty,max=200"`
	Description       *string      `json:"description,omitempty"`
	ValidUntil        *string      `json:"validUntil,omitempty"`
	EventDate         *string      `json:"eventDate,omitempty"`
	EventDuration     *int         `json:"eventDuration,omitempty" validate:"omitempty,gte=0"`
	Location          *string      `json:"location,omitempty" validate:"omitempty,max=500"`
	Status            *QuoteStatus `json:"status,omitempty"`
	PaymentTerms      *string      `json:"paymentTerms,omitempty"`
	CancellationTerms *string      `json:"cancellationTerms,omitempty"`
	Notes             *string      `json:"notes,omitempty"`
}

type CreateBookingRequest struct {
	EnquiryID       *uuid.UUID       `json:"enquiryId,omitempty"`
	QuoteID         *uuid.UUID       `json:"quoteId,omitempty"`
	CompanyID       *uuid.UUID       `json:"companyId,omitempty"`
	ContactID       *uuid.UUID       `json:"contactId,omitempty"`
	UserID          *uuid.UUID       `json:"userId,omitempty"`
	Title           string           `json:"title" validate:"required,max=200"`
	EventDate       string           `json:"eventDate" validate:"required"`
	EventTime       string           `json:"eventTime,omitempty" validate:"omitempty,len=5"`
	EventDuration   int              `json:"eventDuration,omitempty" validate:"gte=0"`
	SetupTime       string           `json:"setupTime,omitempty" validate:"omitempty,len=5"`
	Location        string           `json:"location,omitempty" validate:"max=500"`
	LocationDetails string           `json:"locationDetails,omitempty"`
	Postcode        string           `json:"postcode,omitempty" validate:"max=20"`
	ServiceType     string           `json:"serviceType,omitempty" validate:"max=100"`
	SpecialRequests string           `json:"specialRequests,omitempty"`
	Requirements    string           `json:"requirements,omitempty"`
	Status          BookingStatus    `json:"status,omitempty"`
	AgreedPrice     *decimal.Decimal `json:"agreedPrice,omitempty"`
	DepositAmount   *decimal.Decimal `json:"depositAmount,omitempty"`
	DepositPaid     bool             `json:"depositPaid,omitempty"`
	BalancePaid     bool             `json:"balancePaid,omitempty"`
}

type UpdateBookingRequest struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,max=200"`
	EventDate       *string          `json:"eventDate,omitempty"`
	EventTime       *string          `json:"eventTime,omitempty" validate:"omitempty,len=5"`
	EventDuration   *int             `json:"eventDuration,omitempty" validate:"omitempty,gte=0"`
	SetupTime       *string          `json:"setupTime,omitempty" validate:"omitempty,len=5"`
	Location        *string          `json:"location,omitempty" validate:"omitempty,max=500"`
	LocationDetails *string          `json:"locationDetails,omitempty"`
	Postcode        *string          `json:"postcode,omitempty" validate:"omitempty,max=20"`
	ServiceType     *string          `json:"serviceType,omitempty" validate:"omitempty,max=100"`
	SpecialRequests *string          `json:"specialRequests,omitempty"`
	Requirements    *string          `json:"requirements,omitempty"`
	Status          *BookingStatus   `json:"status,omitempty"`
	AgreedPrice     *decimal.Decimal `json:"agreedPrice,omitempty"`
	DepositAmount   *decimal.Decimal `json:"depositAmount,omitempty"`
	DepositPaid     *bool            `json:"depositPaid,omitempty"`
	BalancePaid     *bool            `json:"balancePaid,omitempty"`
	UserID          *uuid.UUID       `json:"userId,omitempty"`
}

type CreateInvoiceRequest struct {
	BookingID     *uuid.UUID       `json:"bookingId,omitempty"`
	QuoteID       *uuid.UUID       `json:"quoteId,omitempty"`
	CompanyID     *uuid.UUID       `json:"companyId,omitempty"`
	ContactID     *uuid.UUID       `json:"contactId,omitempty"`
	UserID        *uuid.UUID       `json:"userId,omitempty"`
	Title         string           `json:"title" validate:"required,max=200"`
	Description   string           `json:"description,omitempty"`
	InvoiceDate   *string          `json:"invoiceDate,omitempty"`
	DueDate       string           `json:"dueDate" validate:"required"`
	VATRate       *decimal.Decimal `json:"vatRate,omitempty"`
	Currency      string           `json:"currency,omitempty" validate:"omitempty,len=3"`
	Status        InvoiceStatus    `json:"status,omitempty"`
	PaymentTerms  string           `json:"paymentTerms,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty" validate:"max=100"`
	BankDetails   string           `json:"bankDetails,omitempty"`
	LineItems     []LineItemInput  `json:"lineItems,omitempty" validate:"omitempty,dive"`
}

type UpdateInvoiceRequest struct {
	Title         *string        `json:"title,omitempty" validate:"omitempty,max=200"`
	Description   *string        `json:"description,omitempty"`
	DueDate       *string        `json:"dueDate,omitempty"`
	Status        *InvoiceStatus `json:"status,omitempty"`
	PaymentTerms  *string        `json:"paymentTerms,omitempty"`
	PaymentMethod *string        `json:"paymentMethod,omitempty" validate:"omitempty,max=100"`
	BankDetails   *string        `json:"bankDetails,omitempty"`
}

type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *string         `json:"paymentDate,omitempty"`
	Method      string          `json:"method,omitempty" validate:"max=100"`
	Reference   string          `json:"reference,omitempty" validate:"max=200"`
	Status      PaymentStatus   `json:"status,omitempty"`
}

type UpdatePaymentStatusRequest struct {
	Status PaymentStatus `json:"status" validate:"required"`
}

type CreateContractRequest struct {
	BookingID  uuid.UUID      `json:"bookingId" validate:"required"`
	CompanyID  *uuid.UUID     `json:"companyId,omitempty"`
	ContactID  *uuid.UUID     `json:"contactId,omitempty"`
	Title      string         `json:"title" validate:"required,max=200"`
	Content    string         `json:"content,omitempty"`
	TemplateID *uuid.UUID     `json:"templateId,omitempty"`
	Status     ContractStatus `json:"status,omitempty"`
}

type UpdateContractRequest struct {
	Title   *string         `json:"title,omitempty" validate:"omitempty,max=200"`
	Content *string         `json:"content,omitempty"`
	Status  *ContractStatus `json:"status,omitempty"`
}

type CreateTaskRequest struct {
	EnquiryID   *uuid.UUID `json:"enquiryId,omitempty"`
	BookingID   *uuid.UUID `json:"bookingId,omitempty"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *string    `json:"dueDate,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *string    `json:"dueDate,omitempty"`
	IsCompleted *bool      `json:"isCompleted,omitempty"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
}

type CreateCalendarEventRequest struct {
	BookingID     *uuid.UUID        `json:"bookingId,omitempty"`
	Title         string            `json:"title" validate:"required,max=200"`
	Description   string            `json:"description,omitempty"`
	EventType     CalendarEventType `json:"eventType,omitempty"`
	StartDateTime string            `json:"startDateTime" validate:"required"`
	EndDateTime   string            `json:"endDateTime" validate:"required"`
	Location      string            `json:"location,omitempty" validate:"max=500"`
}
