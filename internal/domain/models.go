package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// BeforeCreate assigns a surrogate id when one was not supplied.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// User represents a staff member records can be assigned to.
// Identity comes from the auth layer; this table only mirrors
// what listings need to display.
type User struct {
	BaseModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(255);uniqueIndex;not null"`
}

// CompanyStatus represents the status of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
	CompanyStatusProspect CompanyStatus = "PROSPECT"
	CompanyStatusArchived CompanyStatus = "ARCHIVED"
)

// Company represents a client organization
type Company struct {
	BaseModel
	Name             string        `gorm:"type:varchar(200);not null;index"`
	CompanyNumber    string        `gorm:"type:varchar(20);column:company_number"`
	VATNumber        string        `gorm:"type:varchar(20);column:vat_number"`
	Website          string        `gorm:"type:varchar(500)"`
	Industry         string        `gorm:"type:varchar(100)"`
	Size             string        `gorm:"type:varchar(50)"`
	AddressLine1     string        `gorm:"type:varchar(200);column:address_line1"`
	AddressLine2     string        `gorm:"type:varchar(200);column:address_line2"`
	City             string        `gorm:"type:varchar(100)"`
	County           string        `gorm:"type:varchar(100)"`
	Postcode         string        `gorm:"type:varchar(20)"`
	Country          string        `gorm:"type:varchar(2);not null;default:'GB'"`
	Phone            string        `gorm:"type:varchar(50)"`
	Email            string        `gorm:"type:varchar(255)"`
	Status           CompanyStatus `gorm:"type:varchar(50);not null;default:'ACTIVE';index"`
	Tags             []string      `gorm:"serializer:json"`
	Notes            string        `gorm:"type:text"`
	Rating           *int          `gorm:"type:int"`
	PrimaryContactID *uuid.UUID    `gorm:"type:uuid;column:primary_contact_id"`
	PrimaryContact   *Contact      `gorm:"foreignKey:PrimaryContactID"`
	Contacts         []Contact     `gorm:"foreignKey:CompanyID"`
	Enquiries        []Enquiry     `gorm:"foreignKey:CompanyID"`
	Bookings         []Booking     `gorm:"foreignKey:CompanyID"`
	Invoices         []Invoice     `gorm:"foreignKey:CompanyID"`
}

// Contact represents an individual person at a company
type Contact struct {
	BaseModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID"`
	FirstName string    `gorm:"type:varchar(100);not null;column:first_name"`
	LastName  string    `gorm:"type:varchar(100);not null;column:last_name"`
	JobTitle  string    `gorm:"type:varchar(100);column:job_title"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Mobile    string    `gorm:"type:varchar(50)"`
	IsPrimary bool      `gorm:"not null;default:false;column:is_primary"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// EnquiryStatus represents the pipeline status of an enquiry
type EnquiryStatus string

const (
	EnquiryStatusNew         EnquiryStatus = "NEW"
	EnquiryStatusContacted   EnquiryStatus = "CONTACTED"
	EnquiryStatusQuoted      EnquiryStatus = "QUOTED"
	EnquiryStatusNegotiating EnquiryStatus = "NEGOTIATING"
	EnquiryStatusWon         EnquiryStatus = "WON"
	EnquiryStatusLost        EnquiryStatus = "LOST"
	EnquiryStatusArchived    EnquiryStatus = "ARCHIVED"
)

// Priority is shared by enquiries and tasks
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Weight returns a sortable rank for the priority.
func (p Priority) Weight() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Enquiry represents an inbound lead, the entry point of the pipeline
type Enquiry struct {
	BaseModel
	CompanyID       *uuid.UUID       `gorm:"type:uuid;index;column:company_id"`
	Company         *Company         `gorm:"foreignKey:CompanyID"`
	ContactID       *uuid.UUID       `gorm:"type:uuid;index;column:contact_id"`
	Contact         *Contact         `gorm:"foreignKey:ContactID"`
	UserID          *uuid.UUID       `gorm:"type:uuid;index;column:user_id"`
	AssignedTo      *User            `gorm:"foreignKey:UserID"`
	Subject         string           `gorm:"type:varchar(200);not null"`
	Description     string           `gorm:"type:text"`
	EnquiryType     string           `gorm:"type:varchar(50);not null;default:'WEDDING';column:enquiry_type"`
	EventDate       *time.Time       `gorm:"column:event_date"`
	EventLocation   string           `gorm:"type:varchar(500);column:event_location"`
	EstimatedGuests *int             `gorm:"column:estimated_guests"`
	Budget          *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Status          EnquiryStatus    `gorm:"type:varchar(50);not null;default:'NEW';index"`
	Priority        Priority         `gorm:"type:varchar(50);not null;default:'MEDIUM'"`
	Source          string           `gorm:"type:varchar(100)"`
	Tags            []string         `gorm:"serializer:json"`
	CustomFields    map[string]any   `gorm:"serializer:json;column:custom_fields"`
	Quotes          []Quote          `gorm:"foreignKey:EnquiryID"`
	Bookings        []Booking        `gorm:"foreignKey:EnquiryID"`
	Notes           []Note           `gorm:"foreignKey:EnquiryID"`
	Tasks           []Task           `gorm:"foreignKey:EnquiryID"`
}

// Note is a free-form annotation on an enquiry
type Note struct {
	BaseModel
	EnquiryID uuid.UUID  `gorm:"type:uuid;not null;index;column:enquiry_id"`
	UserID    *uuid.UUID `gorm:"type:uuid;column:user_id"`
	CreatedBy *User      `gorm:"foreignKey:UserID"`
	Body      string     `gorm:"type:text;not null"`
}

// QuoteStatus represents the status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "DRAFT"
	QuoteStatusSent      QuoteStatus = "SENT"
	QuoteStatusAccepted  QuoteStatus = "ACCEPTED"
	QuoteStatusRejected  QuoteStatus = "REJECTED"
	QuoteStatusExpired   QuoteStatus = "EXPIRED"
	QuoteStatusConverted QuoteStatus = "CONVERTED"
)

// Quote represents a priced proposal derived from an enquiry
type Quote struct {
	BaseModel
	EnquiryID         *uuid.UUID      `gorm:"type:uuid;index;column:enquiry_id"`
	Enquiry           *Enquiry        `gorm:"foreignKey:EnquiryID"`
	CompanyID         *uuid.UUID      `gorm:"type:uuid;index;column:company_id"`
	Company           *Company        `gorm:"foreignKey:CompanyID"`
	ContactID         *uuid.UUID      `gorm:"type:uuid;index;column:contact_id"`
	Contact           *Contact        `gorm:"foreignKey:ContactID"`
	UserID            *uuid.UUID      `gorm:"type:uuid;column:user_id"`
	QuoteNumber       string          `gorm:"type:varchar(20);uniqueIndex;not null;column:quote_number"`
	Title             string          `gorm:"type:varchar(200);not null"`
	Description       string          `gorm:"type:text"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	VATRate           decimal.Decimal `gorm:"type:decimal(5,4);not null;column:vat_rate"`
	VATAmount         decimal.Decimal `gorm:"type:decimal(15,2);not null;column:vat_amount"`
	Total             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'GBP'"`
	QuoteDate         time.Time       `gorm:"not null;column:quote_date"`
	ValidUntil        *time.Time      `gorm:"column:valid_until"`
	EventDate         *time.Time      `gorm:"column:event_date"`
	EventDuration     *int            `gorm:"column:event_duration"`
	Location          string          `gorm:"type:varchar(500)"`
	Status            QuoteStatus     `gorm:"type:varchar(50);not null;default:'DRAFT';index"`
	PaymentTerms      string          `gorm:"type:text;column:payment_terms"`
	CancellationTerms string          `gorm:"type:text;column:cancellation_terms"`
	Notes             string          `gorm:"type:text"`
	LineItems         []QuoteLineItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	Bookings          []Booking       `gorm:"foreignKey:QuoteID"`
}

// QuoteLineItem is one priced row within a quote
type QuoteLineItem struct {
	BaseModel
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index;column:quote_id"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null;column:unit_price"`
	VATRate     decimal.Decimal `gorm:"type:decimal(5,4);not null;column:vat_rate"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SortOrder   int             `gorm:"not null;default:0;column:sort_order"`
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
)

// Booking represents a confirmed, scheduled engagement
type Booking struct {
	BaseModel
	EnquiryID       *uuid.UUID       `gorm:"type:uuid;index;column:enquiry_id"`
	Enquiry         *Enquiry         `gorm:"foreignKey:EnquiryID"`
	QuoteID         *uuid.UUID       `gorm:"type:uuid;index;column:quote_id"`
	Quote           *Quote           `gorm:"foreignKey:QuoteID"`
	CompanyID       *uuid.UUID       `gorm:"type:uuid;index;column:company_id"`
	Company         *Company         `gorm:"foreignKey:CompanyID"`
	ContactID       *uuid.UUID       `gorm:"type:uuid;index;column:contact_id"`
	Contact         *Contact         `gorm:"foreignKey:ContactID"`
	UserID          *uuid.UUID       `gorm:"type:uuid;index;column:user_id"`
	AssignedTo      *User            `gorm:"foreignKey:UserID"`
	BookingNumber   string           `gorm:"type:varchar(20);uniqueIndex;not null;column:booking_number"`
	Title           string           `gorm:"type:varchar(200);not null"`
	EventDate       time.Time        `gorm:"not null;index;column:event_date"`
	EventTime       string           `gorm:"type:varchar(5);column:event_time"`
	EventDuration   int              `gorm:"not null;default:0;column:event_duration"`
	SetupTime       string           `gorm:"type:varchar(5);column:setup_time"`
	Location        string           `gorm:"type:varchar(500)"`
	LocationDetails string           `gorm:"type:text;column:location_details"`
	Postcode        string           `gorm:"type:varchar(20)"`
	ServiceType     string           `gorm:"type:varchar(100);column:service_type"`
	SpecialRequests string           `gorm:"type:text;column:special_requests"`
	Requirements    string           `gorm:"type:text"`
	Status          BookingStatus    `gorm:"type:varchar(50);not null;default:'PENDING';index"`
	AgreedPrice     *decimal.Decimal `gorm:"type:decimal(15,2);column:agreed_price"`
	DepositAmount   *decimal.Decimal `gorm:"type:decimal(15,2);column:deposit_amount"`
	DepositPaid     bool             `gorm:"not null;default:false;column:deposit_paid"`
	BalancePaid     bool             `gorm:"not null;default:false;column:balance_paid"`
	ConfirmedAt     *time.Time       `gorm:"column:confirmed_at"`
	Contract        *Contract        `gorm:"foreignKey:BookingID"`
	Invoices        []Invoice        `gorm:"foreignKey:BookingID"`
	CalendarEvents  []CalendarEvent  `gorm:"foreignKey:BookingID"`
	Tasks           []Task           `gorm:"foreignKey:BookingID"`
}

// EventWindow returns the start and end of the booked engagement.
// EventTime ("HH:MM") offsets into the event date; the duration is
// in minutes.
func (b *Booking) EventWindow() (time.Time, time.Time) {
	start := b.EventDate
	if len(b.EventTime) == 5 {
		if t, err := time.Parse("15:04", b.EventTime); err == nil {
			start = time.Date(start.Year(), start.Month(), start.Day(),
				t.Hour(), t.Minute(), 0, 0, start.Location())
		}
	}
	return start, start.Add(time.Duration(b.EventDuration) * time.Minute)
}

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft      InvoiceStatus = "DRAFT"
	InvoiceStatusSent       InvoiceStatus = "SENT"
	InvoiceStatusPartial    InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid       InvoiceStatus = "PAID"
	InvoiceStatusOverdue    InvoiceStatus = "OVERDUE"
	InvoiceStatusWrittenOff InvoiceStatus = "WRITTEN_OFF"
)

// Invoice represents a billing document tracked to settlement
type Invoice struct {
	BaseModel
	BookingID     *uuid.UUID        `gorm:"type:uuid;index;column:booking_id"`
	Booking       *Booking          `gorm:"foreignKey:BookingID"`
	QuoteID       *uuid.UUID        `gorm:"type:uuid;index;column:quote_id"`
	Quote         *Quote            `gorm:"foreignKey:QuoteID"`
	CompanyID     *uuid.UUID        `gorm:"type:uuid;index;column:company_id"`
	Company       *Company          `gorm:"foreignKey:CompanyID"`
	ContactID     *uuid.UUID        `gorm:"type:uuid;index;column:contact_id"`
	Contact       *Contact          `gorm:"foreignKey:ContactID"`
	UserID        *uuid.UUID        `gorm:"type:uuid;column:user_id"`
	InvoiceNumber string            `gorm:"type:varchar(20);uniqueIndex;not null;column:invoice_number"`
	Title         string            `gorm:"type:varchar(200);not null"`
	Description   string            `gorm:"type:text"`
	InvoiceDate   time.Time         `gorm:"not null;index;column:invoice_date"`
	DueDate       time.Time         `gorm:"not null;index;column:due_date"`
	Subtotal      decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	VATRate       decimal.Decimal   `gorm:"type:decimal(5,4);not null;column:vat_rate"`
	VATAmount     decimal.Decimal   `gorm:"type:decimal(15,2);not null;column:vat_amount"`
	Total         decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	AmountDue     decimal.Decimal   `gorm:"type:decimal(15,2);not null;column:amount_due"`
	Currency      string            `gorm:"type:varchar(3);not null;default:'GBP'"`
	Status        InvoiceStatus     `gorm:"type:varchar(50);not null;default:'DRAFT';index"`
	PaymentTerms  string            `gorm:"type:text;column:payment_terms"`
	PaymentMethod string            `gorm:"type:varchar(100);column:payment_method"`
	BankDetails   string            `gorm:"type:text;column:bank_details"`
	LineItems     []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments      []Payment         `gorm:"foreignKey:InvoiceID"`
}

// InvoiceLineItem is one priced row within an invoice
type InvoiceLineItem struct {
	BaseModel
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index;column:invoice_id"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null;column:unit_price"`
	VATRate     decimal.Decimal `gorm:"type:decimal(5,4);not null;column:vat_rate"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SortOrder   int             `gorm:"not null;default:0;column:sort_order"`
}

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Payment represents money received against an invoice
type Payment struct {
	BaseModel
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index;column:invoice_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentDate time.Time       `gorm:"not null;column:payment_date"`
	Method      string          `gorm:"type:varchar(100)"`
	Reference   string          `gorm:"type:varchar(200)"`
	Status      PaymentStatus   `gorm:"type:varchar(50);not null;default:'PENDING'"`
}

// ContractStatus represents the status of a contract
type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "DRAFT"
	ContractStatusSent      ContractStatus = "SENT"
	ContractStatusSigned    ContractStatus = "SIGNED"
	ContractStatusDeclined  ContractStatus = "DECLINED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// Contract represents a legal document tied to a booking
type Contract struct {
	BaseModel
	BookingID      uuid.UUID      `gorm:"type:uuid;not null;index;column:booking_id"`
	Booking        *Booking       `gorm:"foreignKey:BookingID"`
	CompanyID      *uuid.UUID     `gorm:"type:uuid;index;column:company_id"`
	Company        *Company       `gorm:"foreignKey:CompanyID"`
	ContactID      *uuid.UUID     `gorm:"type:uuid;index;column:contact_id"`
	Contact        *Contact       `gorm:"foreignKey:ContactID"`
	ContractNumber string         `gorm:"type:varchar(20);uniqueIndex;not null;column:contract_number"`
	Title          string         `gorm:"type:varchar(200);not null"`
	Content        string         `gorm:"type:text"`
	TemplateID     *uuid.UUID     `gorm:"type:uuid;column:template_id"`
	Status         ContractStatus `gorm:"type:varchar(50);not null;default:'DRAFT';index"`
	SignedAt       *time.Time     `gorm:"column:signed_at"`
	DocumentPath   string         `gorm:"type:varchar(500);column:document_path"`
}

// Task represents a follow-up item assigned to a user
type Task struct {
	BaseModel
	EnquiryID   *uuid.UUID `gorm:"type:uuid;index;column:enquiry_id"`
	Enquiry     *Enquiry   `gorm:"foreignKey:EnquiryID"`
	BookingID   *uuid.UUID `gorm:"type:uuid;index;column:booking_id"`
	Booking     *Booking   `gorm:"foreignKey:BookingID"`
	UserID      *uuid.UUID `gorm:"type:uuid;index;column:user_id"`
	AssignedTo  *User      `gorm:"foreignKey:UserID"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Priority    Priority   `gorm:"type:varchar(50);not null;default:'MEDIUM'"`
	DueDate     *time.Time `gorm:"index;column:due_date"`
	IsCompleted bool       `gorm:"not null;default:false;column:is_completed"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

// CalendarEventType distinguishes derived and manually created entries
type CalendarEventType string

const (
	CalendarEventTypeGig         CalendarEventType = "GIG"
	CalendarEventTypeSetup       CalendarEventType = "SETUP"
	CalendarEventTypeMeeting     CalendarEventType = "MEETING"
	CalendarEventTypeUnavailable CalendarEventType = "UNAVAILABLE"
)

// CalendarEvent represents a scheduled window, usually derived from a booking
type CalendarEvent struct {
	BaseModel
	BookingID     *uuid.UUID        `gorm:"type:uuid;index;column:booking_id"`
	Booking       *Booking          `gorm:"foreignKey:BookingID"`
	Title         string            `gorm:"type:varchar(200);not null"`
	Description   string            `gorm:"type:text"`
	EventType     CalendarEventType `gorm:"type:varchar(50);not null;default:'GIG';column:event_type"`
	StartDateTime time.Time         `gorm:"not null;index;column:start_datetime"`
	EndDateTime   time.Time         `gorm:"not null;column:end_datetime"`
	Location      string            `gorm:"type:varchar(500)"`
}

// DocumentKind identifies a numbered document type for sequence generation
type DocumentKind string

const (
	DocumentKindQuote    DocumentKind = "quote"
	DocumentKindBooking  DocumentKind = "booking"
	DocumentKindInvoice  DocumentKind = "invoice"
	DocumentKindContract DocumentKind = "contract"
)

// Prefix returns the document number prefix for the kind.
func (k DocumentKind) Prefix() string {
	switch k {
	case DocumentKindQuote:
		return "QT"
	case DocumentKindBooking:
		return "BK"
	case DocumentKindInvoice:
		return "INV"
	case DocumentKindContract:
		return "CON"
	}
	return ""
}

// IsValid checks if the DocumentKind is a known value.
func (k DocumentKind) IsValid() bool {
	return k.Prefix() != ""
}

// NumberSequence is the per-kind, per-year counter backing document numbers
type NumberSequence struct {
	ID           uint         `gorm:"primaryKey"`
	Kind         DocumentKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_number_sequences_kind_year"`
	Year         int          `gorm:"not null;uniqueIndex:idx_number_sequences_kind_year"`
	LastSequence int          `gorm:"not null;default:0;column:last_sequence"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}
