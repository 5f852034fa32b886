package domain

// Status transition tables. An update that changes a status field must
// name a target reachable from the current value; anything else is
// rejected by the services as a validation error. A status may always
// "transition" to itself (no-op updates carry the current value).

var enquiryTransitions = map[EnquiryStatus][]EnquiryStatus{
	EnquiryStatusNew:         {EnquiryStatusContacted, EnquiryStatusQuoted, EnquiryStatusLost, EnquiryStatusArchived},
	EnquiryStatusContacted:   {EnquiryStatusQuoted, EnquiryStatusNegotiating, EnquiryStatusLost, EnquiryStatusArchived},
	EnquiryStatusQuoted:      {EnquiryStatusNegotiating, EnquiryStatusWon, EnquiryStatusLost, EnquiryStatusArchived},
	EnquiryStatusNegotiating: {EnquiryStatusQuoted, EnquiryStatusWon, EnquiryStatusLost, EnquiryStatusArchived},
	EnquiryStatusWon:         {EnquiryStatusArchived},
	EnquiryStatusLost:        {EnquiryStatusArchived, EnquiryStatusContacted},
	EnquiryStatusArchived:    {},
}

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:     {QuoteStatusSent, QuoteStatusExpired},
	QuoteStatusSent:      {QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired},
	QuoteStatusAccepted:  {QuoteStatusConverted},
	QuoteStatusRejected:  {QuoteStatusSent},
	QuoteStatusExpired:   {QuoteStatusSent},
	QuoteStatusConverted: {},
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
	BookingStatusNoShow:     {},
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:      {InvoiceStatusSent, InvoiceStatusWrittenOff},
	InvoiceStatusSent:       {InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusWrittenOff},
	InvoiceStatusPartial:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusWrittenOff},
	InvoiceStatusOverdue:    {InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusWrittenOff},
	InvoiceStatusPaid:       {},
	InvoiceStatusWrittenOff: {},
}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractStatusDraft:     {ContractStatusSent, ContractStatusCancelled},
	ContractStatusSent:      {ContractStatusSigned, ContractStatusDeclined, ContractStatusCancelled},
	ContractStatusSigned:    {ContractStatusCancelled},
	ContractStatusDeclined:  {ContractStatusSent, ContractStatusCancelled},
	ContractStatusCancelled: {},
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// IsValid checks if the EnquiryStatus is a known value.
func (s EnquiryStatus) IsValid() bool {
	_, ok := enquiryTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to target.
func (s EnquiryStatus) CanTransitionTo(target EnquiryStatus) bool {
	if s == target {
		return true
	}
	return contains(enquiryTransitions[s], target)
}

// IsValid checks if the QuoteStatus is a known value.
func (s QuoteStatus) IsValid() bool {
	_, ok := quoteTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to target.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	if s == target {
		return true
	}
	return contains(quoteTransitions[s], target)
}

// IsValid checks if the BookingStatus is a known value.
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return true
	}
	return contains(bookingTransitions[s], target)
}

// IsValid checks if the InvoiceStatus is a known value.
func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to target.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s == target {
		return true
	}
	return contains(invoiceTransitions[s], target)
}

// IsValid checks if the ContractStatus is a known value.
func (s ContractStatus) IsValid() bool {
	_, ok := contractTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to target.
func (s ContractStatus) CanTransitionTo(target ContractStatus) bool {
	if s == target {
		return true
	}
	return contains(contractTransitions[s], target)
}

// IsValid checks if the CompanyStatus is a known value.
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusInactive, CompanyStatusProspect, CompanyStatusArchived:
		return true
	}
	return false
}

// IsValid checks if the Priority is a known value.
func (p Priority) IsValid() bool {
	return p.Weight() != 0
}

// IsValid checks if the PaymentStatus is a known value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// IsValid checks if the CalendarEventType is a known value.
func (t CalendarEventType) IsValid() bool {
	switch t {
	case CalendarEventTypeGig, CalendarEventTypeSetup, CalendarEventTypeMeeting, CalendarEventTypeUnavailable:
		return true
	}
	return false
}
