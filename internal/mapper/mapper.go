package mapper

import (
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
)

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

// ToCompanySummary converts Company to CompanySummary
func ToCompanySummary(c *domain.Company) *domain.CompanySummary {
	if c == nil {
		return nil
	}
	return &domain.CompanySummary{ID: c.ID, Name: c.Name}
}

// ToContactSummary converts Contact to ContactSummary
func ToContactSummary(c *domain.Contact) *domain.ContactSummary {
	if c == nil {
		return nil
	}
	return &domain.ContactSummary{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// ToUserSummary converts User to UserSummary
func ToUserSummary(u *domain.User) *domain.UserSummary {
	if u == nil {
		return nil
	}
	return &domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ToEnquirySummary converts Enquiry to EnquirySummary
func ToEnquirySummary(e *domain.Enquiry) *domain.EnquirySummary {
	if e == nil {
		return nil
	}
	return &domain.EnquirySummary{ID: e.ID, Subject: e.Subject}
}

// ToBookingSummary converts Booking to BookingSummary
func ToBookingSummary(b *domain.Booking) *domain.BookingSummary {
	if b == nil {
		return nil
	}
	return &domain.BookingSummary{ID: b.ID, BookingNumber: b.BookingNumber, Title: b.Title}
}

// ToCompanyDTO converts Company to CompanyDTO
func ToCompanyDTO(c *domain.Company, enquiries, bookings, invoices int64) domain.CompanyDTO {
	dto := domain.CompanyDTO{
		ID:               c.ID,
		Name:             c.Name,
		CompanyNumber:    c.CompanyNumber,
		VATNumber:        c.VATNumber,
		Website:          c.Website,
		Industry:         c.Industry,
		Size:             c.Size,
		AddressLine1:     c.AddressLine1,
		AddressLine2:     c.AddressLine2,
		City:             c.City,
		County:           c.County,
		Postcode:         c.Postcode,
		Country:          c.Country,
		Phone:            c.Phone,
		Email:            c.Email,
		Status:           c.Status,
		Tags:             c.Tags,
		Notes:            c.Notes,
		Rating:           c.Rating,
		PrimaryContactID: c.PrimaryContactID,
		PrimaryContact:   ToContactSummary(c.PrimaryContact),
		EnquiryCount:     enquiries,
		BookingCount:     bookings,
		InvoiceCount:     invoices,
		CreatedAt:        fmtTime(c.CreatedAt),
		UpdatedAt:        fmtTime(c.UpdatedAt),
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	if c.DeletedAt.Valid {
		dto.DeletedAt = fmtTimePtr(&c.DeletedAt.Time)
	}
	return dto
}

// ToContactDTO converts Contact to ContactDTO
func ToContactDTO(c *domain.Contact) domain.ContactDTO {
	return domain.ContactDTO{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Company:   ToCompanySummary(c.Company),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		JobTitle:  c.JobTitle,
		Email:     c.Email,
		Phone:     c.Phone,
		Mobile:    c.Mobile,
		IsPrimary: c.IsPrimary,
		CreatedAt: fmtTime(c.CreatedAt),
		UpdatedAt: fmtTime(c.UpdatedAt),
	}
}

// ToEnquiryDTO converts Enquiry to EnquiryDTO
func ToEnquiryDTO(e *domain.Enquiry, quotes, bookings int64) domain.EnquiryDTO {
	dto := domain.EnquiryDTO{
		ID:              e.ID,
		CompanyID:       e.CompanyID,
		Company:         ToCompanySummary(e.Company),
		ContactID:       e.ContactID,
		Contact:         ToContactSummary(e.Contact),
		UserID:          e.UserID,
		AssignedTo:      ToUserSummary(e.AssignedTo),
		Subject:         e.Subject,
		Description:     e.Description,
		EnquiryType:     e.EnquiryType,
		EventDate:       fmtTimePtr(e.EventDate),
		EventLocation:   e.EventLocation,
		EstimatedGuests: e.EstimatedGuests,
		Budget:          e.Budget,
		Status:          e.Status,
		Priority:        e.Priority,
		Source:          e.Source,
		Tags:            e.Tags,
		CustomFields:    e.CustomFields,
		QuoteCount:      quotes,
		BookingCount:    bookings,
		CreatedAt:       fmtTime(e.CreatedAt),
		UpdatedAt:       fmtTime(e.UpdatedAt),
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	return dto
}

// ToEnquiryDetailDTO converts a fully loaded Enquiry to its detail shape
func ToEnquiryDetailDTO(e *domain.Enquiry) domain.EnquiryDetailDTO {
	detail := domain.EnquiryDetailDTO{
		EnquiryDTO: ToEnquiryDTO(e, int64(len(e.Quotes)), int64(len(e.Bookings))),
		Quotes:     make([]domain.QuoteDTO, len(e.Quotes)),
		Bookings:   make([]domain.BookingDTO, len(e.Bookings)),
		Notes:      make([]domain.NoteDTO, len(e.Notes)),
		OpenTasks:  make([]domain.TaskDTO, len(e.Tasks)),
	}
	for i := range e.Quotes {
		detail.Quotes[i] = ToQuoteDTO(&e.Quotes[i], 0)
	}
	for i := range e.Bookings {
		detail.Bookings[i] = ToBookingDTO(&e.Bookings[i], 0)
	}
	for i := range e.Notes {
		detail.Notes[i] = ToNoteDTO(&e.Notes[i])
	}
	for i := range e.Tasks {
		detail.OpenTasks[i] = ToTaskDTO(&e.Tasks[i])
	}
	return detail
}

// ToNoteDTO converts Note to NoteDTO
func ToNoteDTO(n *domain.Note) domain.NoteDTO {
	return domain.NoteDTO{
		ID:        n.ID,
		Body:      n.Body,
		CreatedBy: ToUserSummary(n.CreatedBy),
		CreatedAt: fmtTime(n.CreatedAt),
	}
}

// ToQuoteLineItemDTO converts QuoteLineItem to LineItemDTO
func ToQuoteLineItemDTO(item *domain.QuoteLineItem) domain.LineItemDTO {
	return domain.LineItemDTO{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		VATRate:     item.VATRate,
		Total:       item.Total,
		SortOrder:   item.SortOrder,
	}
}

// ToQuoteDTO converts Quote to QuoteDTO
func ToQuoteDTO(q *domain.Quote, bookingCount int64) domain.QuoteDTO {
	items := make([]domain.LineItemDTO, len(q.LineItems))
	for i := range q.LineItems {
		items[i] = ToQuoteLineItemDTO(&q.LineItems[i])
	}

	return domain.QuoteDTO{
		ID:                q.ID,
		QuoteNumber:       q.QuoteNumber,
		EnquiryID:         q.EnquiryID,
		Enquiry:           ToEnquirySummary(q.Enquiry),
		CompanyID:         q.CompanyID,
		Company:           ToCompanySummary(q.Company),
		ContactID:         q.ContactID,
		Contact:           ToContactSummary(q.Contact),
		UserID:            q.UserID,
		Title:             q.Title,
		Description:       q.Description,
		Subtotal:          q.Subtotal,
		VATRate:           q.VATRate,
		VATAmount:         q.VATAmount,
		Total:             q.Total,
		Currency:          q.Currency,
		QuoteDate:         fmtTime(q.QuoteDate),
		ValidUntil:        fmtTimePtr(q.ValidUntil),
		EventDate:         fmtTimePtr(q.EventDate),
		EventDuration:     q.EventDuration,
		Location:          q.Location,
		Status:            q.Status,
		PaymentTerms:      q.PaymentTerms,
		CancellationTerms: q.CancellationTerms,
		Notes:             q.Notes,
		LineItems:         items,
		BookingCount:      bookingCount,
		CreatedAt:         fmtTime(q.CreatedAt),
		UpdatedAt:         fmtTime(q.UpdatedAt),
	}
}

// ToBookingDTO converts Booking to BookingDTO
func ToBookingDTO(b *domain.Booking, invoiceCount int64) domain.BookingDTO {
	dto := domain.BookingDTO{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		EnquiryID:       b.EnquiryID,
		QuoteID:         b.QuoteID,
		CompanyID:       b.CompanyID,
		Company:         ToCompanySummary(b.Company),
		ContactID:       b.ContactID,
		Contact:         ToContactSummary(b.Contact),
		UserID:          b.UserID,
		AssignedTo:      ToUserSummary(b.AssignedTo),
		Title:           b.Title,
		EventDate:       fmtTime(b.EventDate),
		EventTime:       b.EventTime,
		EventDuration:   b.EventDuration,
		SetupTime:       b.SetupTime,
		Location:        b.Location,
		LocationDetails: b.LocationDetails,
		Postcode:        b.Postcode,
		ServiceType:     b.ServiceType,
		SpecialRequests: b.SpecialRequests,
		Requirements:    b.Requirements,
		Status:          b.Status,
		AgreedPrice:     b.AgreedPrice,
		DepositAmount:   b.DepositAmount,
		DepositPaid:     b.DepositPaid,
		BalancePaid:     b.BalancePaid,
		ConfirmedAt:     fmtTimePtr(b.ConfirmedAt),
		InvoiceCount:    invoiceCount,
		CreatedAt:       fmtTime(b.CreatedAt),
		UpdatedAt:       fmtTime(b.UpdatedAt),
	}
	if b.Contract != nil {
		dto.Contract = &domain.ContractSummary{ID: b.Contract.ID, Status: b.Contract.Status}
	}
	return dto
}

// ToPaymentDTO converts Payment to PaymentDTO
func ToPaymentDTO(p *domain.Payment) domain.PaymentDTO {
	return domain.PaymentDTO{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: fmtTime(p.PaymentDate),
		Method:      p.Method,
		Reference:   p.Reference,
		Status:      p.Status,
		CreatedAt:   fmtTime(p.CreatedAt),
	}
}

// ToInvoiceLineItemDTO converts InvoiceLineItem to LineItemDTO
func ToInvoiceLineItemDTO(item *domain.InvoiceLineItem) domain.LineItemDTO {
	return domain.LineItemDTO{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		VATRate:     item.VATRate,
		Total:       item.Total,
		SortOrder:   item.SortOrder,
	}
}

// ToInvoiceDTO converts Invoice to InvoiceDTO
func ToInvoiceDTO(inv *domain.Invoice) domain.InvoiceDTO {
	items := make([]domain.LineItemDTO, len(inv.LineItems))
	for i := range inv.LineItems {
		items[i] = ToInvoiceLineItemDTO(&inv.LineItems[i])
	}
	payments := make([]domain.PaymentDTO, len(inv.Payments))
	for i := range inv.Payments {
		payments[i] = ToPaymentDTO(&inv.Payments[i])
	}

	return domain.InvoiceDTO{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		BookingID:     inv.BookingID,
		Booking:       ToBookingSummary(inv.Booking),
		QuoteID:       inv.QuoteID,
		CompanyID:     inv.CompanyID,
		Company:       ToCompanySummary(inv.Company),
		ContactID:     inv.ContactID,
		Contact:       ToContactSummary(inv.Contact),
		UserID:        inv.UserID,
		Title:         inv.Title,
		Description:   inv.Description,
		InvoiceDate:   fmtTime(inv.InvoiceDate),
		DueDate:       fmtTime(inv.DueDate),
		Subtotal:      inv.Subtotal,
		VATRate:       inv.VATRate,
		VATAmount:     inv.VATAmount,
		Total:         inv.Total,
		AmountDue:     inv.AmountDue,
		Currency:      inv.Currency,
		Status:        inv.Status,
		PaymentTerms:  inv.PaymentTerms,
		PaymentMethod: inv.PaymentMethod,
		BankDetails:   inv.BankDetails,
		LineItems:     items,
		Payments:      payments,
		CreatedAt:     fmtTime(inv.CreatedAt),
		UpdatedAt:     fmtTime(inv.UpdatedAt),
	}
}

// ToContractDTO converts Contract to ContractDTO
func ToContractDTO(c *domain.Contract) domain.ContractDTO {
	return domain.ContractDTO{
		ID:             c.ID,
		ContractNumber: c.ContractNumber,
		BookingID:      c.BookingID,
		Booking:        ToBookingSummary(c.Booking),
		CompanyID:      c.CompanyID,
		Company:        ToCompanySummary(c.Company),
		ContactID:      c.ContactID,
		Contact:        ToContactSummary(c.Contact),
		Title:          c.Title,
		Content:        c.Content,
		TemplateID:     c.TemplateID,
		Status:         c.Status,
		SignedAt:       fmtTimePtr(c.SignedAt),
		HasDocument:    c.DocumentPath != "",
		CreatedAt:      fmtTime(c.CreatedAt),
		UpdatedAt:      fmtTime(c.UpdatedAt),
	}
}

// ToTaskDTO converts Task to TaskDTO
func ToTaskDTO(t *domain.Task) domain.TaskDTO {
	return domain.TaskDTO{
		ID:          t.ID,
		EnquiryID:   t.EnquiryID,
		Enquiry:     ToEnquirySummary(t.Enquiry),
		BookingID:   t.BookingID,
		Booking:     ToBookingSummary(t.Booking),
		UserID:      t.UserID,
		AssignedTo:  ToUserSummary(t.AssignedTo),
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     fmtTimePtr(t.DueDate),
		IsCompleted: t.IsCompleted,
		CompletedAt: fmtTimePtr(t.CompletedAt),
		CreatedAt:   fmtTime(t.CreatedAt),
		UpdatedAt:   fmtTime(t.UpdatedAt),
	}
}

// ToCalendarEventDTO converts CalendarEvent to CalendarEventDTO
func ToCalendarEventDTO(e *domain.CalendarEvent) domain.CalendarEventDTO {
	dto := domain.CalendarEventDTO{
		ID:            e.ID,
		BookingID:     e.BookingID,
		Title:         e.Title,
		Description:   e.Description,
		EventType:     e.EventType,
		StartDateTime: fmtTime(e.StartDateTime),
		EndDateTime:   fmtTime(e.EndDateTime),
		Location:      e.Location,
		CreatedAt:     fmtTime(e.CreatedAt),
		UpdatedAt:     fmtTime(e.UpdatedAt),
	}
	if e.Booking != nil {
		booking := ToBookingDTO(e.Booking, 0)
		dto.Booking = &booking
	}
	return dto
}
