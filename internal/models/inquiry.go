package models

import "time"

// Inquiry statuses, in the order an inquiry moves through them.
const (
	InquiryPending   = "pending"
	InquirySent      = "sent"
	InquiryFailed    = "failed"
	InquiryDuplicate = "duplicate"
)

// Inquiry is a contact form submission as archived on disk.
type Inquiry struct {
	ID         string    `json:"id"`
	Nombre     string    `json:"nombre"`
	Email      string    `json:"email"`
	Telefono   string    `json:"telefono,omitempty"`
	Mensaje    string    `json:"mensaje"`
	Tipo       string    `json:"tipo,omitempty"`
	TipoLabel  string    `json:"tipo_label"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	Provider   string    `json:"provider,omitempty"`
	Error      string    `json:"error,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
	SentAt     time.Time `json:"sent_at,omitzero"`
	FilePath   string    `json:"-"`
}
