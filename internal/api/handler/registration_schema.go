package handler

import "time"

// registerRequest carries the participant form. Field checks live in the
// service so a closed event is reported before a malformed body.
type registerRequest struct {
	Participant string `json:"participant"`
	Relation    string `json:"relation"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
}

type registerResponse struct {
	Message        string `json:"message"`
	RegistrationID string `json:"registrationId"`
	QRCode         string `json:"qrCode"`
}

type cancelQuery struct {
	EventID string `query:"eventId"`
	User    string `query:"user"`
}

type registrationResponse struct {
	ID         string    `json:"_id"`
	User       string    `json:"user"`
	Event      string    `json:"event"`
	QRCodeData string    `json:"qrCodeData"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ticketResponse pairs a registration with its event; Event is null when
// the event was deleted.
type ticketResponse struct {
	Registration registrationResponse `json:"registration"`
	Event        *eventResponse       `json:"event"`
}
