package handler

import "time"

type createEventRequest struct {
	Title                 string    `json:"title"                 validate:"required"`
	Description           string    `json:"description"`
	Date                  time.Time `json:"date"                  validate:"required"`
	Location              string    `json:"location"              validate:"required"`
	Organizer             string    `json:"organizer"             validate:"required"`
	Category              string    `json:"category"`
	OrganizerContact      string    `json:"organizerContact"`
	RegistrationStartDate time.Time `json:"registrationStartDate" validate:"required"`
	RegistrationEndDate   time.Time `json:"registrationEndDate"   validate:"required"`
}

// updateEventRequest distinguishes absent fields (nil) from empty ones.
type updateEventRequest struct {
	Organizer             string     `json:"organizer"`
	Title                 *string    `json:"title"`
	Description           *string    `json:"description"`
	Date                  *time.Time `json:"date"`
	Location              *string    `json:"location"`
	Category              *string    `json:"category"`
	OrganizerContact      *string    `json:"organizerContact"`
	RegistrationStartDate *time.Time `json:"registrationStartDate"`
	RegistrationEndDate   *time.Time `json:"registrationEndDate"`
	Attendees             *[]string  `json:"attendees"`
	// RemoveAttendees names identities to drop without restating the list.
	RemoveAttendees []string `json:"removeAttendees"`
}

// organizerRequest is the body of close, delete and organizer removals.
type organizerRequest struct {
	Organizer string `json:"organizer" query:"organizer"`
}

type eventResponse struct {
	ID                    string    `json:"_id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Date                  time.Time `json:"date"`
	Location              string    `json:"location"`
	Organizer             string    `json:"organizer"`
	Category              string    `json:"category"`
	OrganizerContact      string    `json:"organizerContact"`
	RegistrationStartDate time.Time `json:"registrationStartDate"`
	RegistrationEndDate   time.Time `json:"registrationEndDate"`
	Status                string    `json:"status"`
	Attendees             []string  `json:"attendees"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}
