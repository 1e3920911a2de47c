package models

// Participant is a contest entrant. QRCodeID is an alternate lookup key used
// by the check-in flow.
type Participant struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	PhoneLast4   string `json:"phone_last4"`
	PhotoPath    string `json:"photo_path,omitempty"`
	GroupID      *int   `json:"group_id,omitempty"`
	GroupName    string `json:"group_name,omitempty"`
	QRCodeID     string `json:"qr_code_id"`
	IsCheckedIn  bool   `json:"is_checked_in"`
	CheckinTime  string `json:"checkin_time,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type CreateParticipantRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	GroupID      *int   `json:"group_id,omitempty"`
}

// UpdateParticipantRequest carries only the fields to change; nil pointers
// are omitted from the request body.
type UpdateParticipantRequest struct {
	Name         *string `json:"name,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	GroupID      *int    `json:"group_id,omitempty"`
}

// ParticipantQuery is the filter/pagination set accepted by the list endpoint.
type ParticipantQuery struct {
	Page         int
	Size         int
	Organization string
	GroupID      *int
	IsCheckedIn  *bool
	Search       string
}

type ImportParticipantsRequest struct {
	Participants []CreateParticipantRequest `json:"participants"`
}

// FileUploadResponse describes a stored file (participant photo).
type FileUploadResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// QRCodeResponse is returned by single and bulk QR generation.
type QRCodeResponse struct {
	QRCodeID string `json:"qr_code_id"`
	URL      string `json:"url"`
}
