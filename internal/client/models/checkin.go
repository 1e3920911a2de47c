package models

// CheckinVerifyRequest is the three-factor check-in verification: QR code,
// phone suffix, and name must all match the registered participant.
type CheckinVerifyRequest struct {
	QRCodeID   string `json:"qr_code_id"`
	PhoneLast4 string `json:"phone_last4"`
	Name       string `json:"name"`
}

type CheckinVerifyResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Participant Participant `json:"participant"`
}

// CheckinLog is an append-only audit record, read-only to the client.
type CheckinLog struct {
	ID              int    `json:"id"`
	ParticipantID   int    `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	Organization    string `json:"organization"`
	CheckinTime     string `json:"checkin_time"`
	IPAddress       string `json:"ip_address,omitempty"`
	UserAgent       string `json:"user_agent,omitempty"`
}

// GroupCheckinStat is per-group check-in progress; participants with no
// group land in a dedicated "Ungrouped" bucket.
type GroupCheckinStat struct {
	Group     string  `json:"group"`
	Total     int     `json:"total"`
	CheckedIn int     `json:"checked_in"`
	Rate      float64 `json:"rate"`
}

type CheckinStats struct {
	Total     int     `json:"total"`
	CheckedIn int     `json:"checked_in"`
	Rate      float64 `json:"rate"`
}
