package domain

// Identity is the authenticated caller, derived from a verified access token
// by the transport layer and passed explicitly into every service call.
type Identity struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}
