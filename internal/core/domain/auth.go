package domain

// GoogleUserInfo is the subset of the Google identity payload the application
// cares about.
type GoogleUserInfo struct {
	ProviderUserID string `json:"sub"`
	Email          string `json:"email"`
	EmailVerified  bool   `json:"email_verified"`
	Name           string `json:"name"`
}
