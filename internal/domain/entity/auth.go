package entity

// AuthSession is the result of a successful password sign-in or token refresh.
type AuthSession struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UID          string `json:"uid"`
	Email        string `json:"email,omitempty"`
}

// Identity is the caller behind a verified ID token.
type Identity struct {
	UID   string
	Email string
}
