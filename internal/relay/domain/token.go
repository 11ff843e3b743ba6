package domain

// TokenBundle is the wire format the identity provider returns when
// exchanging or refreshing tokens. We pass it through to the frontend
// untouched so the frontend stays stateless and we never mint credentials
// of our own. Immutable once issued.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
