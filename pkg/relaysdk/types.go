package relaysdk

// TokenResponse carries the provider tokens handed to the frontend, either
// from redeeming an auth result or from a refresh. TokenType is omitted on
// refresh responses.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type,omitempty"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserInfoResponse describes the authenticated user, read from the access
// token's claims.
type UserInfoResponse struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// StatsResponse is the admin-only operational snapshot.
type StatsResponse struct {
	PendingResults int    `json:"pending_results"`
	Uptime         string `json:"uptime"`
	Version        string `json:"version"`
}

// ErrorResponse is the relay's error envelope for server-side failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope for client-correctable failures, such as
// a bad or expired result id.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthChecks reports per-dependency status in health responses.
type HealthChecks struct {
	ProviderKeys string `json:"provider_keys"`
}

// HealthResponse is returned by the liveness and readiness endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
