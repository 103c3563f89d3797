package types

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Success   bool   `json:"success" example:"false"`
	Error     string `json:"error" example:"Location not found"`
	Details   string `json:"details,omitempty"` // only outside production mode
	RequestID string `json:"request_id,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"OK"`
	Message string `json:"message" example:"Travel Consultant API is running"`
}
