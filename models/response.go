package models

// Response is the uniform JSON envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthCheckResponse returns the health check response, true or false
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
