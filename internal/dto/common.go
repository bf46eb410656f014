package dto

// DataEnvelope is the success wrapper for every 2xx body: {success, data}.
// Message is set by mutations that report a human-readable summary.
type DataEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// HealthResponse reports liveness plus which storage mode is active.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"` // "connected" | "degraded"
	Timestamp string `json:"timestamp"`
}
