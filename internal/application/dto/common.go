package dto

// ErrorResponse cuerpo de error HTTP.
// Fields solo se llena en errores de validación (campo -> regla incumplida).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
