package models

// Envelope wraps every API response:
//
//	{"success": true, "data": ..., "total": 3}
//	{"success": false, "error": "..."}
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Total   *int   `json:"total,omitempty"`
}
