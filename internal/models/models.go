package models

// ConvertedFile describes one successfully converted upload.
type ConvertedFile struct {
	Original  string `json:"original"`
	Converted string `json:"converted"`
	Size      int64  `json:"size"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// FailedFile describes one upload that could not be converted.
type FailedFile struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ConvertResponse is the JSON body returned by POST /api/convert.
type ConvertResponse struct {
	Success        bool            `json:"success"`
	SessionID      string          `json:"session_id"`
	Converted      []ConvertedFile `json:"converted"`
	Failed         []FailedFile    `json:"failed"`
	TotalConverted int             `json:"total_converted"`
	TotalFailed    int             `json:"total_failed"`
}

// ErrorResponse is the JSON body for request-level failures.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Failed []FailedFile `json:"failed,omitempty"`
}
