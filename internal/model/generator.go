package model

// GenerateRequest represents a stateless password generation request.
// Length is the raw text the user typed; it goes through the same
// validation as the form. Pointer bools distinguish a missing flag (nil ->
// form default) from an explicit false.
type GenerateRequest struct {
	Length    string  `json:"length"`
	Lowercase *bool   `json:"lowercase"`
	Uppercase *bool   `json:"uppercase"`
	Numbers   *bool   `json:"numbers"`
	Symbols   *bool   `json:"symbols"`
	Seed      *uint64 `json:"seed,omitempty"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}

// ValidateRequest carries raw length text to validate.
type ValidateRequest struct {
	Length string `json:"length"`
}

// ValidateResponse reports the outcome of length validation.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Length int    `json:"length,omitempty"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}
