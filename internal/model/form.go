package model

import "github.com/passform/passform-go/internal/form"

// FormResponse carries the current form state and the token that encodes it.
// Clients must send the token back on their next form request.
type FormResponse struct {
	Token string    `json:"token"`
	Form  form.Form `json:"form"`
}

// FormErrorResponse is returned when a submit fails validation. The form
// and token still reflect the new state, including the inline error.
type FormErrorResponse struct {
	Error string    `json:"error"`
	Code  string    `json:"code"`
	Token string    `json:"token"`
	Form  form.Form `json:"form"`
}

// SetLengthRequest updates the raw length text of a form.
type SetLengthRequest struct {
	Length string `json:"length"`
}
