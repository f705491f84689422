package service

import (
	"errors"

	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/passgen"
	"github.com/passform/passform-go/internal/token"
)

// MaxLengthText bounds the raw length text a form can hold. The text is
// carried in the session token, so it must stay small.
const MaxLengthText = 32

var ErrLengthTextTooLong = errors.New("length text must be at most 32 bytes")

// FormService applies user actions to form sessions. Every action returns
// the updated form together with a freshly signed token.
type FormService struct {
	signer *token.Signer
	gen    *passgen.Generator
}

// NewFormService creates a new FormService.
func NewFormService(signer *token.Signer, gen *passgen.Generator) *FormService {
	if gen == nil {
		gen = passgen.NewGenerator(nil)
	}
	return &FormService{signer: signer, gen: gen}
}

// Start opens a new session with the initial form.
func (s *FormService) Start() (model.FormResponse, error) {
	return s.respond(token.NewSession())
}

// Current re-issues the session unchanged.
func (s *FormService) Current(sess token.Session) (model.FormResponse, error) {
	return s.respond(sess)
}

// Toggle flips the named character class.
func (s *FormService) Toggle(sess token.Session, className string) (model.FormResponse, error) {
	c, err := passgen.ParseClass(className)
	if err != nil {
		return model.FormResponse{}, err
	}
	sess.Form.Toggle(c)
	return s.respond(sess)
}

// SetLength stores raw length text.
func (s *FormService) SetLength(sess token.Session, req model.SetLengthRequest) (model.FormResponse, error) {
	if len(req.Length) > MaxLengthText {
		return model.FormResponse{}, ErrLengthTextTooLong
	}
	sess.Form.SetLength(req.Length)
	return s.respond(sess)
}

// Submit validates and generates. On a user error the returned response
// still carries the new state and the error is returned alongside it.
func (s *FormService) Submit(sess token.Session) (model.FormResponse, error) {
	submitErr := sess.Form.Submit(s.gen)
	if submitErr != nil && !passgen.IsUserError(submitErr) {
		return model.FormResponse{}, submitErr
	}

	resp, err := s.respond(sess)
	if err != nil {
		return model.FormResponse{}, err
	}
	return resp, submitErr
}

// Reset restores the initial form, keeping the session id.
func (s *FormService) Reset(sess token.Session) (model.FormResponse, error) {
	sess.Form.Reset()
	return s.respond(sess)
}

// ApplyPreset loads a saved configuration into the form.
func (s *FormService) ApplyPreset(sess token.Session, p model.PresetResponse) (model.FormResponse, error) {
	sess.Form.ApplyPreset(p.Length, p.Classes)
	return s.respond(sess)
}

func (s *FormService) respond(sess token.Session) (model.FormResponse, error) {
	tok, err := s.signer.Sign(sess)
	if err != nil {
		return model.FormResponse{}, err
	}
	return model.FormResponse{Token: tok, Form: sess.Form}, nil
}
