package service

import (
	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/passgen"
)

// GeneratorService handles stateless validation and generation requests.
type GeneratorService struct {
	gen *passgen.Generator
}

// NewGeneratorService creates a new GeneratorService. Unseeded requests draw
// from gen.
func NewGeneratorService(gen *passgen.Generator) *GeneratorService {
	if gen == nil {
		gen = passgen.NewGenerator(nil)
	}
	return &GeneratorService{gen: gen}
}

// Validate checks raw length text without generating anything.
func (s *GeneratorService) Validate(req model.ValidateRequest) model.ValidateResponse {
	n, err := passgen.ValidateLength(req.Length)
	if err != nil {
		return model.ValidateResponse{
			Code:  passgen.Code(err),
			Error: passgen.Message(err),
		}
	}
	return model.ValidateResponse{Valid: true, Length: n}
}

// Generate validates the request and produces a password.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	n, err := passgen.ValidateLength(req.Length)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	defaults := passgen.DefaultClassSet()
	classes := passgen.ClassSet{
		Lowercase: boolOrDefault(req.Lowercase, defaults.Lowercase),
		Uppercase: boolOrDefault(req.Uppercase, defaults.Uppercase),
		Numbers:   boolOrDefault(req.Numbers, defaults.Numbers),
		Symbols:   boolOrDefault(req.Symbols, defaults.Symbols),
	}

	gen := s.gen
	if req.Seed != nil {
		gen = passgen.NewGenerator(passgen.NewSeededSource(*req.Seed))
	}

	password, err := gen.Generate(n, classes)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
	}, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
