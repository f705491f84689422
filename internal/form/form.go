// Package form holds the state of the password form: which character classes
// are checked, the raw length text, and the password on display. It has no
// knowledge of how the form is rendered or transported.
package form

import (
	"strconv"

	"github.com/passform/passform-go/internal/passgen"
)

// Form is the presentation state of a single password form.
type Form struct {
	Classes   passgen.ClassSet `json:"classes"`
	Length    string           `json:"length"`
	Password  string           `json:"password"`
	Generated bool             `json:"generated"`
	Error     string           `json:"error,omitempty"`
}

// New returns a form in its initial state.
func New() Form {
	return Form{Classes: passgen.DefaultClassSet()}
}

// Toggle flips the checkbox for c.
func (f *Form) Toggle(c passgen.Class) {
	f.Classes = f.Classes.Toggle(c)
	f.Error = ""
}

// SetLength stores the raw length text as typed. It is not validated until
// Submit.
func (f *Form) SetLength(raw string) {
	f.Length = raw
	f.Error = ""
}

// Submit validates the length and generates a new password with gen. On
// failure the previous password stays on display, Error holds the inline
// message, and the error is returned.
func (f *Form) Submit(gen *passgen.Generator) error {
	n, err := passgen.ValidateLength(f.Length)
	if err != nil {
		f.Error = passgen.Message(err)
		return err
	}

	password, err := gen.Generate(n, f.Classes)
	if err != nil {
		f.Error = passgen.Message(err)
		return err
	}

	f.Password = password
	f.Generated = true
	f.Error = ""
	return nil
}

// Reset restores the initial state and clears the displayed password.
func (f *Form) Reset() {
	*f = New()
}

// ApplyPreset fills in a saved length and class selection. The current
// password stays on display until the next Submit.
func (f *Form) ApplyPreset(length int, classes passgen.ClassSet) {
	f.Length = strconv.Itoa(length)
	f.Classes = classes
	f.Error = ""
}
