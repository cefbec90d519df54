package domain

import (
	"errors"
	"strings"
)

var (
	// ErrMissingLead is returned when the signup step is reached without a
	// captured lead.
	ErrMissingLead = errors.New("missing lead")
	// ErrUnauthorized is returned when a portal screen is requested without
	// an account.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAlreadyAuthenticated is returned by the public-only steps once the
	// session holds an account.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrDiagnosisPending is returned when a step needs the diagnosis while
	// it is still being computed.
	ErrDiagnosisPending = errors.New("diagnosis pending")
	// ErrInvalidTransition is returned for any other out-of-order step.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Messages shown on the client screens.
const (
	MsgIntakeIncomplete = "Preencha todos os campos obrigatórios."
	MsgPasswordTooShort = "Defina uma senha com pelo menos 4 caracteres."
	MsgPasswordTooLong  = "A senha deve ter no máximo 72 bytes."
	MsgPasswordMismatch = "As senhas não conferem."
	MsgTermsRequired    = "É preciso aceitar os termos."
	MsgMissingLead      = "Não encontramos os dados do orçamento. Refaça a simulação."
)

// ValidationError rejects a transition because of user input. The session
// is left unchanged.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
