package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator handles request validation for the auth and chat boundary.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates any struct against its tags.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateRegister validates a registration payload.
func (v *Validator) ValidateRegister(req *RegisterRequest) ValidationErrors {
	return v.Validate(req)
}

// ValidateLogin validates a login payload.
func (v *Validator) ValidateLogin(req *LoginRequest) ValidationErrors {
	return v.Validate(req)
}

// ValidateChat validates an inbound chat message.
func (v *Validator) ValidateChat(req *ChatRequest) ValidationErrors {
	return v.Validate(req)
}

// StripLeadingZeros normalizes grade/class labels before storage ("07" -> "7").
func StripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}

// registerBusinessRules registers custom rule validators
func (v *Validator) registerBusinessRules() {
	// Student identifier (4-12 characters)
	v.validate.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		id := strings.TrimSpace(fl.Field().String())
		return len(id) >= 4 && len(id) <= 12
	})

	// Pre-hash password length (4-8 characters)
	v.validate.RegisterValidation("password_length", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		return len(pw) >= 4 && len(pw) <= 8
	})

	// Phone number (11-12 digits, digits only, no dashes)
	v.validate.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()
		if len(phone) < 11 || len(phone) > 12 {
			return false
		}
		for _, r := range phone {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	})

	// Grade / class number label (1-3 characters)
	v.validate.RegisterValidation("grade_label", func(fl validator.FieldLevel) bool {
		label := strings.TrimSpace(fl.Field().String())
		return len(label) >= 1 && len(label) <= 3
	})
}

// ValidationError describes one failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors is the aggregate returned by all Validate* methods.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}

// HasErrors reports whether any field failed.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// ToValidationErrors converts go-playground validator errors into ValidationErrors.
func ToValidationErrors(err error) ValidationErrors {
	var result ValidationErrors

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{
			Field:   "request",
			Message: err.Error(),
			Rule:    "struct",
		}}
	}

	for _, fe := range validationErrs {
		result = append(result, ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageForRule(fe.Tag()),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}

	return result
}

func messageForRule(rule string) string {
	switch rule {
	case "required":
		return "is required"
	case "student_id":
		return "must be 4-12 characters"
	case "password_length":
		return "must be 4-8 characters"
	case "phone_number":
		return "must be 11-12 digits (digits only, no dashes)"
	case "grade_label":
		return "must be 1-3 characters"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
