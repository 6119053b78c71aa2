package validator

import (
	"testing"
)

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		StudentID:   "student01",
		Name:        "Kim Minjun",
		PhoneNumber: "01012345678",
		SchoolName:  "Hanguk Middle School",
		Grade:       "2",
		ClassNo:     "7",
		Password:    "pass12",
	}
}

func TestValidator_ValidateRegister(t *testing.T) {
	v := New()

	t.Run("ValidPayload", func(t *testing.T) {
		if errs := v.ValidateRegister(validRegisterRequest()); errs.HasErrors() {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("StudentIDTooShort", func(t *testing.T) {
		req := validRegisterRequest()
		req.StudentID = "abc"
		errs := v.ValidateRegister(req)
		if !errs.HasErrors() {
			t.Fatal("expected validation errors")
		}
		if errs[0].Field != "studentid" {
			t.Errorf("expected studentid field error, got %s", errs[0].Field)
		}
	})

	t.Run("PasswordTooLong", func(t *testing.T) {
		req := validRegisterRequest()
		req.Password = "waytoolongpassword"
		if errs := v.ValidateRegister(req); !errs.HasErrors() {
			t.Fatal("expected validation errors")
		}
	})

	t.Run("PhoneNumberWithDashes", func(t *testing.T) {
		req := validRegisterRequest()
		req.PhoneNumber = "010-1234-5678"
		if errs := v.ValidateRegister(req); !errs.HasErrors() {
			t.Fatal("expected validation errors for non-digit phone number")
		}
	})

	t.Run("PhoneNumberTooShort", func(t *testing.T) {
		req := validRegisterRequest()
		req.PhoneNumber = "0101234"
		if errs := v.ValidateRegister(req); !errs.HasErrors() {
			t.Fatal("expected validation errors")
		}
	})

	t.Run("MissingSchoolName", func(t *testing.T) {
		req := validRegisterRequest()
		req.SchoolName = ""
		if errs := v.ValidateRegister(req); !errs.HasErrors() {
			t.Fatal("expected validation errors")
		}
	})

	t.Run("GradeTooLong", func(t *testing.T) {
		req := validRegisterRequest()
		req.Grade = "1234"
		if errs := v.ValidateRegister(req); !errs.HasErrors() {
			t.Fatal("expected validation errors")
		}
	})
}

func TestValidator_ValidateChat(t *testing.T) {
	v := New()

	t.Run("ValidMessage", func(t *testing.T) {
		if errs := v.ValidateChat(&ChatRequest{Message: "hi"}); errs.HasErrors() {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("EmptyMessage", func(t *testing.T) {
		if errs := v.ValidateChat(&ChatRequest{}); !errs.HasErrors() {
			t.Fatal("expected validation errors")
		}
	})
}

func TestStripLeadingZeros(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "leading zero stripped", in: "07", want: "7"},
		{name: "no leading zeros", in: "12", want: "12"},
		{name: "all zeros", in: "00", want: "0"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripLeadingZeros(tt.in); got != tt.want {
				t.Errorf("StripLeadingZeros(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
