package application

import (
	"errors"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	var nilErr *ValidationError
	if nilErr.HasErrors() {
		t.Error("nil validation error should report no errors")
	}

	vErr := &ValidationError{}
	if vErr.HasErrors() {
		t.Error("empty validation error should report no errors")
	}

	vErr.add("title", "title is required")
	if !vErr.HasErrors() {
		t.Error("expected errors after add")
	}
	if vErr.FieldErrors["title"] != "title is required" {
		t.Errorf("unexpected field message: %v", vErr.FieldErrors)
	}
	if vErr.Error() != "validation failed" {
		t.Errorf("unexpected Error(): %q", vErr.Error())
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNotFound, "not_found"},
		{ErrAlreadyExists, "already_exists"},
		{ErrProtected, "protected"},
		{&ValidationError{FieldErrors: map[string]string{"title": "required"}}, "validation"},
		{errors.New("boom"), "unexpected"},
	}

	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
