package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "day", ID: "3/14"},
			wantMsg:  "day not found: 3/14",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "abbreviation"},
			wantMsg:  "abbreviation not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "day", ID: "1/1", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidation("month", "13", "must be between 1 and 12")
	if got, want := err.Error(), "validation failed for month: must be between 1 and 12"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}

	bare := &ValidationError{Message: "empty"}
	if got, want := bare.Error(), "validation failed: empty"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "with message",
			err:     NewParse("Genesis", "missing chapter"),
			wantMsg: `cannot parse reference "Genesis": missing chapter`,
		},
		{
			name:    "with cause",
			err:     &ParseError{Text: "Gen, 1", Err: fmt.Errorf("unexpected token")},
			wantMsg: `cannot parse reference "Gen, 1": unexpected token`,
		},
		{
			name:    "bare",
			err:     &ParseError{Text: ""},
			wantMsg: `cannot parse reference ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}

	if !errors.Is(NewParse("x", "y"), ErrInvalidInput) {
		t.Error("ParseError without cause should unwrap to ErrInvalidInput")
	}

	cause := fmt.Errorf("unexpected token")
	withCause := &ParseError{Text: "Gen, 1", Err: cause}
	if !errors.Is(withCause, ErrInvalidInput) {
		t.Error("ParseError with cause should still match ErrInvalidInput")
	}
	if !errors.Is(withCause, cause) {
		t.Error("ParseError should match its cause")
	}
}

func TestResolveError(t *testing.T) {
	withStatus := &ResolveError{Reference: "John 3:16-18", StatusCode: 503, Status: "503 Service Unavailable"}
	if got, want := withStatus.Error(), `resolving "John 3:16-18": lookup failed: 503 Service Unavailable`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(withStatus, ErrUnavailable) {
		t.Error("ResolveError should unwrap to ErrUnavailable")
	}

	cause := fmt.Errorf("connection refused")
	withCause := &ResolveError{Reference: "John 3:16", Err: cause}
	if !errors.Is(withCause, cause) {
		t.Error("ResolveError should unwrap to its cause")
	}
	if !errors.Is(withCause, ErrUnavailable) {
		t.Error("ResolveError with cause should still match ErrUnavailable")
	}
}

func TestDecodeError(t *testing.T) {
	cause := fmt.Errorf("invalid character 'n'")
	err := &DecodeError{Month: 2, Day: 1, Err: cause}

	if got, want := err.Error(), "decoding readings for 1/2: invalid character 'n'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, cause) {
		t.Error("DecodeError should match ErrInvalidInput and its cause")
	}
}

func TestPersistError(t *testing.T) {
	cause := fmt.Errorf("database is locked")
	err := &PersistError{Month: 2, Day: 9, Err: cause}

	if got, want := err.Error(), "persisting 9/2: database is locked"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrPersist) {
		t.Error("PersistError should match ErrPersist")
	}
	if !errors.Is(err, cause) {
		t.Error("PersistError should match its cause")
	}

	var pe *PersistError
	if !As(Wrap(err, "applying"), &pe) {
		t.Fatal("As should find PersistError through Wrap")
	}
	if pe.Month != 2 || pe.Day != 9 {
		t.Errorf("PersistError key = %d/%d, want 9/2", pe.Day, pe.Month)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := Wrapf(base, "day %d", 4)
	if got, want := wrapped.Error(), "day 4: base"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
	if !Is(wrapped, base) {
		t.Error("Wrapf should preserve the chain")
	}
}
