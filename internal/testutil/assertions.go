package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
)

// AssertAppError fails unless err unwraps to an *AppError carrying wantCode.
func AssertAppError(t *testing.T, err error, wantCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s, got nil", wantCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected %s, got non-app error %T: %v", wantCode, err, err)
	}
	if appErr.Code != wantCode {
		t.Errorf("expected %s, got %s (%d: %s)", wantCode, appErr.Code, appErr.StatusCode, appErr.Message)
	}
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAmount compares money by value, so "10" and "10.00" are equal.
func AssertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected amount %s, got %s", want, got)
	}
}
