package puberr_test

import (
	"errors"
	"fmt"
	"testing"

	"jwsched/internal/puberr"
)

func TestCodeOfFindsInnermostTag(t *testing.T) {
	inner := puberr.New(puberr.CodeSuspiciousContent, "entry escapes the archive root")
	outer := puberr.Wrap(puberr.CodeInvalidArchive, "read contents", inner)

	code, ok := puberr.CodeOf(outer)
	if !ok || code != puberr.CodeSuspiciousContent {
		t.Fatalf("CodeOf: got %q,%v want SUSPICIOUS_CONTENT", code, ok)
	}
}

func TestCodeOfSurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("context: %w", puberr.New(puberr.CodeFileTooLarge, "too big"))
	if !puberr.IsCode(err, puberr.CodeFileTooLarge) {
		t.Fatalf("IsCode: got false for %v", err)
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if _, ok := puberr.CodeOf(errors.New("plain")); ok {
		t.Fatal("plain errors must carry no code")
	}
	if puberr.IsCode(nil, puberr.CodeIOError) {
		t.Fatal("nil error must carry no code")
	}
}

func TestErrorStringIncludesCodeAndCause(t *testing.T) {
	cause := errors.New("underlying")
	err := puberr.Wrap(puberr.CodeInvalidDatabase, "open database", cause)

	want := "INVALID_DATABASE: open database: underlying"
	if err.Error() != want {
		t.Fatalf("Error(): got %q want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause must remain reachable")
	}
}
