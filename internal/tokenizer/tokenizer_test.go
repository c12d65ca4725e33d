package tokenizer

import "testing"

func TestNewCounterKnownModel(t *testing.T) {
	counter, resolvedName, err := NewCounter("gpt-4o")
	if err != nil {
		t.Fatalf("NewCounter error: %v", err)
	}
	if counter == nil {
		t.Fatalf("expected non-nil counter")
	}
	if resolvedName != "gpt-4o" {
		t.Fatalf("expected resolved name gpt-4o, got %q", resolvedName)
	}
	if counter.Name() != resolvedName {
		t.Fatalf("expected counter name %q, got %q", resolvedName, counter.Name())
	}
	tokens, countErr := counter.CountString("hello world")
	if countErr != nil {
		t.Fatalf("CountString error: %v", countErr)
	}
	if tokens <= 0 {
		t.Fatalf("expected positive token count, got %d", tokens)
	}
}

func TestNewCounterFallsBackForUnknownModel(t *testing.T) {
	counter, resolvedName, err := NewCounter("gemini-1.5-flash-8b")
	if err != nil {
		t.Fatalf("NewCounter error: %v", err)
	}
	if resolvedName != defaultEncodingName {
		t.Fatalf("expected fallback to %s, got %q", defaultEncodingName, resolvedName)
	}
	tokens, countErr := counter.CountString("hello world")
	if countErr != nil {
		t.Fatalf("CountString error: %v", countErr)
	}
	if tokens <= 0 {
		t.Fatalf("expected positive token count, got %d", tokens)
	}
}

func TestNewCounterBlankModelUsesDefaultEncoding(t *testing.T) {
	_, resolvedName, err := NewCounter("   ")
	if err != nil {
		t.Fatalf("NewCounter error: %v", err)
	}
	if resolvedName != defaultEncodingName {
		t.Fatalf("expected default encoding for blank model, got %q", resolvedName)
	}
}
