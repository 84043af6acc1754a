package discovery

import (
	"errors"
	"testing"
)

func TestExpect(t *testing.T) {
	expected := []string{
		"01_risk_distribution_exploration.ipynb",
		"02_temporal_risk_dynamics.ipynb",
		"03_hazard_modeling.ipynb",
	}
	found := []string{
		"notebooks/01_risk_distribution_exploration.ipynb",
		"notebooks/02_temporal_risk_dynamics.ipynb",
		"notebooks/03_hazard_modeling.ipynb",
		"notebooks/04_extra.ipynb",
	}

	if err := Expect(found, expected); err != nil {
		t.Fatalf("Expect returned error: %v", err)
	}

	err := Expect(found[1:], expected)
	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingError, got %v", err)
	}
	if missing.Name != expected[0] {
		t.Fatalf("missing name = %q, want %q", missing.Name, expected[0])
	}
	if got, want := err.Error(), "Expected notebook 01_risk_distribution_exploration.ipynb not found"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestExpectNothingFound(t *testing.T) {
	err := Expect(nil, []string{"a.ipynb"})
	if !errors.Is(err, ErrNoNotebooks) {
		t.Fatalf("expected ErrNoNotebooks, got %v", err)
	}
}
