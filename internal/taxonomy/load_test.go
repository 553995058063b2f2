package taxonomy

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("load embedded seed: %v", err)
	}
	if tax.Name == "" {
		t.Error("expected non-empty taxonomy name")
	}
	if len(tax.Domains) != 5 {
		t.Errorf("got %d domains, want 5", len(tax.Domains))
	}
	for _, d := range tax.Domains {
		if len(d.Modules) == 0 {
			t.Errorf("domain %q has no modules", d.ID)
		}
	}
}

func TestParse_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no name", `{"version":"1.0","domains":[{"id":"a","name":"A","modules":[]}]}`},
		{"no domains", `{"version":"1.0","name":"X"}`},
		{"empty domains", `{"version":"1.0","name":"X","domains":[]}`},
		{"module without id", `{"version":"1.0","name":"X","domains":[{"id":"a","name":"A","modules":[{"title":"T"}]}]}`},
		{"not json", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestParse_AllowsMissingPoints(t *testing.T) {
	raw := `{
		"version": "1.0",
		"name": "Minimal",
		"domains": [
			{"id": "d1", "name": "D1", "modules": [{"id": "m1", "title": "M1"}]}
		]
	}`
	tax, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tax.Domains[0].Modules[0].Points != nil {
		t.Errorf("expected nil points, got %v", tax.Domains[0].Modules[0].Points)
	}
}

func TestParse_VersionGate(t *testing.T) {
	raw := `{"version":"2.0","name":"X","domains":[{"id":"a","name":"A","modules":[{"id":"m","title":"T"}]}]}`
	_, err := Parse([]byte(raw))
	if err == nil {
		t.Fatal("expected version error for 2.0, got nil")
	}
	if !strings.Contains(err.Error(), "unsupported taxonomy version") {
		t.Errorf("unexpected error: %v", err)
	}
}
