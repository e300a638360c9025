package server

import (
	"encoding/json"
	"testing"

	"github.com/ironsheep/watimage-mcp/internal/geometry"
)

func TestPairArg_Unmarshal(t *testing.T) {
	tests := []struct {
		json   string
		want   geometry.Dimensions
		margin geometry.Margin
	}{
		{`200`, geometry.Square(200), geometry.Margin{X: 200, Y: 200}},
		{`[300, 150]`, geometry.Pair(300, 150), geometry.Margin{X: 300, Y: 150}},
		{`{"x": 20, "y": 10}`, geometry.Pair(20, 10), geometry.Margin{X: 20, Y: 10}},
		{`{"y": 0, "x": 5}`, geometry.Pair(5, 0), geometry.Margin{X: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var p pairArg
			if err := json.Unmarshal([]byte(tt.json), &p); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !p.set {
				t.Error("argument should be marked as set")
			}
			if got := p.Dimensions(); got != tt.want {
				t.Errorf("Dimensions: got %v, want %v", got, tt.want)
			}
			if got := p.Margin(); got != tt.margin {
				t.Errorf("Margin: got %+v, want %+v", got, tt.margin)
			}
		})
	}
}

func TestPairArg_Invalid(t *testing.T) {
	for _, in := range []string{`"big"`, `[1]`, `[1, 2, 3]`, `{"x": 1}`, `1.5`, `true`} {
		var p pairArg
		if err := json.Unmarshal([]byte(in), &p); err == nil {
			t.Errorf("%s: expected error", in)
		}
	}
}

func TestPairArg_Absent(t *testing.T) {
	var a struct {
		Margin pairArg `json:"margin"`
	}
	if err := json.Unmarshal([]byte(`{}`), &a); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if a.Margin.set {
		t.Error("missing field should not be set")
	}
	if a.Margin.Margin() != (geometry.Margin{}) {
		t.Error("missing margin should be zero")
	}

	if err := json.Unmarshal([]byte(`{"margin": null}`), &a); err != nil {
		t.Fatalf("Unmarshal null failed: %v", err)
	}
	if a.Margin.set {
		t.Error("null should not be set")
	}
}
