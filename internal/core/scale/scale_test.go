package scale

import (
	"encoding/json"
	"testing"
)

func TestEstimate_Degenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []float64
	}{
		{"nil", nil},
		{"empty", []float64{}},
		{"single zero", []float64{0}},
		{"all zero", []float64{0, 0, 0, 0}},
	}
	for _, tc := range tests {
		if got := Estimate(tc.in); got != Empty {
			t.Fatalf("%s: got %+v, want %+v", tc.name, got, Empty)
		}
	}
}

func TestEstimate_Flat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []float64
		want Suggestion
	}{
		{"small flat uses padding floor", []float64{5, 5, 5}, Suggestion{Min: 0, Max: 10}},
		{"single value", []float64{50}, Suggestion{Min: 40, Max: 60}},
		{"zeros ignored", []float64{0, 50, 0, 50}, Suggestion{Min: 40, Max: 60}},
		{"large flat pads by a fifth", []float64{1000, 1000}, Suggestion{Min: 800, Max: 1200}},
	}
	for _, tc := range tests {
		if got := Estimate(tc.in); got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestEstimate_HighVarianceSmallSeries(t *testing.T) {
	t.Parallel()

	got := Estimate([]float64{1, 2, 3, 4, 5, 100})
	// range 99, padding 99*0.25*1.5 = 37.125, max 137.125
	if got.Max != 140 {
		t.Fatalf("max = %v, want 140", got.Max)
	}
	if got.Max <= 100 {
		t.Fatalf("max %v does not clear the largest sample", got.Max)
	}
	if got.Min != 0 {
		t.Fatalf("min = %v, want 0", got.Min)
	}
}

func TestEstimate_LowVariance(t *testing.T) {
	t.Parallel()

	// mean 3, sample stdev ~1.41 so no boost; padding 2*0.25 = 0.5
	got := Estimate([]float64{2, 4})
	if got.Max != 4.5 {
		t.Fatalf("max = %v, want 4.5", got.Max)
	}
	if got.Min != 1.85 {
		t.Fatalf("min = %v, want 1.85", got.Min)
	}
}

func TestEstimate_LargeSeriesUsesSmallerPadding(t *testing.T) {
	t.Parallel()

	in := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	got := Estimate(in)
	// range 90, padding 90*0.15*1.5 = 20.25, max 120.25
	if got.Max != 130 {
		t.Fatalf("max = %v, want 130", got.Max)
	}
	if got.Min <= 0 || got.Min >= 10 {
		t.Fatalf("min = %v, want within (0,10)", got.Min)
	}
}

func TestNice_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, out float64
	}{
		{0, 0},
		{0.2, 0.5},
		{4.5, 4.5},
		{9.2, 9.5},
		{9.6, 10},
		{10, 10},
		{11, 15},
		{99.1, 100},
		{100, 100},
		{100.5, 110},
		{123, 130},
		{999, 1000},
		{1234, 1300},
		{12345, 13000},
	}
	for _, tc := range tests {
		if got := Nice(tc.in); got != tc.out {
			t.Fatalf("Nice(%v) = %v, want %v", tc.in, got, tc.out)
		}
	}
}

func TestSuggestion_JSONFieldNames(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Suggestion{Min: 1.5, Max: 20})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"suggestedMin":1.5,"suggestedMax":20}` {
		t.Fatalf("got %s", b)
	}
}
