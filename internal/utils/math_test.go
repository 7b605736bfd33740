package utils

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "empty", values: nil, expected: 0},
		{name: "single", values: []float64{5}, expected: 5},
		{name: "several", values: []float64{1, 2, 3, 4}, expected: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.values); got != tt.expected {
				t.Errorf("Mean(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "too short", values: []float64{5}, expected: 0},
		{name: "constant", values: []float64{3, 3, 3}, expected: 0},
		{name: "sample", values: []float64{2, 4, 4, 4, 5, 5, 7, 9}, expected: 2.138089935},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StdDev(tt.values)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("StdDev(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b, fb float64
		expected float64
	}{
		{name: "normal", a: 10, b: 4, fb: -1, expected: 2.5},
		{name: "zero denominator", a: 10, b: 0, fb: -1, expected: -1},
		{name: "nan denominator", a: 10, b: math.NaN(), fb: 7, expected: 7},
		{name: "inf denominator", a: 10, b: math.Inf(1), fb: 7, expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDiv(tt.a, tt.b, tt.fb); got != tt.expected {
				t.Errorf("SafeDiv(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.fb, got, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		expected  float64
	}{
		{name: "below", v: -5, lo: 0, hi: 10, expected: 0},
		{name: "inside", v: 5, lo: 0, hi: 10, expected: 5},
		{name: "above", v: 15, lo: 0, hi: 10, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{15, 20, 35, 40, 50}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{name: "min", p: 0, expected: 15},
		{name: "median", p: 50, expected: 35},
		{name: "interpolated", p: 25, expected: 20},
		{name: "max", p: 100, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(values, tt.p)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.expected)
			}
		})
	}
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	if got := SMA(values, 2); got != 4.5 {
		t.Errorf("SMA(period 2) = %v, want 4.5", got)
	}
	if got := SMA(values, 10); got != 3 {
		t.Errorf("SMA(period longer than series) = %v, want 3", got)
	}
	if got := SMA(nil, 3); got != 0 {
		t.Errorf("SMA(empty) = %v, want 0", got)
	}
}

func TestEMAWeighsRecentPoints(t *testing.T) {
	rising := EMA([]float64{1, 2, 3, 4, 5}, 3)
	if rising <= SMA([]float64{1, 2, 3, 4, 5}, 5) {
		t.Errorf("EMA of a rising series = %v, want above the full mean", rising)
	}
	if got := EMA([]float64{7}, 3); got != 7 {
		t.Errorf("EMA(single point) = %v, want 7", got)
	}
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	if got := Correlation(x, []float64{2, 4, 6, 8}); math.Abs(got-1) > 1e-9 {
		t.Errorf("Correlation(perfect positive) = %v, want 1", got)
	}
	if got := Correlation(x, []float64{8, 6, 4, 2}); math.Abs(got+1) > 1e-9 {
		t.Errorf("Correlation(perfect negative) = %v, want -1", got)
	}
	if got := Correlation(x, []float64{5, 5, 5, 5}); got != 0 {
		t.Errorf("Correlation(zero variance) = %v, want 0", got)
	}
	if got := Correlation(x, []float64{1, 2}); got != 0 {
		t.Errorf("Correlation(length mismatch) = %v, want 0", got)
	}
}

func TestRounding(t *testing.T) {
	if got := Round2(3.14159); got != 3.14 {
		t.Errorf("Round2 = %v, want 3.14", got)
	}
	if got := Round4(3.141592); got != 3.1416 {
		t.Errorf("Round4 = %v, want 3.1416", got)
	}
}
