package sprint

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %f, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %f, want 4", got)
	}
}

func TestSampleStdDev(t *testing.T) {
	if got := SampleStdDev([]float64{5}); got != 0 {
		t.Errorf("single value stddev = %f, want 0", got)
	}
	got := SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.138) > 0.001 {
		t.Errorf("stddev = %f, want ~2.138", got)
	}
}

func TestMedianDiscrete(t *testing.T) {
	tests := []struct {
		values []int
		want   float64
	}{
		{nil, 0},
		{[]int{3}, 3},
		{[]int{1, 3, 5}, 3},
		{[]int{1, 2, 3, 4}, 2.5},
		{[]int{9, 1, 5}, 5}, // unsorted input
	}
	for _, tt := range tests {
		if got := MedianDiscrete(tt.values); got != tt.want {
			t.Errorf("MedianDiscrete(%v) = %f, want %f", tt.values, got, tt.want)
		}
	}
}

func TestMedianDiscrete_DoesNotMutate(t *testing.T) {
	values := []int{9, 1, 5}
	MedianDiscrete(values)
	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("input mutated: %v", values)
	}
}
