package sprint

import (
	"testing"
	"time"
)

func TestCycleTime(t *testing.T) {
	tests := []struct {
		name      string
		created   *time.Time
		activated *time.Time
		resolved  *time.Time
		closed    *time.Time
		want      int
		ok        bool
	}{
		{
			name:      "activated to resolved",
			activated: datePtr(2025, 7, 16), resolved: datePtr(2025, 7, 22),
			want: 6, ok: true,
		},
		{
			name:      "resolved wins over closed",
			activated: datePtr(2025, 7, 16), resolved: datePtr(2025, 7, 20), closed: datePtr(2025, 7, 29),
			want: 4, ok: true,
		},
		{
			name:      "closed when no resolved",
			activated: datePtr(2025, 7, 16), closed: datePtr(2025, 7, 18),
			want: 2, ok: true,
		},
		{
			name:    "created fallback",
			created: datePtr(2025, 1, 1), resolved: datePtr(2025, 1, 10),
			want: 9, ok: true,
		},
		{
			name:      "same day is zero",
			activated: datePtr(2025, 7, 16), resolved: datePtr(2025, 7, 16),
			want: 0, ok: true,
		},
		{
			name:      "completion before activation falls back to created",
			created:   datePtr(2025, 7, 1),
			activated: datePtr(2025, 7, 20), resolved: datePtr(2025, 7, 10),
			want: 9, ok: true,
		},
		{
			name:      "completion before both dates",
			created:   datePtr(2025, 7, 15),
			activated: datePtr(2025, 7, 20), resolved: datePtr(2025, 7, 10),
			ok: false,
		},
		{
			name:      "no completion date",
			created:   datePtr(2025, 7, 1),
			activated: datePtr(2025, 7, 2),
			ok:        false,
		},
		{
			name:     "no start date",
			resolved: datePtr(2025, 7, 10),
			ok:       false,
		},
		{name: "all absent", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CycleTime(tt.created, tt.activated, tt.resolved, tt.closed)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("CycleTime = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCycleTime_NeverNegative(t *testing.T) {
	dates := []*time.Time{nil, datePtr(2025, 7, 1), datePtr(2025, 7, 15), datePtr(2025, 7, 29)}
	for _, created := range dates {
		for _, activated := range dates {
			for _, resolved := range dates {
				for _, closed := range dates {
					if days, ok := CycleTime(created, activated, resolved, closed); ok && days < 0 {
						t.Fatalf("negative cycle time %d for created=%v activated=%v resolved=%v closed=%v",
							days, created, activated, resolved, closed)
					}
				}
			}
		}
	}
}
