package stamp

import (
	"testing"
	"time"
)

func TestPlan(t *testing.T) {
	date := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		modTime time.Time
		wantMod time.Time
	}{
		{
			name:    "older mtime is advanced",
			modTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			wantMod: date,
		},
		{
			name:    "newer mtime is preserved",
			modTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantMod: time.Time{},
		},
		{
			name:    "equal mtime is preserved",
			modTime: date,
			wantMod: time.Time{},
		},
		{
			name:    "absent mtime is set",
			modTime: time.Time{},
			wantMod: date,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Plan(date, tc.modTime)

			if !got.CreatedAt.Equal(date) {
				t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, date)
			}
			if tc.wantMod.IsZero() {
				if !got.ModifiedAt.IsZero() {
					t.Fatalf("expected ModifiedAt to be unset, got %v", got.ModifiedAt)
				}
				return
			}
			if !got.ModifiedAt.Equal(tc.wantMod) {
				t.Fatalf("ModifiedAt = %v, want %v", got.ModifiedAt, tc.wantMod)
			}
		})
	}
}

func TestPlan_OneSecondLater(t *testing.T) {
	modTime := time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	date := modTime.Add(time.Second)

	got := Plan(date, modTime)
	if !got.ModifiedAt.Equal(date) {
		t.Fatalf("expected strictly later date to set ModifiedAt, got %v", got.ModifiedAt)
	}
}
