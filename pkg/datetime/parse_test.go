package datetime

import "testing"

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		months    int
		expected  string
		wantError bool
	}{
		{"Forward one month", "2025-01", 1, "2025-02", false},
		{"Forward across year boundary", "2025-12", 1, "2026-01", false},
		{"Backward one month", "2025-01", -1, "2024-12", false},
		{"Forward several years", "2025-03", 60, "2030-03", false},
		{"Zero offset", "2025-06", 0, "2025-06", false},
		{"Invalid date", "not-a-date", 1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if tt.wantError {
				if err == nil {
					t.Errorf("OffsetDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("OffsetDate() error = %v", err)
				return
			}
			if result != tt.expected {
				t.Errorf("OffsetDate(%s, %d) = %s, expected %s", tt.date, tt.months, result, tt.expected)
			}
		})
	}
}

func TestDateBeforeDate(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected bool
	}{
		{"Strictly before", "2025-01", "2025-02", true},
		{"Equal dates", "2025-01", "2025-01", false},
		{"After", "2025-03", "2025-01", false},
		{"Across years", "2024-12", "2025-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DateBeforeDate(tt.first, tt.second)
			if err != nil {
				t.Fatalf("DateBeforeDate() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("DateBeforeDate(%s, %s) = %v, expected %v", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected int
	}{
		{"Same month", "2025-01", "2025-01", 0},
		{"One month apart", "2025-01", "2025-02", 1},
		{"One year apart", "2024-06", "2025-06", 12},
		{"Across year boundary", "2024-11", "2025-02", 3},
		{"Reversed is negative", "2025-06", "2025-01", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MonthsBetween(tt.first, tt.second)
			if err != nil {
				t.Fatalf("MonthsBetween() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("MonthsBetween(%s, %s) = %d, expected %d", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}
