package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidBadge(t *testing.T) {
	valid := []string{"1", "042", "1234567890"}
	invalid := []string{"", "12345678901", "12a4", "12 34", "-12"}
	for _, badge := range valid {
		if !IsValidBadge(badge) {
			t.Errorf("IsValidBadge(%q) = false, want true", badge)
		}
	}
	for _, badge := range invalid {
		if IsValidBadge(badge) {
			t.Errorf("IsValidBadge(%q) = true, want false", badge)
		}
	}
}

func TestIsValidWeekday(t *testing.T) {
	for day := 0; day <= 6; day++ {
		if !IsValidWeekday(day) {
			t.Errorf("IsValidWeekday(%d) = false, want true", day)
		}
	}
	for _, day := range []int{-1, 7, 100} {
		if IsValidWeekday(day) {
			t.Errorf("IsValidWeekday(%d) = true, want false", day)
		}
	}
}

func TestIsValidHourFloat(t *testing.T) {
	cases := []struct {
		hour float64
		want bool
	}{
		{0, true},
		{7.5, true},
		{24, true},
		{30, true},
		{30.01, false},
		{-0.5, false},
	}
	for _, c := range cases {
		if got := IsValidHourFloat(c.hour); got != c.want {
			t.Errorf("IsValidHourFloat(%v) = %v, want %v", c.hour, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-02-29"); !ok {
		t.Error("IsValidDate(2024-02-29) = false, want true")
	}
	for _, s := range []string{"2023-02-29", "29/02/2024", "", "2024-13-01"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00-06:00"}
	invalid := []string{"2024-01-15 10:30:00", "not-a-time", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}
