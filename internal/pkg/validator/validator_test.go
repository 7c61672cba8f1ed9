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
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123E4567-E89B-42D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
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

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-06-10"); !ok {
		t.Error("IsValidDate(2025-06-10) = false, want true")
	}
	for _, bad := range []string{"2025-13-10", "2025-02-30", "10/06/2025", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"08:00", "23:59", "08:00:30"}
	invalid := []string{"8:00", "08:00:30:00", "mediodia", ""}
	for _, v := range valid {
		if !IsValidTimeOfDay(v) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if IsValidTimeOfDay(v) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", v)
		}
	}
}

func TestIsValidDocumentNumber(t *testing.T) {
	valid := []string{"12345678", "001234567", "X12345678901"}
	invalid := []string{"1234567", "123456789012345", "12-345678", ""}
	for _, doc := range valid {
		if !IsValidDocumentNumber(doc) {
			t.Errorf("IsValidDocumentNumber(%q) = false, want true", doc)
		}
	}
	for _, doc := range invalid {
		if IsValidDocumentNumber(doc) {
			t.Errorf("IsValidDocumentNumber(%q) = true, want false", doc)
		}
	}
}

func TestIsValidCoordinates(t *testing.T) {
	if !IsValidLatitude(-12.05) || !IsValidLongitude(-77.04) {
		t.Error("Lima coordinates should be valid")
	}
	if IsValidLatitude(91) || IsValidLatitude(-91) {
		t.Error("latitude outside [-90,90] should be invalid")
	}
	if IsValidLongitude(181) || IsValidLongitude(-181) {
		t.Error("longitude outside [-180,180] should be invalid")
	}
}
