package jalali

import (
	"testing"
	"time"
)

func TestTimestamp(t *testing.T) {
	// Nowruz 1403 fell on 2024-03-20.
	moment := time.Date(2024, time.March, 20, 9, 5, 3, 0, Tehran)

	got, err := Timestamp(moment)
	if err != nil {
		t.Fatalf("timestamp failed: %v", err)
	}
	if got != "1403/01/01 09:05:03" {
		t.Errorf("expected 1403/01/01 09:05:03, got %s", got)
	}
}

func TestTimestampConvertsToTehran(t *testing.T) {
	// Midnight UTC is already the same Jalali day in Tehran (+03:30).
	utc := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	got, err := Timestamp(utc)
	if err != nil {
		t.Fatalf("timestamp failed: %v", err)
	}
	if got != "1403/01/01 03:30:00" {
		t.Errorf("expected 1403/01/01 03:30:00, got %s", got)
	}
}

func TestNowTehranZone(t *testing.T) {
	_, offset := NowTehran().Zone()
	if offset != int((3*time.Hour+30*time.Minute)/time.Second) {
		t.Errorf("expected +03:30 offset, got %d", offset)
	}
}
