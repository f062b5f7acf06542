package sapexport

import (
	"testing"
	"time"
)

func TestExtractPeriodFromFilename(t *testing.T) {
	start, end, ok := ExtractPeriodFromFilename("Analisi vendite - Basato su DDT - dett cliente 01.01.25_19.08.25 base.xlsx")
	if !ok {
		t.Fatal("expected period to be recognized")
	}
	if start.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("unexpected start date: %v", start)
	}
	if end.Format("2006-01-02") != "2025-08-19" {
		t.Errorf("unexpected end date: %v", end)
	}
	if got := PeriodDays(start, end); got != 231 {
		t.Errorf("expected 231 period days, got %d", got)
	}
}

func TestExtractPeriodFromFilename_FourDigitYearAndInvertedRange(t *testing.T) {
	start, end, ok := ExtractPeriodFromFilename("export 31.03.2025 - 01.01.2025.xlsx")
	if !ok {
		t.Fatal("expected period to be recognized")
	}
	if !start.Before(end) {
		t.Errorf("inverted range must be swapped: start=%v end=%v", start, end)
	}
	if got := PeriodDays(start, end); got != 90 {
		t.Errorf("expected 90 period days, got %d", got)
	}
}

func TestExtractPeriodFromFilename_NoDates(t *testing.T) {
	if _, _, ok := ExtractPeriodFromFilename("analisi vendite.xlsx"); ok {
		t.Error("expected no period without two date tokens")
	}
	if _, _, ok := ExtractPeriodFromFilename("export 01.02.25.xlsx"); ok {
		t.Error("a single date is not a period")
	}
}

func TestPeriodDays_NeverBelowOne(t *testing.T) {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := PeriodDays(d, d); got != 1 {
		t.Errorf("same-day range must count 1 day, got %d", got)
	}
}
