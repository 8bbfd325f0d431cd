package repos

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// fakeRow drives scan helpers without a live database
type fakeRow struct {
	scan func(dest ...any) error
}

func (f fakeRow) Scan(dest ...any) error { return f.scan(dest...) }

func TestScanLatestCalcDate(t *testing.T) {
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	row := fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*time.Time)) = want
		return nil
	}}

	date, ok, err := scanLatestCalcDate(row)
	if err != nil {
		t.Fatalf("scanLatestCalcDate() error = %v", err)
	}
	if !ok {
		t.Fatal("Expected ok=true for populated table")
	}
	if !date.Equal(want) {
		t.Errorf("date = %v, want %v", date, want)
	}
}

func TestScanLatestCalcDate_EmptyTable(t *testing.T) {
	row := fakeRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}

	_, ok, err := scanLatestCalcDate(row)
	if err != nil {
		t.Fatalf("Empty table must not be an error, got %v", err)
	}
	if ok {
		t.Error("Expected ok=false for empty table")
	}
}

func TestScanLatestCalcDate_ScanFailure(t *testing.T) {
	row := fakeRow{scan: func(dest ...any) error { return errors.New("conn closed") }}

	_, ok, err := scanLatestCalcDate(row)
	if err == nil {
		t.Fatal("Expected scan error to propagate")
	}
	if ok {
		t.Error("Expected ok=false on scan failure")
	}
}
