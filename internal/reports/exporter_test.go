package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func sampleRows() []AttendeeReportRow {
	checkedAt := time.Date(2030, 6, 15, 18, 30, 0, 0, time.UTC)
	return []AttendeeReportRow{
		{
			ID:           1,
			FullName:     "Ada Lovelace",
			Email:        "ada@example.com",
			CheckedIn:    true,
			CheckedInAt:  &checkedAt,
			RegisteredAt: time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:           2,
			FullName:     "Grace Hopper",
			Email:        "grace@example.com",
			CheckedIn:    false,
			RegisteredAt: time.Date(2030, 6, 2, 11, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportCSV(t *testing.T) {
	e := NewReportExporter()

	data, filename, contentType, err := e.Export(FormatCSV, "Launch Party", sampleRows())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filename != "attendee_report.csv" {
		t.Errorf("unexpected filename %q", filename)
	}
	if contentType != "text/csv" {
		t.Errorf("unexpected content type %q", contentType)
	}

	out := string(data)
	if !strings.Contains(out, "ada@example.com") || !strings.Contains(out, "grace@example.com") {
		t.Error("csv missing attendee rows")
	}
	if !strings.Contains(out, "Yes") || !strings.Contains(out, "No") {
		t.Error("csv missing checked-in labels")
	}
}

func TestExportExcel(t *testing.T) {
	e := NewReportExporter()

	data, filename, contentType, err := e.Export(FormatExcel, "Launch Party", sampleRows())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filename != "attendee_report.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}
	if contentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", contentType)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("xlsx output is not a zip archive")
	}
}

func TestExportPDF(t *testing.T) {
	e := NewReportExporter()

	data, filename, contentType, err := e.Export(FormatPDF, "Launch Party", sampleRows())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filename != "attendee_report.pdf" {
		t.Errorf("unexpected filename %q", filename)
	}
	if contentType != "application/pdf" {
		t.Errorf("unexpected content type %q", contentType)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("pdf output missing header")
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	e := NewReportExporter()

	if _, _, _, err := e.Export("docx", "Launch Party", nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExportEmptyRoster(t *testing.T) {
	e := NewReportExporter()

	data, _, _, err := e.Export(FormatCSV, "Empty Event", nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	// header row only
	if !strings.Contains(string(data), "Full Name") {
		t.Error("expected header row in empty export")
	}
}
