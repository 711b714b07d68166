package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// AttendeeReportRow is one roster line in an exported report.
type AttendeeReportRow struct {
	ID           uint
	FullName     string
	Email        string
	CheckedIn    bool
	CheckedInAt  *time.Time
	RegisteredAt time.Time
}

// ReportExporter renders an attendee roster in the requested format.
// Returns the file bytes, a download filename and the content type.
type ReportExporter interface {
	Export(format, eventTitle string, rows []AttendeeReportRow) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(format, eventTitle string, rows []AttendeeReportRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		return e.exportAttendeesCSV(rows)
	case FormatExcel:
		return e.exportAttendeesExcel(rows)
	case FormatPDF:
		return e.exportAttendeesPDF(eventTitle, rows)
	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

func checkedInLabel(r AttendeeReportRow) string {
	if r.CheckedIn {
		return "Yes"
	}
	return "No"
}

func checkedInAtLabel(r AttendeeReportRow) string {
	if r.CheckedInAt == nil {
		return ""
	}
	return r.CheckedInAt.Format("2006-01-02 15:04:05")
}

// Attendee roster CSV export
func (e *reportExporter) exportAttendeesCSV(rows []AttendeeReportRow) ([]byte, string, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	headers := []string{"ID", "Full Name", "Email", "Checked In", "Checked In At", "Registered At"}
	if err := w.Write(headers); err != nil {
		return nil, "", "", err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.FullName,
			r.Email,
			checkedInLabel(r),
			checkedInAtLabel(r),
			r.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, "", "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "attendee_report.csv", "text/csv", nil
}

// Attendee roster Excel export
func (e *reportExporter) exportAttendeesExcel(rows []AttendeeReportRow) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Attendees"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Full Name", "Email", "Checked In", "Checked In At", "Registered At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Email)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), checkedInLabel(r))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), checkedInAtLabel(r))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.RegisteredAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "attendee_report.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

// Attendee roster PDF export
func (e *reportExporter) exportAttendeesPDF(eventTitle string, rows []AttendeeReportRow) ([]byte, string, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Attendee Report - %s", eventTitle))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Full Name", "Email", "Checked In", "Checked In At", "Registered At"}
	widths := []float64{15, 40, 50, 20, 35, 35}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, checkedInLabel(r), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, checkedInAtLabel(r), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.RegisteredAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", "", err
	}

	return buf.Bytes(), "attendee_report.pdf", "application/pdf", nil
}
