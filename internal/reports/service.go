package reports

import (
	"log"

	"github.com/krisdikachi/Plancer/internal/attendance"
	"github.com/krisdikachi/Plancer/internal/event"
)

type Service struct {
	Exporter   ReportExporter
	Events     *event.Service
	Attendance *attendance.Service
}

func NewService(exporter ReportExporter, events *event.Service, att *attendance.Service) *Service {
	return &Service{
		Exporter:   exporter,
		Events:     events,
		Attendance: att,
	}
}

// ExportAttendees builds the attendee roster for an event and renders it in
// the requested format. Only the event creator may export.
func (s *Service) ExportAttendees(eventID, requesterID uint, format string) ([]byte, string, string, error) {
	evt, err := s.Events.GetEventByID(eventID)
	if err != nil {
		return nil, "", "", err
	}
	if evt.CreatorID != requesterID {
		return nil, "", "", event.ErrNotOwner
	}

	attendees, err := s.Attendance.ListAttendees(eventID)
	if err != nil {
		return nil, "", "", err
	}

	rows := make([]AttendeeReportRow, 0, len(attendees))
	for _, a := range attendees {
		rows = append(rows, AttendeeReportRow{
			ID:           a.ID,
			FullName:     a.FullName,
			Email:        a.Email,
			CheckedIn:    a.CheckedIn,
			CheckedInAt:  a.CheckedInAt,
			RegisteredAt: a.CreatedAt,
		})
	}

	data, filename, contentType, err := s.Exporter.Export(format, evt.Title, rows)
	if err != nil {
		return nil, "", "", err
	}

	log.Printf("✅ Exported %d attendees for event %d as %s\n", len(rows), eventID, format)
	return data, filename, contentType, nil
}
