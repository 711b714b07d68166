package aiassist

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/krisdikachi/Plancer/internal/event"
)

var (
	ErrEmptyPrompt     = errors.New("prompt is required")
	ErrUpstreamFailure = errors.New("generation service unavailable")
)

type Service struct {
	Gemini    *GeminiClient
	Stability *StabilityClient
	Events    *event.Service
}

func NewService(gemini *GeminiClient, stability *StabilityClient, events *event.Service) *Service {
	return &Service{
		Gemini:    gemini,
		Stability: stability,
		Events:    events,
	}
}

// ===========================
// ✨ Generate Event From Prompt
// ===========================

// GenerateEvent turns a one-line prompt into a saved draft event: Gemini
// fills in the details, Stability renders a cover image. Image failures do
// not fail the draft, the planner can upload their own cover later.
func (s *Service) GenerateEvent(plannerID uint, prompt string) (*event.Event, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	draft, err := s.Gemini.GenerateDraft(prompt)
	if err != nil {
		log.Printf("❌ Gemini draft failed: %v\n", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	req := &event.CreateEventRequest{
		Title:         draft.Title,
		Description:   draft.Description,
		EventType:     draft.EventType,
		DressCode:     draft.DressCode,
		ColorOfTheDay: draft.ColorOfTheDay,
		Date:          draft.Date,
		Time:          draft.Time,
		Location:      draft.Location,
	}

	evt, err := s.Events.CreateEvent(plannerID, req)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Generated draft event %d (%s) for planner %d\n", evt.ID, evt.Title, plannerID)

	imagePrompt := draft.Title
	if draft.EventType != "" {
		imagePrompt = draft.EventType + ": " + draft.Title
	}
	img, err := s.Stability.GenerateImage(imagePrompt)
	if err != nil {
		log.Printf("⚠️ Cover image generation failed for event %d: %v\n", evt.ID, err)
		return evt, nil
	}

	updated, err := s.Events.AttachImage(evt.ID, plannerID, "cover.png", img)
	if err != nil {
		log.Printf("⚠️ Could not attach generated cover to event %d: %v\n", evt.ID, err)
		return evt, nil
	}

	return updated, nil
}

// ===========================
// 📝 Generate Draft Only
// ===========================

// GenerateDraft returns the structured draft without persisting anything.
// The frontend uses this to prefill the create-event form.
func (s *Service) GenerateDraft(prompt string) (*EventDraft, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	draft, err := s.Gemini.GenerateDraft(prompt)
	if err != nil {
		log.Printf("❌ Gemini draft failed: %v\n", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	return draft, nil
}

// ===========================
// 🖼️ Generate Image Only
// ===========================

// GenerateImage renders a standalone image for the prompt without touching
// any event. Used by the frontend image picker.
func (s *Service) GenerateImage(prompt string) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	img, err := s.Stability.GenerateImage(prompt)
	if err != nil {
		log.Printf("❌ Stability image failed: %v\n", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	return img, nil
}
