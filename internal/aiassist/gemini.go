package aiassist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/krisdikachi/Plancer/config"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// GeminiClient calls the Gemini REST API for structured event drafts.
type GeminiClient struct {
	APIKey string
	HTTP   *http.Client
}

func NewGeminiClient(cfg *config.Config) *GeminiClient {
	return &GeminiClient{
		APIKey: cfg.GeminiAPIKey,
		HTTP:   &http.Client{Timeout: 30 * time.Second},
	}
}

// EventDraft is the structured shape Gemini is instructed to return.
type EventDraft struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Location      string `json:"location"`
	DressCode     string `json:"dress_code"`
	ColorOfTheDay string `json:"color_of_the_day"`
	EventType     string `json:"event_type"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Config   geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateDraft asks Gemini to expand a one-line prompt into a full event draft.
func (g *GeminiClient) GenerateDraft(prompt string) (*EventDraft, error) {
	if g.APIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	instruction := fmt.Sprintf(`You are an event planning assistant. Expand the user's idea into a complete event.
Respond with ONLY a JSON object with these exact keys:
title, description, date (YYYY-MM-DD, must be in the future, today is %s), time (HH:MM, 24h),
location, dress_code, color_of_the_day, event_type (one of: wedding, birthday, conference, party, concert, other).

User idea: %s`, time.Now().Format("2006-01-02"), prompt)

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: instruction}}},
		},
		Config: geminiGenConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.7,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", geminiEndpoint, g.APIKey)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned %d: %s", resp.StatusCode, string(raw))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var draft EventDraft
	if err := json.Unmarshal([]byte(parsed.Candidates[0].Content.Parts[0].Text), &draft); err != nil {
		return nil, fmt.Errorf("gemini returned malformed draft: %w", err)
	}
	if draft.Title == "" || draft.Date == "" {
		return nil, fmt.Errorf("gemini draft missing title or date")
	}

	return &draft, nil
}
