package aiassist

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/krisdikachi/Plancer/config"
)

const stabilityEndpoint = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

// StabilityClient calls the Stability REST API for event cover images.
type StabilityClient struct {
	APIKey string
	HTTP   *http.Client
}

func NewStabilityClient(cfg *config.Config) *StabilityClient {
	return &StabilityClient{
		APIKey: cfg.StabilityAPIKey,
		HTTP:   &http.Client{Timeout: 60 * time.Second},
	}
}

type stabilityRequest struct {
	TextPrompts []stabilityPrompt `json:"text_prompts"`
	CfgScale    int               `json:"cfg_scale"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Samples     int               `json:"samples"`
	Steps       int               `json:"steps"`
}

type stabilityPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

// GenerateImage renders a PNG cover image for the prompt. Returns raw bytes.
func (s *StabilityClient) GenerateImage(prompt string) ([]byte, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("stability API key not configured")
	}

	payload := stabilityRequest{
		TextPrompts: []stabilityPrompt{
			{Text: "Elegant event cover image, no text, photographic: " + prompt, Weight: 1},
		},
		CfgScale: 7,
		Width:    1024,
		Height:   1024,
		Samples:  1,
		Steps:    30,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, stabilityEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stability request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stability returned %d: %s", resp.StatusCode, string(raw))
	}

	var parsed stabilityResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid stability response: %w", err)
	}
	if len(parsed.Artifacts) == 0 {
		return nil, fmt.Errorf("stability returned no artifacts")
	}

	img, err := base64.StdEncoding.DecodeString(parsed.Artifacts[0].Base64)
	if err != nil {
		return nil, fmt.Errorf("stability artifact not valid base64: %w", err)
	}

	return img, nil
}
