package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"procurement-service/internal/util"

	"go.uber.org/zap"
)

const voiceUnavailableText = "Voice unavailable"

// VoiceRequest is the cost/delivery summary to narrate
type VoiceRequest struct {
	Savings      float64
	DeliveryDate string
	OrderCount   int
}

// VoiceReport is the synthesized narration. Audio is nil when speech
// synthesis was unavailable; Text always carries something to show.
type VoiceReport struct {
	Audio []byte `json:"audio"`
	Text  string `json:"text"`
}

// VoiceGenerator turns a summary into a short spoken report. It always
// resolves; failures degrade to a report without audio.
type VoiceGenerator interface {
	GenerateVoiceReport(ctx context.Context, req VoiceRequest) VoiceReport
}

// voiceScript renders the fixed mission-report script
func voiceScript(req VoiceRequest) string {
	return fmt.Sprintf("Mission successful. I executed %d orders. We saved $%s by choosing the bulk options. Tracking numbers have been sent.",
		req.OrderCount, formatNumber(req.Savings))
}

// StubVoice never produces audio
type StubVoice struct{}

// NewStubVoice creates a stub voice generator
func NewStubVoice() *StubVoice {
	return &StubVoice{}
}

// GenerateVoiceReport returns the no-audio fallback
func (v *StubVoice) GenerateVoiceReport(_ context.Context, _ VoiceRequest) VoiceReport {
	return VoiceReport{Audio: nil, Text: voiceUnavailableText}
}

// ElevenLabsVoice synthesizes speech through the ElevenLabs API
type ElevenLabsVoice struct {
	apiKey  string
	voiceID string
	modelID string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewElevenLabsVoice creates a live voice generator bound by the given timeout
func NewElevenLabsVoice(apiKey, voiceID, modelID, baseURL string, timeout time.Duration) *ElevenLabsVoice {
	if voiceID == "" {
		voiceID = "21m00Tcm4TlvDq8ikWAM"
	}
	if modelID == "" {
		modelID = "eleven_monolingual_v1"
	}
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &ElevenLabsVoice{
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: modelID,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  util.GetLogger(),
	}
}

// GenerateVoiceReport calls the text-to-speech API once; on missing
// credentials or any failure it returns the no-audio fallback.
func (v *ElevenLabsVoice) GenerateVoiceReport(ctx context.Context, req VoiceRequest) VoiceReport {
	script := voiceScript(req)

	if v.apiKey == "" {
		v.logger.Warn("Speech synthesis key missing, returning fallback")
		util.VoiceFallbacksTotal.Inc()
		return VoiceReport{Audio: nil, Text: voiceUnavailableText}
	}

	audio, err := v.synthesize(ctx, script)
	if err != nil {
		v.logger.Warn("Speech synthesis failed, returning fallback", zap.Error(err))
		util.VoiceFallbacksTotal.Inc()
		return VoiceReport{Audio: nil, Text: voiceUnavailableText}
	}

	return VoiceReport{Audio: audio, Text: script}
}

// synthesize performs a single text-to-speech request, no retries
func (v *ElevenLabsVoice) synthesize(ctx context.Context, script string) ([]byte, error) {
	payload := map[string]any{
		"text":     script,
		"model_id": v.modelID,
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.5,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", v.baseURL, v.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	return audio, nil
}
