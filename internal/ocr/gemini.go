package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// transcribePrompt asks the model for a verbatim transcription so the line
// parsing strategies see the receipt the way a plain OCR engine would.
const transcribePrompt = `You are transcribing a photo of a purchase receipt. Read every piece of text in the image and return it exactly as printed, one receipt line per output line, top to bottom.

Important:
- Do not summarize, interpret, or reorder anything
- Keep prices, dates, and product names exactly as they appear
- Preserve column spacing with multiple spaces where the receipt is tabular
- Return only the transcribed text, no commentary and no markdown code blocks`

// Gemini implements the Provider interface using Google Gemini as the OCR engine
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Provider instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ExtractText transcribes a receipt image via Gemini
func (g *Gemini) ExtractText(imageData []byte, contentType string) (*ReceiptText, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Prepare image data (convert to PNG if needed)
	finalImageData, _, _, err := prepareImageData(imageData, contentType)
	if err != nil {
		return nil, err
	}

	parts := []genai.Part{
		genai.ImageData("png", finalImageData),
		genai.Text(transcribePrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(responseText.String())
	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, fmt.Errorf("empty transcription from gemini")
	}

	// Model-backed transcription has no per-word scores; use a fixed estimate
	return newReceiptText(text, 0.9), nil
}

// Name returns the provider name
func (g *Gemini) Name() string {
	return "gemini"
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
