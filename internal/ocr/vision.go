package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultVisionURL = "https://vision.googleapis.com/v1/images:annotate"

// Vision implements the Provider interface using the Google Cloud Vision
// text-detection REST API.
type Vision struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewVision creates a new Vision Provider instance
func NewVision(apiKey string) (*Vision, error) {
	return NewVisionWithURL(apiKey, defaultVisionURL)
}

// NewVisionWithURL creates a Vision Provider against a custom endpoint for testing
func NewVisionWithURL(apiKey string, baseURL string) (*Vision, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("vision api key is required")
	}
	if baseURL == "" {
		baseURL = defaultVisionURL
	}

	return &Vision{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// visionRequest is the images:annotate request body
type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

// visionResponse is the images:annotate response body
type visionResponse struct {
	Responses []visionAnnotateResponse `json:"responses"`
}

type visionAnnotateResponse struct {
	TextAnnotations []visionTextAnnotation `json:"textAnnotations"`
	Error           *visionError           `json:"error"`
}

type visionTextAnnotation struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

type visionError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ExtractText recognizes text in a receipt image using Google Cloud Vision
func (v *Vision) ExtractText(imageData []byte, contentType string) (*ReceiptText, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Prepare image data (convert to PNG if needed)
	finalImageData, _, _, err := prepareImageData(imageData, contentType)
	if err != nil {
		return nil, err
	}

	reqBody := visionRequest{
		Requests: []visionAnnotateRequest{
			{
				Image: visionImage{
					Content: base64.StdEncoding.EncodeToString(finalImageData),
				},
				Features: []visionFeature{
					{Type: "TEXT_DETECTION", MaxResults: 1},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", v.baseURL, v.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling vision API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(body))
	}

	var visionResp visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return parseVisionResponse(&visionResp)
}

// parseVisionResponse converts an annotate response into ReceiptText.
// The first annotation carries the full recognized text.
func parseVisionResponse(resp *visionResponse) (*ReceiptText, error) {
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("empty vision API response")
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return nil, fmt.Errorf("vision API error: %s", annotated.Error.Message)
	}

	// No text found is not an error, just an empty result
	if len(annotated.TextAnnotations) == 0 {
		return &ReceiptText{Lines: []string{}}, nil
	}

	full := annotated.TextAnnotations[0]
	confidence := full.Confidence
	if confidence == 0 {
		confidence = 0.8
	}

	return newReceiptText(full.Description, confidence), nil
}

// Name returns the provider name
func (v *Vision) Name() string {
	return "vision"
}

// Close closes the Vision provider (no-op for HTTP client)
func (v *Vision) Close() error {
	return nil
}
