package geminisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/assist"
)

// Client calls the Gemini generateContent REST API. Text flows request
// an application/json response and decode the first candidate; image
// flows request TEXT+IMAGE modalities and return the first inline image
// as a data URI.
type Client struct {
	conf   *core.Config
	logger core.Logger
	http   *http.Client
}

var _ assist.Generator = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		conf:   conf,
		logger: logger,
		http:   &http.Client{Timeout: conf.Gemini.Timeout},
	}
}

type (
	inlineData struct {
		MimeType string `json:"mime_type,omitempty"`
		Data     string `json:"data,omitempty"`
	}

	fileData struct {
		FileURI string `json:"file_uri,omitempty"`
	}

	part struct {
		Text       string      `json:"text,omitempty"`
		InlineData *inlineData `json:"inline_data,omitempty"`
		FileData   *fileData   `json:"file_data,omitempty"`
	}

	content struct {
		Parts []part `json:"parts"`
	}

	generationConfig struct {
		ResponseMimeType   string   `json:"responseMimeType,omitempty"`
		ResponseModalities []string `json:"responseModalities,omitempty"`
	}

	generateRequest struct {
		Contents         []content         `json:"contents"`
		GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	}

	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}
)

func (c *Client) GenerateJSON(ctx context.Context, prompt string, media []string, out interface{}) error {
	parts := make([]part, 0, len(media)+1)
	parts = append(parts, part{Text: prompt})
	for _, m := range media {
		p, err := mediaPart(m)
		if err != nil {
			return err
		}
		parts = append(parts, p)
	}

	res, err := c.generate(ctx, c.conf.Gemini.TextModel, generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return err
	}

	text := firstText(res)
	if text == "" {
		return errors.New("gemini: empty response")
	}
	if err := json.Unmarshal([]byte(stripFences(text)), out); err != nil {
		return errors.Wrapf(err, "gemini: decoding response %q", text)
	}
	return nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	res, err := c.generate(ctx, c.conf.Gemini.ImageModel, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		// the image model requires both modalities
		GenerationConfig: &generationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	if err != nil {
		return "", err
	}

	for _, cand := range res.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return fmt.Sprintf("data:%s;base64,%s", p.InlineData.MimeType, p.InlineData.Data), nil
			}
		}
	}
	return "", nil
}

func (c *Client) generate(ctx context.Context, model string, reqBody generateRequest) (*generateResponse, error) {
	if c.conf.Gemini.ApiKey == "" {
		return nil, errors.New("gemini: api key not configured")
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "gemini: encoding request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.conf.Gemini.BaseURL, model, c.conf.Gemini.ApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "gemini: building request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "gemini: calling api")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "gemini: reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("gemini: api error (status %d): %s", resp.StatusCode, respBody)
	}

	var res generateResponse
	if err := json.Unmarshal(respBody, &res); err != nil {
		return nil, errors.Wrap(err, "gemini: decoding response")
	}
	return &res, nil
}

// mediaPart converts a media reference into a request part: data URIs
// become inline data, anything else is passed as a file URI.
func mediaPart(m string) (part, error) {
	if strings.HasPrefix(m, "data:") {
		rest := strings.TrimPrefix(m, "data:")
		sep := strings.Index(rest, ";base64,")
		if sep < 0 {
			return part{}, errors.Errorf("gemini: unsupported data URI encoding")
		}
		return part{InlineData: &inlineData{
			MimeType: rest[:sep],
			Data:     rest[sep+len(";base64,"):],
		}}, nil
	}
	return part{FileData: &fileData{FileURI: m}}, nil
}

func firstText(res *generateResponse) string {
	for _, cand := range res.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

// stripFences removes a markdown code fence around a JSON payload; the
// model occasionally wraps responses despite the JSON mime type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
