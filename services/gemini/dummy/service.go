package dummygen

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core/assist"
)

// Generator is a canned assist.Generator for tests. Queue JSON payloads
// and image URIs in the order flows will request them.
type Generator struct {
	mu        sync.Mutex
	responses []string
	images    []string
	err       error

	Prompts []string
	Media   [][]string
}

var _ assist.Generator = (*Generator)(nil)

func NewGenerator() *Generator {
	return &Generator{}
}

// QueueJSON appends a raw JSON payload to be returned by the next
// GenerateJSON call.
func (g *Generator) QueueJSON(payload string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses = append(g.responses, payload)
}

// QueueImage appends a data URI to be returned by the next
// GenerateImage call.
func (g *Generator) QueueImage(uri string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.images = append(g.images, uri)
}

// Fail makes all subsequent calls return err.
func (g *Generator) Fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

func (g *Generator) GenerateJSON(ctx context.Context, prompt string, media []string, out interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Prompts = append(g.Prompts, prompt)
	g.Media = append(g.Media, media)

	if g.err != nil {
		return g.err
	}
	if len(g.responses) == 0 {
		return errors.New("dummygen: no queued response")
	}
	payload := g.responses[0]
	g.responses = g.responses[1:]
	return json.Unmarshal([]byte(payload), out)
}

func (g *Generator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Prompts = append(g.Prompts, prompt)

	if g.err != nil {
		return "", g.err
	}
	if len(g.images) == 0 {
		return "", nil
	}
	uri := g.images[0]
	g.images = g.images[1:]
	return uri, nil
}
