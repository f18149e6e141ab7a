// README: Gemini-backed content classification for package descriptions.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"packpal/internal/modules/parcel"
)

const classifierPrompt = `You are a package content classifier for a peer-to-peer delivery app.
Given a free-text package description, answer with exactly one word from this list:
standard, fragile, valuable, perishable.
Pick fragile for breakables, valuable for electronics/jewellery/documents of value,
perishable for food/flowers/medicine, and standard for everything else.
Answer with the single word only.

Description: %s`

// Classifier suggests a content class for packages submitted without one.
type Classifier struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClassifier initializes a Gemini client. apiKey should be provided from
// environment variables.
func NewClassifier(ctx context.Context, apiKey string) (*Classifier, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Flash keeps the submission flow cheap and fast.
	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0)

	return &Classifier{client: client, model: model}, nil
}

func (c *Classifier) Close() {
	c.client.Close()
}

// SuggestContent maps a description to a content class. Anything the model
// returns outside the closed enumeration is treated as a failure so the
// caller falls back to its own default.
func (c *Classifier) SuggestContent(ctx context.Context, description string) (parcel.Content, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(classifierPrompt, description)))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	switch parcel.Content(strings.TrimSpace(strings.ToLower(text.String()))) {
	case parcel.ContentStandard:
		return parcel.ContentStandard, nil
	case parcel.ContentFragile:
		return parcel.ContentFragile, nil
	case parcel.ContentValuable:
		return parcel.ContentValuable, nil
	case parcel.ContentPerishable:
		return parcel.ContentPerishable, nil
	default:
		return "", fmt.Errorf("unexpected classification %q", text.String())
	}
}
