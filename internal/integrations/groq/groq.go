package groq

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/usahaku/scoring-service/internal/config"
)

// ReceiptItem is one candidate transaction extracted from a receipt image
type ReceiptItem struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

type receiptPayload struct {
	Transactions []ReceiptItem `json:"transactions"`
}

// Categories a description may be classified into; the last one is the
// catch-all
var categories = []string{
	"Penjualan", "Bahan Baku", "Gaji", "Sewa", "Utilitas",
	"Marketing", "Aset Tetap", "Suntikan Dana", "Pinjaman", "Lainnya",
}

const fallbackCategory = "Lainnya"

const extractPrompt = `You are a meticulous bookkeeping assistant. Analyze every transaction row
in this financial report image. Ignore rows holding balances or totals.
For each valid row extract:
1. "date": the transaction date as YYYY-MM-DD. If the year is missing assume
   the current year; never leave it empty.
2. "description": the full text of the description column; "" if unreadable.
3. "amount": the single numeric value of the row, digits only, no currency
   symbols or thousands separators; 0 if unreadable.
4. "type": "income" when the amount comes from the income column,
   "expense" when it comes from the expense column; when ambiguous decide
   from the description, defaulting to "expense".
Produce ONLY JSON of the form {"transactions": [{"date": ..., "description": ..., "amount": ..., "type": ...}]}.
Every amount must be a number, not a string.`

// Client calls the Groq OpenAI-compatible API for receipt extraction and
// description classification. Constructed once at startup.
type Client struct {
	api         *openai.Client
	visionModel string
	textModel   string
	log         *logrus.Logger
}

// NewClient initializes a new Groq client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.GroqAPIKey)
	apiCfg.BaseURL = cfg.GroqBaseURL
	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		visionModel: cfg.GroqVisionModel,
		textModel:   cfg.GroqTextModel,
		log:         log,
	}
}

// ExtractReceipt turns a receipt or report image into candidate transactions.
// A response that is not valid JSON yields an empty list rather than an error.
func (c *Client) ExtractReceipt(ctx context.Context, image []byte, mimeType string) ([]ReceiptItem, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
		MaxTokens:   2048,
	})
	if err != nil {
		return nil, fmt.Errorf("receipt extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("receipt extraction returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	c.log.Debugf("Groq extraction response: %s", raw)

	var payload receiptPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.log.Warnf("Groq returned invalid JSON, treating as empty: %v", err)
		return nil, nil
	}
	return payload.Transactions, nil
}

// Classify maps a transaction description onto one of the fixed categories,
// falling back to the catch-all on any failure
func (c *Client) Classify(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a bookkeeping assistant. Classify this transaction description into exactly ONE category from: [%s]. Description: %q. Reply with the category name only.",
		strings.Join(categories, ", "), description,
	)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	})
	if err != nil {
		c.log.Warnf("Classification request failed: %v", err)
		return fallbackCategory, nil
	}
	if len(resp.Choices) == 0 {
		return fallbackCategory, nil
	}

	category := strings.TrimSpace(resp.Choices[0].Message.Content)
	for _, known := range categories {
		if category == known {
			return category, nil
		}
	}
	return fallbackCategory, nil
}
