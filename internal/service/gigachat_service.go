package service

import (
	"context"
	"fmt"
	"time"

	"github.com/FEgor04/moretech-hack/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolSpec describes a function the model may call instead of answering
// with text. Parameters is a JSON Schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

type ToolCall struct {
	Name      string
	Arguments string // raw JSON object
}

// ChatResult holds exactly one of Text or ToolCall.
type ChatResult struct {
	Text     string
	ToolCall *ToolCall
}

type ChatOptions struct {
	Temperature  float64
	MaxTokens    int
	Tools        []ToolSpec
	DisableTools bool
}

type GigaChatServiceInterface interface {
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error)
}

type GigaChatService struct {
	client *resty.Client
	model  string
}

func NewGigaChatService() *GigaChatService {
	cfg := config.LoadGigaChatConfig()
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(90 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &GigaChatService{
		client: client,
		model:  cfg.Model,
	}
}

func (s *GigaChatService) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error) {
	payload := map[string]any{
		"model":    s.model,
		"messages": messages,
		"stream":   false,
	}
	if opts.Temperature > 0 {
		payload["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		payload["max_tokens"] = opts.MaxTokens
	}
	if opts.DisableTools {
		payload["function_call"] = "none"
	} else if len(opts.Tools) > 0 {
		functions := make([]map[string]any, 0, len(opts.Tools))
		for _, t := range opts.Tools {
			functions = append(functions, map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  t.Parameters,
			})
		}
		payload["functions"] = functions
		payload["function_call"] = "auto"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gigachat: status %d: %s", resp.StatusCode(), resp.String())
	}

	body := resp.String()
	call := gjson.Get(body, "choices.0.message.function_call")
	if call.Exists() && call.Get("name").String() != "" {
		args := call.Get("arguments")
		raw := args.Raw
		if args.Type == gjson.String {
			raw = args.String()
		}
		return &ChatResult{ToolCall: &ToolCall{
			Name:      call.Get("name").String(),
			Arguments: raw,
		}}, nil
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if text == "" {
		return nil, fmt.Errorf("gigachat: empty completion")
	}
	return &ChatResult{Text: text}, nil
}
