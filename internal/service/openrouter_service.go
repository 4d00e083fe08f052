package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ardelias/judgeboard/internal/config"
	"github.com/ardelias/judgeboard/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type OpenRouterService struct {
	APIKey  string
	BaseURL string
	client  *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		client:  resty.New().SetTimeout(90 * time.Second),
	}
}

func (s *OpenRouterService) Provider() string {
	return model.ProviderOpenRouter
}

func (s *OpenRouterService) Judge(ctx context.Context, modelName string, temperature float64, prompt string) (string, error) {
	if modelName == "" {
		return "", fmt.Errorf("model name cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":       modelName,
			"temperature": temperature,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an impartial evaluation judge. Answer strictly in the requested JSON format."},
				{"role": "user", "content": prompt},
			},
		}).
		Post(s.BaseURL + "/chat/completions")
	if err != nil {
		return "", err
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("openrouter: %s", msg)
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
