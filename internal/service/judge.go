package service

import (
	"context"
	"fmt"
)

// JudgeService is a single LLM provider able to answer a formatted judge
// prompt. Implementations own their retry policy; callers treat any returned
// error as a per-row failure.
type JudgeService interface {
	Provider() string
	Judge(ctx context.Context, modelName string, temperature float64, prompt string) (string, error)
}

// JudgeRegistry resolves a connector's provider id to a client.
type JudgeRegistry struct {
	services map[string]JudgeService
}

func NewJudgeRegistry(services ...JudgeService) *JudgeRegistry {
	m := make(map[string]JudgeService, len(services))
	for _, s := range services {
		m[s.Provider()] = s
	}
	return &JudgeRegistry{services: m}
}

func (r *JudgeRegistry) For(provider string) (JudgeService, error) {
	s, ok := r.services[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	return s, nil
}

func (r *JudgeRegistry) Providers() []string {
	out := make([]string, 0, len(r.services))
	for p := range r.services {
		out = append(out, p)
	}
	return out
}
