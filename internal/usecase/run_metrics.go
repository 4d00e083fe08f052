package usecase

import (
	"sort"
	"strings"

	"github.com/ardelias/judgeboard/internal/model"
)

type ParameterMetrics struct {
	Parameter string         `json:"parameter"`
	Counts    map[string]int `json:"counts"`
}

type RunMetrics struct {
	TotalRows  int                `json:"total_rows"`
	ErrorRows  int                `json:"error_rows"`
	Parameters []ParameterMetrics `json:"parameters"`
}

type ParameterAccuracy struct {
	Parameter string  `json:"parameter"`
	Matched   int     `json:"matched"`
	Judged    int     `json:"judged"`
	Accuracy  float64 `json:"accuracy"`
}

// ComputeMetrics counts labels per parameter across successful rows. Error
// rows contribute only to ErrorRows.
func ComputeMetrics(results []model.RowResult) *RunMetrics {
	m := &RunMetrics{TotalRows: len(results)}
	byParam := map[string]map[string]int{}

	for _, r := range results {
		if r.Error != "" {
			m.ErrorRows++
			continue
		}
		for param, label := range r.Labels {
			if byParam[param] == nil {
				byParam[param] = map[string]int{}
			}
			byParam[param][label]++
		}
	}

	names := make([]string, 0, len(byParam))
	for name := range byParam {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m.Parameters = append(m.Parameters, ParameterMetrics{Parameter: name, Counts: byParam[name]})
	}
	return m
}

// ComputeAccuracy compares labels against the expected values captured at
// execution time. Error rows and rows without an expected value for a
// parameter are excluded from that parameter's denominator. Comparison is
// case-insensitive, matching label validation in the executor.
func ComputeAccuracy(results []model.RowResult) []ParameterAccuracy {
	type tally struct{ matched, judged int }
	byParam := map[string]*tally{}

	for _, r := range results {
		if r.Error != "" {
			continue
		}
		for param, expected := range r.Expected {
			label, ok := r.Labels[param]
			if !ok || strings.TrimSpace(expected) == "" {
				continue
			}
			t := byParam[param]
			if t == nil {
				t = &tally{}
				byParam[param] = t
			}
			t.judged++
			if strings.EqualFold(strings.TrimSpace(expected), label) {
				t.matched++
			}
		}
	}

	names := make([]string, 0, len(byParam))
	for name := range byParam {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ParameterAccuracy, 0, len(names))
	for _, name := range names {
		t := byParam[name]
		acc := 0.0
		if t.judged > 0 {
			acc = float64(t.matched) / float64(t.judged)
		}
		out = append(out, ParameterAccuracy{
			Parameter: name,
			Matched:   t.matched,
			Judged:    t.judged,
			Accuracy:  acc,
		})
	}
	return out
}

// FilterResults keeps rows whose labels match every filter entry.
func FilterResults(results []model.RowResult, filter map[string]string) []model.RowResult {
	if len(filter) == 0 {
		return results
	}
	var out []model.RowResult
	for _, r := range results {
		if r.Error != "" {
			continue
		}
		match := true
		for param, label := range filter {
			if !strings.EqualFold(r.Labels[param], label) {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}
