// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package critique

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Critique is the structured form of a model reply.
type Critique struct {
	Summary         string   `json:"summary"`
	Positives       []string `json:"positives"`
	Negatives       []string `json:"negatives"`
	Recommendations []string `json:"recommendations"`
	Score           *int     `json:"score"`
	Raw             string   `json:"raw"`
}

type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionPositives
	sectionNegatives
	sectionRecommendations
	sectionScore
)

var markers = []struct {
	name string
	sec  section
}{
	{"SUMMARY", sectionSummary},
	{"POSITIVES", sectionPositives},
	{"NEGATIVES", sectionNegatives},
	{"RECOMMENDATIONS", sectionRecommendations},
	{"SCORE", sectionScore},
}

var (
	scorePattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:/\s*10)?`)
	bulletPattern = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)
)

// Parse splits a reply on its section markers. Text before the first
// marker is ignored, missing sections stay empty and Raw always holds
// the full reply.
func Parse(raw string) Critique {
	c := Critique{
		Positives:       []string{},
		Negatives:       []string{},
		Recommendations: []string{},
		Raw:             raw,
	}

	var (
		current section
		summary []string
		score   []string
	)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if sec, rest, ok := marker(line); ok {
			current = sec
			line = rest
		}
		if line == "" {
			continue
		}

		switch current {
		case sectionSummary:
			summary = append(summary, line)
		case sectionPositives:
			c.Positives = append(c.Positives, item(line))
		case sectionNegatives:
			c.Negatives = append(c.Negatives, item(line))
		case sectionRecommendations:
			c.Recommendations = append(c.Recommendations, item(line))
		case sectionScore:
			score = append(score, line)
		}
	}

	c.Summary = strings.Join(summary, " ")
	c.Score = parseScore(strings.Join(score, " "))
	return c
}

// marker recognizes "SUMMARY:" style headings, also when wrapped in
// markdown emphasis or prefixed with "#".
func marker(line string) (section, string, bool) {
	trimmed := strings.TrimLeft(line, "#* ")
	upper := strings.ToUpper(trimmed)
	for _, m := range markers {
		if !strings.HasPrefix(upper, m.name) {
			continue
		}
		rest := strings.TrimLeft(trimmed[len(m.name):], "* ")
		if !strings.HasPrefix(rest, ":") {
			continue
		}
		rest = strings.TrimLeft(rest[1:], "* ")
		return m.sec, strings.TrimSpace(rest), true
	}
	return sectionNone, "", false
}

func item(line string) string {
	return strings.TrimSpace(bulletPattern.ReplaceAllString(line, ""))
}

func parseScore(s string) *int {
	m := scorePattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	n := int(math.Round(math.Min(math.Max(v, 0), 10)))
	return &n
}
