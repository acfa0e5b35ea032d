package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// The fallback responder answers without a model. It pattern‑matches the
// prompt produced by BuildPrompt: metadata fields, the quoted question and the
// README block. It is a placeholder, not comprehension.

const (
	unknownRepoName    = "unknown/repository"
	unknownStars       = "many"
	unknownDescription = "No description available"

	apiSectionWindow = 500
)

var (
	fullNamePattern    = regexp.MustCompile(`"full_name": "([^"]+)"`)
	starsPattern       = regexp.MustCompile(`"stargazers_count": (\d+)`)
	descriptionPattern = regexp.MustCompile(`"description": "([^"]+)"`)
	questionPattern    = regexp.MustCompile(`User's question: "([^"]+)"`)

	readmeMarker = "--- " + models.ToolFetchReadme + " ---"
)

// sectionRule maps question keywords to the README sections worth quoting.
type sectionRule struct {
	keywords []string
	extract  func(readme string) string
}

var sectionRules = []sectionRule{
	{
		keywords: []string{"run", "install", "setup"},
		extract: func(readme string) string {
			return joinNonEmpty(
				ExtractSection(readme, "## Installation"),
				ExtractSection(readme, "## How to run"),
			)
		},
	},
	{
		keywords: []string{"feature", "what", "capabilities"},
		extract: func(readme string) string {
			return ExtractSection(readme, "## Features")
		},
	},
	{
		keywords: []string{"api", "endpoint"},
		extract:  extractAPISection,
	},
}

// FallbackResponder derives an answer from the synthesized prompt alone.
type FallbackResponder struct {
	delay time.Duration
}

// NewFallbackResponder returns a responder that waits delay before answering,
// so callers see roughly the latency of a real completion.
func NewFallbackResponder(delay time.Duration) *FallbackResponder {
	return &FallbackResponder{delay: delay}
}

// Respond builds the prompt and extracts an answer from it.
func (f *FallbackResponder) Respond(ctx context.Context, query string, results []models.ToolResult) (string, error) {
	answer := ExtractFallbackAnswer(BuildPrompt(query, results))

	if f.delay > 0 {
		timer := time.NewTimer(f.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return answer, nil
}

// ExtractFallbackAnswer is the deterministic heuristic behind FallbackResponder.
func ExtractFallbackAnswer(prompt string) string {
	fullName := firstMatch(fullNamePattern, prompt, unknownRepoName)
	stars := firstMatch(starsPattern, prompt, unknownStars)
	description := firstMatch(descriptionPattern, prompt, unknownDescription)
	question := strings.ToLower(firstMatch(questionPattern, prompt, ""))

	readme := readmeBlock(prompt)

	for _, rule := range sectionRules {
		if !containsAny(question, rule.keywords...) {
			continue
		}
		if section := strings.TrimSpace(rule.extract(readme)); section != "" {
			return fmt.Sprintf("Based on the GitHub repository %s, I found this information:\n\n%s\n\nThis repository has %s stars and is described as: \"%s\".",
				fullName, section, stars, description)
		}
	}

	return fmt.Sprintf("The GitHub repository %s is described as: \"%s\". It has %s stars.\n\n"+
		"I could not find a part of its README that answers this question directly. "+
		"You can ask me how to install or run it, what features it offers, or which API endpoints it exposes.",
		fullName, description, stars)
}

// ExtractSection returns the text from marker up to the next "##" header
// after it, or to the end of text. It returns "" when marker is absent.
func ExtractSection(text, marker string) string {
	start := strings.Index(text, marker)
	if start < 0 {
		return ""
	}
	bodyStart := start + len(marker)
	if end := strings.Index(text[bodyStart:], "##"); end >= 0 {
		return text[start : bodyStart+end]
	}
	return text[start:]
}

// extractAPISection starts at the first "API" and stops at the next "##"
// header or after a fixed window.
func extractAPISection(readme string) string {
	start := strings.Index(readme, "API")
	if start < 0 {
		return ""
	}
	bodyStart := start + len("API")
	if end := strings.Index(readme[bodyStart:], "##"); end >= 0 {
		return readme[start : bodyStart+end]
	}
	end := start + apiSectionWindow
	if end > len(readme) {
		end = len(readme)
	}
	return strings.ToValidUTF8(readme[start:end], "")
}

// readmeBlock returns the prompt text between the README header and the next
// "---" marker.
func readmeBlock(prompt string) string {
	start := strings.Index(prompt, readmeMarker)
	if start < 0 {
		return ""
	}
	block := prompt[start+len(readmeMarker):]
	if end := strings.Index(block, "---"); end >= 0 {
		block = block[:end]
	}
	return block
}

func firstMatch(re *regexp.Regexp, s, fallback string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return fallback
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
