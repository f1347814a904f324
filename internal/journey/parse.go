package journey

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ParseStage structures the model's raw text according to the stage's
// expected shape. Parsing is strict: a malformed response surfaces as a
// *ParseError carrying the raw text, never as an empty success.
func ParseStage(stage StageKind, raw []byte) (*StageResult, error) {
	text := strings.TrimSpace(cleanFences(string(raw)))
	if text == "" {
		return nil, &ParseError{Stage: stage, Kind: ParseEmpty, Raw: string(raw)}
	}

	switch stage {
	case StagePrerequisites:
		items, err := parseStringList(stage, text, "prerequisites")
		if err != nil {
			return nil, err
		}
		return &StageResult{Stage: stage, Items: items}, nil

	case StageSubtopics:
		items, err := parseStringList(stage, text, "subtopics")
		if err != nil {
			return nil, err
		}
		return &StageResult{Stage: stage, Items: items}, nil

	case StageRoadmap:
		return parseRoadmap(text)

	case StageSummary:
		return parseSummary(text)

	case StageResources:
		return parseResources(text)

	default:
		return nil, &ParseError{
			Stage: stage,
			Kind:  ParseUnexpectedShape,
			Raw:   text,
			Err:   fmt.Errorf("stage %s has no structured shape", stage),
		}
	}
}

// cleanFences strips a surrounding markdown code fence, with or without
// a language tag. Models ignore "JSON only" instructions often enough
// that this is table stakes.
func cleanFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return s
}

// parseStringList extracts a list of short text items. Accepts a JSON
// object keyed by the stage's field name, a bare JSON array, or, as a
// fallback for models that answer in prose, numbered/bulleted lines.
func parseStringList(stage StageKind, text, key string) ([]string, error) {
	var items []string
	jsonParsed := false

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		jsonParsed = true
		rawList, ok := obj[key]
		if !ok {
			return nil, &ParseError{
				Stage: stage, Kind: ParseUnexpectedShape, Raw: text,
				Err: fmt.Errorf("object is missing the %q field", key),
			}
		}
		if err := json.Unmarshal(rawList, &items); err != nil {
			return nil, &ParseError{
				Stage: stage, Kind: ParseUnexpectedShape, Raw: text,
				Err: fmt.Errorf("field %q is not an array of strings: %w", key, err),
			}
		}
	} else if err := json.Unmarshal([]byte(text), &items); err == nil {
		jsonParsed = true
	}

	if !jsonParsed {
		items = parseListLines(text)
		if len(items) == 0 {
			return nil, &ParseError{
				Stage: stage, Kind: ParseUnexpectedShape, Raw: text,
				Err: fmt.Errorf("neither JSON nor a numbered/bulleted list"),
			}
		}
	}

	items = compactStrings(items)
	if len(items) == 0 {
		return nil, &ParseError{Stage: stage, Kind: ParseEmpty, Raw: text}
	}
	return items, nil
}

// parseListLines extracts items from "1. foo", "- foo", "* foo" lines.
func parseListLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := cutBullet(line); ok {
			items = append(items, strings.TrimSpace(rest))
			continue
		}
		// Numbered form: digits, then "." or ")", then the item.
		i := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
			items = append(items, strings.TrimSpace(line[i+1:]))
		}
	}
	return items
}

// cutBullet strips a leading bullet marker. The "•" marker is a
// multi-byte rune, so prefixes are cut by their own length.
func cutBullet(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "• "} {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return rest, true
		}
	}
	return "", false
}

func parseRoadmap(text string) (*StageResult, error) {
	var rm Roadmap
	if err := json.Unmarshal([]byte(text), &rm); err != nil {
		return nil, &ParseError{
			Stage: StageRoadmap, Kind: ParseUnexpectedShape, Raw: text,
			Err: fmt.Errorf("not a roadmap object: %w", err),
		}
	}
	if len(rm.Weeks) == 0 {
		return nil, &ParseError{Stage: StageRoadmap, Kind: ParseEmpty, Raw: text}
	}
	for _, w := range rm.Weeks {
		if w.Focus == "" {
			return nil, &ParseError{
				Stage: StageRoadmap, Kind: ParseUnexpectedShape, Raw: text,
				Err: fmt.Errorf("week %d has no focus", w.Week),
			}
		}
	}
	sort.SliceStable(rm.Weeks, func(i, j int) bool { return rm.Weeks[i].Week < rm.Weeks[j].Week })
	return &StageResult{Stage: StageRoadmap, Roadmap: &rm}, nil
}

func parseSummary(text string) (*StageResult, error) {
	var sum Summary
	if err := json.Unmarshal([]byte(text), &sum); err != nil {
		// Prose fallback: fixed header keywords introduce each section.
		sum = parseLabeledSections(text)
	}

	if sum.Concepts == "" && sum.Examples == "" && sum.Pitfalls == "" {
		return nil, &ParseError{Stage: StageSummary, Kind: ParseEmpty, Raw: text}
	}
	if sum.Concepts == "" || sum.Examples == "" || sum.Pitfalls == "" {
		return nil, &ParseError{
			Stage: StageSummary, Kind: ParseUnexpectedShape, Raw: text,
			Err: fmt.Errorf("summary must contain all of Concepts, Examples and Pitfalls"),
		}
	}
	return &StageResult{Stage: StageSummary, Summary: &sum}, nil
}

// parseLabeledSections splits prose on the fixed section headers
// Concepts / Examples / Pitfalls (with optional markdown decoration).
func parseLabeledSections(text string) Summary {
	sections := map[string]*strings.Builder{}
	var current *strings.Builder

	for _, line := range strings.Split(text, "\n") {
		header := strings.ToLower(strings.Trim(strings.TrimSpace(line), "#*: "))
		switch header {
		case "concepts", "examples", "pitfalls":
			b := &strings.Builder{}
			sections[header] = b
			current = b
		default:
			if current != nil {
				current.WriteString(line)
				current.WriteString("\n")
			}
		}
	}

	get := func(name string) string {
		if b, ok := sections[name]; ok {
			return strings.TrimSpace(b.String())
		}
		return ""
	}
	return Summary{
		Concepts: get("concepts"),
		Examples: get("examples"),
		Pitfalls: get("pitfalls"),
	}
}

func parseResources(text string) (*StageResult, error) {
	var items []Resource

	var obj struct {
		Resources []Resource `json:"resources"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err == nil && obj.Resources != nil {
		items = obj.Resources
	} else if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, &ParseError{
			Stage: StageResources, Kind: ParseUnexpectedShape, Raw: text,
			Err: fmt.Errorf("not a resources array: %w", err),
		}
	}

	kept := items[:0]
	for _, r := range items {
		if strings.TrimSpace(r.Title) != "" {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, &ParseError{Stage: StageResources, Kind: ParseEmpty, Raw: text}
	}
	return &StageResult{Stage: StageResources, Resources: kept}, nil
}

// compactStrings trims items and drops empties.
func compactStrings(in []string) []string {
	out := in[:0]
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
