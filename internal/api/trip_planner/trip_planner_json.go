package tripPlanner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

var (
	leadingFence     = regexp.MustCompile("^```json\\s*")
	trailingFence    = regexp.MustCompile("\\s*```$")
	repeatedSpaces   = regexp.MustCompile(` +`)
	trailingComma    = regexp.MustCompile(`,(\s*[}\]])`)
	controlCharacter = regexp.MustCompile(`[\x00-\x1f\x7f-\x9f]`)
)

// ParseStage names the step of the recovery pipeline that produced a
// parseable document.
type ParseStage string

const (
	StageCleanup  ParseStage = "cleanup"
	StageRepair   ParseStage = "repair"
	StageBoundary ParseStage = "boundary"
)

// CleanupJSON strips markdown fences, flattens newlines and force completes a
// response that was cut off mid document.
func CleanupJSON(text string) string {
	text = leadingFence.ReplaceAllString(strings.TrimSpace(text), "")
	text = trailingFence.ReplaceAllString(strings.TrimSpace(text), "")

	if strings.Contains(text, "\n") {
		text = strings.NewReplacer("\n", " ", "\r", " ").Replace(text)
		text = repeatedSpaces.ReplaceAllString(text, " ")
	}

	text = strings.TrimSpace(text)
	if text == "" || strings.HasSuffix(text, "}") {
		return text
	}

	lastQuote := strings.LastIndex(text, `"`)
	lastClose := max(strings.LastIndex(text, "}"), strings.LastIndex(text, "]"))
	if lastQuote > lastClose {
		text = text[:lastQuote+1]
	}
	return closeOpenContainers(text)
}

// RepairJSON fixes the mistakes models commonly make: trailing commas,
// unclosed containers and raw control characters.
func RepairJSON(text string) string {
	text = trailingComma.ReplaceAllString(text, "$1")
	text = closeOpenContainers(text)
	return controlCharacter.ReplaceAllString(text, "")
}

func closeOpenContainers(text string) string {
	openBrackets := strings.Count(text, "[") - strings.Count(text, "]")
	openBraces := strings.Count(text, "{") - strings.Count(text, "}")
	if openBrackets > 0 {
		text += strings.Repeat("]", openBrackets)
	}
	if openBraces > 0 {
		text += strings.Repeat("}", openBraces)
	}
	return text
}

// ParseModelJSON runs the recovery pipeline over a raw model response and
// returns the first candidate that decodes to a JSON object.
func ParseModelJSON(text string) ([]byte, ParseStage, error) {
	cleaned := CleanupJSON(text)
	if err := decodeObject(cleaned); err == nil {
		return []byte(cleaned), StageCleanup, nil
	}

	repaired := RepairJSON(cleaned)
	lastErr := decodeObject(repaired)
	if lastErr == nil {
		return []byte(repaired), StageRepair, nil
	}

	start := strings.Index(repaired, "{")
	end := strings.LastIndex(repaired, "}") + 1
	if start >= 0 && end > start {
		candidate := repaired[start:end]
		if lastErr = decodeObject(candidate); lastErr == nil {
			return []byte(candidate), StageBoundary, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %v", types.ErrAIResponseUnparseable, lastErr)
}

func decodeObject(s string) error {
	var probe map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &probe)
}
