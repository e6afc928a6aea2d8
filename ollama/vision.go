package ollama

import (
	"context"
	"log"
	"sort"
	"strings"
)

// Keyword tables for guessing whether a model can see images. This is a
// heuristic, not a guaranteed classifier: names that hit an exclude
// keyword are re-admitted when a vision keyword also matches, which
// keeps hybrids like a hypothetical "mistral-vision" in the list.
var (
	visionKeywords = []string{"vl", "vision", "llava", "multimodal", "image", "clip", "visual"}

	excludeKeywords = []string{
		"mistral", "phi", "codellama", "deepseek-coder",
		"starcoder", "wizardcoder", "neural-chat", "orca",
	}
)

// DefaultVisionModels is the built-in candidate list used when live
// discovery is unavailable.
func DefaultVisionModels() []string {
	return []string{
		"qwen3-vl:8b",
		"qwen2-vl:7b",
		"qwen2-vl:2b",
		"llava:latest",
		"llava:13b",
		"llava:7b",
		"gemma3:4b",
		"gemma3:12b",
	}
}

func nameSuggestsVision(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range visionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func nameSuggestsExcluded(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range excludeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// detailsSuggestVision scans model metadata for vision keywords. The
// llava / qwen+vl family check mirrors the name check on purpose; it
// rescues models whose metadata does not mention vision at all.
func detailsSuggestVision(name string, d *ModelDetails) bool {
	if d == nil {
		return false
	}
	lower := strings.ToLower(name)
	if strings.Contains(lower, "llava") ||
		(strings.Contains(lower, "qwen") && strings.Contains(lower, "vl")) {
		return true
	}

	haystack := strings.ToLower(d.Modelfile + " " + d.Parameters + " " + string(d.Details))
	for _, kw := range visionKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// FilterVision classifies model names using the keyword tables, probing
// ambiguous names through the supplied details fetcher. Probe failures
// skip that model rather than failing the whole scan. The result is
// sorted and de-duplicated.
func FilterVision(names []string, probe func(name string) (*ModelDetails, error)) []string {
	seen := make(map[string]bool)
	var vision []string

	for _, name := range names {
		if nameSuggestsExcluded(name) && !nameSuggestsVision(name) {
			continue
		}
		if nameSuggestsVision(name) {
			if !seen[name] {
				seen[name] = true
				vision = append(vision, name)
			}
			continue
		}
		if probe == nil {
			continue
		}
		details, err := probe(name)
		if err != nil {
			continue
		}
		if detailsSuggestVision(name, details) && !seen[name] {
			seen[name] = true
			vision = append(vision, name)
		}
	}

	sort.Strings(vision)
	return vision
}

// VisionModels discovers installed vision-capable models. Discovery is
// fail-soft: any listing error falls back to the built-in defaults so
// model choice is never blocked by an unreachable service.
func (c *Client) VisionModels(ctx context.Context) []string {
	names, err := c.ListModels(ctx)
	if err != nil {
		log.Printf("Model discovery unavailable, using built-in list: %v", err)
		return DefaultVisionModels()
	}

	vision := FilterVision(names, func(name string) (*ModelDetails, error) {
		return c.ShowModel(ctx, name)
	})
	if len(vision) == 0 {
		return DefaultVisionModels()
	}
	return vision
}
