package workflow

import (
	"strings"

	"github.com/JaimeStill/lector/internal/agents"
)

// Sentiment is a tri-valued histogram; each run contributes a unit count
// to exactly one bucket.
type Sentiment struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Entity is a named entity recognized in the document.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// AnalysisResult is the display-ready summary scanned from completed
// agents after a run. It is ephemeral: recomputed after each full run and
// never persisted as agent state.
type AnalysisResult struct {
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Entities  []Entity   `json:"entities,omitempty"`
}

// HasData reports whether the aggregation found anything; downstream
// display only switches to the summary view when it did.
func (r *AnalysisResult) HasData() bool {
	return r != nil && (r.Sentiment != nil || len(r.Entities) > 0)
}

// Aggregate scans the final agent states for recognized semantic roles.
// Role identification is by agent name; when several agents share a role
// name, the first match in registry order wins.
func Aggregate(list []*agents.Agent) *AnalysisResult {
	result := &AnalysisResult{}

	if agent := findRole(list, "sentiment"); agent != nil {
		result.Sentiment = readSentiment(agent.OutputJSON)
	}
	if agent := findRole(list, "entit"); agent != nil {
		result.Entities = readEntities(agent.OutputJSON)
	}

	return result
}

func findRole(list []*agents.Agent, role string) *agents.Agent {
	for _, agent := range list {
		if agent.Status != agents.StatusSuccess {
			continue
		}
		if strings.Contains(strings.ToLower(agent.Name), role) {
			return agent
		}
	}
	return nil
}

// readSentiment maps the agent's sentiment label onto exactly one bucket.
// Unrecognized labels count as neutral.
func readSentiment(value any) *Sentiment {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	label, _ := obj["sentiment"].(string)

	sentiment := &Sentiment{}
	switch strings.ToLower(label) {
	case "positive":
		sentiment.Positive++
	case "negative":
		sentiment.Negative++
	default:
		sentiment.Neutral++
	}

	return sentiment
}

// readEntities keeps only entries exposing both a name and a type.
func readEntities(value any) []Entity {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	var entities []Entity
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		name, _ := obj["name"].(string)
		entityType, _ := obj["type"].(string)
		if name == "" || entityType == "" {
			continue
		}

		entities = append(entities, Entity{Name: name, Type: entityType})
	}

	return entities
}
