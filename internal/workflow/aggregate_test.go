package workflow_test

import (
	"testing"

	"github.com/JaimeStill/lector/internal/agents"
	"github.com/JaimeStill/lector/internal/workflow"
)

func successAgent(name string, outputJSON any) *agents.Agent {
	return &agents.Agent{
		Name:       name,
		Status:     agents.StatusSuccess,
		OutputJSON: outputJSON,
	}
}

func TestAggregateSentiment(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  workflow.Sentiment
	}{
		{"positive", "positive", workflow.Sentiment{Positive: 1}},
		{"negative", "negative", workflow.Sentiment{Negative: 1}},
		{"neutral", "neutral", workflow.Sentiment{Neutral: 1}},
		{"case insensitive", "Positive", workflow.Sentiment{Positive: 1}},
		{"unrecognized label counts neutral", "ambivalent", workflow.Sentiment{Neutral: 1}},
		{"missing label counts neutral", "", workflow.Sentiment{Neutral: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := map[string]any{}
			if tt.label != "" {
				output["sentiment"] = tt.label
			}

			result := workflow.Aggregate([]*agents.Agent{
				successAgent("Sentiment Analyzer", output),
			})

			if result.Sentiment == nil {
				t.Fatal("Sentiment = nil, want histogram")
			}
			if *result.Sentiment != tt.want {
				t.Errorf("Sentiment = %+v, want %+v", *result.Sentiment, tt.want)
			}
		})
	}

	t.Run("non-object output yields no histogram", func(t *testing.T) {
		result := workflow.Aggregate([]*agents.Agent{
			successAgent("Sentiment Analyzer", []any{"positive"}),
		})

		if result.Sentiment != nil {
			t.Errorf("Sentiment = %+v, want nil for non-object output", result.Sentiment)
		}
	})
}

func TestAggregateEntities(t *testing.T) {
	t.Run("keeps entries with name and type", func(t *testing.T) {
		result := workflow.Aggregate([]*agents.Agent{
			successAgent("Entity Extractor", []any{
				map[string]any{"name": "Acme Corp", "type": "organization"},
				map[string]any{"name": "missing type"},
				map[string]any{"type": "missing name"},
				"not an object",
				map[string]any{"name": "Jordan Reyes", "type": "person"},
			}),
		})

		want := []workflow.Entity{
			{Name: "Acme Corp", Type: "organization"},
			{Name: "Jordan Reyes", Type: "person"},
		}

		if len(result.Entities) != len(want) {
			t.Fatalf("Entities = %v, want %v", result.Entities, want)
		}
		for i := range want {
			if result.Entities[i] != want[i] {
				t.Errorf("Entities[%d] = %+v, want %+v", i, result.Entities[i], want[i])
			}
		}
	})

	t.Run("non-array output yields no entities", func(t *testing.T) {
		result := workflow.Aggregate([]*agents.Agent{
			successAgent("Entity Extractor", map[string]any{"name": "Acme", "type": "organization"}),
		})

		if result.Entities != nil {
			t.Errorf("Entities = %v, want nil for non-array output", result.Entities)
		}
	})
}

func TestAggregateRoleSelection(t *testing.T) {
	t.Run("identifies roles by name substring", func(t *testing.T) {
		result := workflow.Aggregate([]*agents.Agent{
			successAgent("document sentiment review", map[string]any{"sentiment": "negative"}),
			successAgent("Entities", []any{map[string]any{"name": "Acme", "type": "organization"}}),
		})

		if result.Sentiment == nil || result.Sentiment.Negative != 1 {
			t.Errorf("Sentiment = %+v, want negative count", result.Sentiment)
		}
		if len(result.Entities) != 1 {
			t.Errorf("Entities = %v, want one entry", result.Entities)
		}
	})

	t.Run("first matching agent wins", func(t *testing.T) {
		result := workflow.Aggregate([]*agents.Agent{
			successAgent("Sentiment A", map[string]any{"sentiment": "positive"}),
			successAgent("Sentiment B", map[string]any{"sentiment": "negative"}),
		})

		if result.Sentiment == nil || result.Sentiment.Positive != 1 {
			t.Errorf("Sentiment = %+v, want first agent's positive", result.Sentiment)
		}
	})

	t.Run("skips non-success agents", func(t *testing.T) {
		failed := &agents.Agent{Name: "Sentiment Analyzer", Status: agents.StatusError}

		result := workflow.Aggregate([]*agents.Agent{
			failed,
			successAgent("Backup Sentiment", map[string]any{"sentiment": "negative"}),
		})

		if result.Sentiment == nil || result.Sentiment.Negative != 1 {
			t.Errorf("Sentiment = %+v, want fallback to later success", result.Sentiment)
		}
	})

	t.Run("no recognized roles", func(t *testing.T) {
		result := workflow.Aggregate([]*agents.Agent{
			successAgent("Summarizer", nil),
		})

		if result.HasData() {
			t.Errorf("HasData = true, want false for %+v", result)
		}
	})
}
