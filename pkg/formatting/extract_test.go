package formatting_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/JaimeStill/lector/pkg/formatting"
)

func TestExtractJSON(t *testing.T) {
	t.Run("fenced json block", func(t *testing.T) {
		input := "Here is the result:\n```json\n{\"sentiment\":\"Positive\"}\n```\nDone."
		got, ok := formatting.ExtractJSON(input)
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		m, ok := got.(map[string]any)
		if !ok || m["sentiment"] != "Positive" {
			t.Errorf("got = %v, want map with sentiment Positive", got)
		}
	})

	t.Run("fenced block round-trips arbitrary values", func(t *testing.T) {
		want := map[string]any{
			"name":  "Acme",
			"count": float64(3),
			"tags":  []any{"a", "b"},
			"inner": map[string]any{"ok": true},
		}
		data, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		got, ok := formatting.ExtractJSON("```json\n" + string(data) + "\n```")
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got = %v, want %v", got, want)
		}
	})

	t.Run("fence tag matches case-insensitively", func(t *testing.T) {
		input := "```JSON\n{\"sentiment\":\"negative\"}\n```"
		got, ok := formatting.ExtractJSON(input)
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		m := got.(map[string]any)
		if m["sentiment"] != "negative" {
			t.Errorf("got = %v, want the fenced candidate", got)
		}
	})

	t.Run("fenced block wins over earlier bare literal", func(t *testing.T) {
		input := "{\"decoy\":1} then\n```json\n{\"chosen\":true}\n```"
		got, ok := formatting.ExtractJSON(input)
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		m := got.(map[string]any)
		if m["chosen"] != true {
			t.Errorf("got = %v, want the fenced candidate", got)
		}
	})

	t.Run("invalid fenced block is terminal", func(t *testing.T) {
		// A later valid literal must not rescue a broken fenced candidate.
		input := "```json\n{broken\n```\n{\"valid\":true}"
		if got, ok := formatting.ExtractJSON(input); ok {
			t.Errorf("got = %v, want absent", got)
		}
	})

	t.Run("balanced object in prose", func(t *testing.T) {
		input := `The model says {"name":"Acme","type":"ORG"} with confidence.`
		got, ok := formatting.ExtractJSON(input)
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		m := got.(map[string]any)
		if m["name"] != "Acme" || m["type"] != "ORG" {
			t.Errorf("got = %v, want Acme/ORG", got)
		}
	})

	t.Run("balanced array in prose", func(t *testing.T) {
		input := "Entities found: [\"a\",\"b\"] overall."
		got, ok := formatting.ExtractJSON(input)
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		arr, ok := got.([]any)
		if !ok || len(arr) != 2 {
			t.Errorf("got = %v, want two-element array", got)
		}
	})

	t.Run("braces inside strings do not close the literal", func(t *testing.T) {
		input := `prefix {"text":"a } inside","n":1} suffix`
		got, ok := formatting.ExtractJSON(input)
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		m := got.(map[string]any)
		if m["text"] != "a } inside" {
			t.Errorf("text = %v, want literal with embedded brace", m["text"])
		}
	})

	t.Run("whole text as json", func(t *testing.T) {
		got, ok := formatting.ExtractJSON(`  "just a string"  `)
		if !ok {
			t.Fatal("ExtractJSON returned absent")
		}
		if got != "just a string" {
			t.Errorf("got = %v, want bare string value", got)
		}
	})

	t.Run("plain prose returns absent", func(t *testing.T) {
		if got, ok := formatting.ExtractJSON("no structured data here"); ok {
			t.Errorf("got = %v, want absent", got)
		}
	})

	t.Run("empty string returns absent", func(t *testing.T) {
		if _, ok := formatting.ExtractJSON(""); ok {
			t.Error("want absent for empty input")
		}
	})

	t.Run("unbalanced literal falls through to whole text", func(t *testing.T) {
		if _, ok := formatting.ExtractJSON("dangling { never closes"); ok {
			t.Error("want absent for unbalanced input")
		}
	})
}
