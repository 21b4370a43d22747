// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textanalysis

import (
	"testing"
)

func TestTokens(t *testing.T) {
	a := NewRegexAnalyzer()
	tokens := a.Tokens("Patient aged 45, response 90%.")

	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	want := []string{"Patient", "aged", "45", "response", "90", "%"}
	if len(texts) != len(want) {
		t.Fatalf("tokens = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, texts[i], want[i])
		}
	}
	if !tokens[2].Numeric {
		t.Error("token 45 should be numeric")
	}
	if tokens[3].Numeric {
		t.Error("token 'response' should not be numeric")
	}
	if tokens[2].Index != 2 {
		t.Errorf("token index = %d, want 2", tokens[2].Index)
	}
}

func TestEntities(t *testing.T) {
	a := NewRegexAnalyzer()
	entities := a.Entities("Age: 45, DOB: 5/1/1990, response 90%")

	got := map[string][]string{}
	for _, e := range entities {
		got[e.Label] = append(got[e.Label], e.Text)
	}

	if len(got[LabelCardinal]) != 1 || got[LabelCardinal][0] != "45" {
		t.Errorf("cardinals = %v, want [45]", got[LabelCardinal])
	}
	if len(got[LabelPercent]) != 1 || got[LabelPercent][0] != "90" {
		t.Errorf("percents = %v, want [90]", got[LabelPercent])
	}
	if len(got[LabelDate]) != 1 || got[LabelDate][0] != "5/1/1990" {
		t.Errorf("dates = %v, want [5/1/1990]", got[LabelDate])
	}
}

func TestEntities_DocumentOrder(t *testing.T) {
	a := NewRegexAnalyzer()
	entities := a.Entities("90% response before visit 12")
	if len(entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(entities))
	}
	if entities[0].Label != LabelPercent || entities[1].Label != LabelCardinal {
		t.Errorf("entity order = %v/%v, want PERCENT then CARDINAL", entities[0].Label, entities[1].Label)
	}
}

func TestSentences(t *testing.T) {
	a := NewRegexAnalyzer()
	sentences := a.Sentences("First visit went well. Second visit was worse! Third pending?")
	if len(sentences) != 3 {
		t.Fatalf("sentences = %v, want 3", sentences)
	}
	if sentences[0] != "First visit went well" {
		t.Errorf("first sentence = %q", sentences[0])
	}
}

func TestSentences_Empty(t *testing.T) {
	a := NewRegexAnalyzer()
	if got := a.Sentences(""); len(got) != 0 {
		t.Errorf("Sentences(\"\") = %v, want none", got)
	}
}
