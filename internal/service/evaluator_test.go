package service

import (
	"errors"
	"testing"

	"quizbank_backend/internal/model"
	"quizbank_backend/internal/util"
)

func TestEvaluateAnswerSingleChoice(t *testing.T) {
	cases := []struct {
		name      string
		canonical string
		submitted string
		want      bool
	}{
		{"exact match", "B", "B", true},
		{"wrong option", "B", "C", false},
		{"case sensitive", "b", "B", false},
		{"no trimming", "B", " B", false},
		{"empty submission", "B", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvaluateAnswer(model.SingleChoice, tc.canonical, tc.submitted)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("EvaluateAnswer(%q, %q) = %v, want %v", tc.canonical, tc.submitted, got, tc.want)
			}
		})
	}
}

func TestEvaluateAnswerTrueFalse(t *testing.T) {
	got, err := EvaluateAnswer(model.TrueFalse, "true", "true")
	if err != nil || !got {
		t.Fatalf("expected correct, got %v, err %v", got, err)
	}
	got, err = EvaluateAnswer(model.TrueFalse, "true", "false")
	if err != nil || got {
		t.Fatalf("expected incorrect, got %v, err %v", got, err)
	}
}

func TestEvaluateAnswerMultipleChoice(t *testing.T) {
	cases := []struct {
		name      string
		canonical string
		submitted string
		want      bool
	}{
		{"same order", "A,C", "A,C", true},
		{"order independent", "A,B", "B,A", true},
		{"missing option", "A,B", "A", false},
		{"extra option", "A,B", "A,B,C", false},
		{"duplicate token is not collapsed", "A", "A,A", false},
		{"duplicate on both sides matches", "A,A", "A,A", true},
		{"empty submission", "A,B", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvaluateAnswer(model.MultipleChoice, tc.canonical, tc.submitted)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("EvaluateAnswer(%q, %q) = %v, want %v", tc.canonical, tc.submitted, got, tc.want)
			}
		})
	}
}

func TestEvaluateAnswerFillBlank(t *testing.T) {
	cases := []struct {
		name      string
		canonical string
		submitted string
		want      bool
	}{
		{"exact", "Paris", "Paris", true},
		{"substring passes", "Paris", "The answer is Paris.", true},
		{"case sensitive", "Paris", "paris", false},
		{"missing answer", "Paris", "London", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvaluateAnswer(model.FillBlank, tc.canonical, tc.submitted)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("EvaluateAnswer(%q, %q) = %v, want %v", tc.canonical, tc.submitted, got, tc.want)
			}
		})
	}
}

func TestEvaluateAnswerEssayUsesContains(t *testing.T) {
	got, err := EvaluateAnswer(model.Essay, "photosynthesis", "Plants grow through photosynthesis using sunlight")
	if err != nil || !got {
		t.Fatalf("expected correct, got %v, err %v", got, err)
	}
}

func TestEvaluateAnswerUnrecognizedType(t *testing.T) {
	_, err := EvaluateAnswer(model.QuestionType("matching"), "A", "A")
	if !errors.Is(err, util.ErrUnrecognizedQuestionType) {
		t.Fatalf("expected ErrUnrecognizedQuestionType, got %v", err)
	}
}
