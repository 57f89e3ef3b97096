package services

import (
	"testing"

	"devstep/models"
)

func fiveQuestions() []models.QuizQuestion {
	qs := make([]models.QuizQuestion, 5)
	for i := range qs {
		qs[i] = models.QuizQuestion{
			Question:      "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 1,
			Explanation:   "because",
		}
	}
	return qs
}

func TestGradeQuizPassAtSixtyPercent(t *testing.T) {
	score := GradeQuiz(fiveQuestions(), []int{1, 1, 1, 0, 0})

	if score.CorrectCount != 3 {
		t.Fatalf("expected 3 correct, got %d", score.CorrectCount)
	}
	if score.Score != 60 {
		t.Errorf("expected score 60, got %f", score.Score)
	}
	if !score.Passed {
		t.Error("60%% must pass")
	}
	if got := QuizXPReward(200, score.Score); got != 200 {
		t.Errorf("60%% pays base reward, got %d", got)
	}
}

func TestGradeQuizPerfectScore(t *testing.T) {
	score := GradeQuiz(fiveQuestions(), []int{1, 1, 1, 1, 1})

	if score.Score != 100 || !score.Passed {
		t.Fatalf("expected perfect pass, got %+v", score)
	}
	if got := QuizXPReward(200, score.Score); got != 300 {
		t.Errorf("100%% pays x1.5, got %d", got)
	}
}

func TestGradeQuizEightyPercentBand(t *testing.T) {
	score := GradeQuiz(fiveQuestions(), []int{1, 1, 1, 1, 0})

	if score.Score != 80 {
		t.Fatalf("expected score 80, got %f", score.Score)
	}
	if got := QuizXPReward(200, score.Score); got != 240 {
		t.Errorf("80%% pays x1.2, got %d", got)
	}
}

func TestGradeQuizFail(t *testing.T) {
	score := GradeQuiz(fiveQuestions(), []int{1, 1, 0, 0, 0})

	if score.Passed {
		t.Error("40%% must fail")
	}
	if len(score.Results) != 5 {
		t.Errorf("fail path still returns per-question results, got %d", len(score.Results))
	}
	if score.Results[0].Explanation != "because" {
		t.Error("explanations are included in results")
	}
}

func TestGradeQuizShortAnswers(t *testing.T) {
	// A truncated answer slice counts missing answers as wrong
	score := GradeQuiz(fiveQuestions(), []int{1})

	if score.CorrectCount != 1 {
		t.Errorf("expected 1 correct, got %d", score.CorrectCount)
	}
	if score.Results[4].YourAnswer != -1 {
		t.Errorf("missing answer should be -1, got %d", score.Results[4].YourAnswer)
	}
}

func TestQuizXPRewardFloors(t *testing.T) {
	// 1.5 * 333 = 499.5, floored to 499
	if got := QuizXPReward(333, 95); got != 499 {
		t.Errorf("expected floored 499, got %d", got)
	}
}
