package services

import "devstep/models"

// PassingScore is the minimum percentage to pass a quiz
const PassingScore = 60.0

// QuestionResult is the per-question feedback returned to the client
type QuestionResult struct {
	Question      string `json:"question"`
	YourAnswer    int    `json:"yourAnswer"`
	CorrectAnswer int    `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
}

// QuizScore is the outcome of grading one submission
type QuizScore struct {
	Score          float64          `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	TotalQuestions int              `json:"totalQuestions"`
	Passed         bool             `json:"passed"`
	Results        []QuestionResult `json:"results"`
}

// GradeQuiz scores a submission against the quest's question list. Answers
// are matched by index; a missing answer counts as wrong.
func GradeQuiz(questions []models.QuizQuestion, answers []int) QuizScore {
	score := QuizScore{
		TotalQuestions: len(questions),
		Results:        make([]QuestionResult, 0, len(questions)),
	}

	for i, q := range questions {
		given := -1
		if i < len(answers) {
			given = answers[i]
		}
		isCorrect := given == q.CorrectAnswer
		if isCorrect {
			score.CorrectCount++
		}
		score.Results = append(score.Results, QuestionResult{
			Question:      q.Question,
			YourAnswer:    given,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	if score.TotalQuestions > 0 {
		score.Score = float64(score.CorrectCount) / float64(score.TotalQuestions) * 100
	}
	score.Passed = score.Score >= PassingScore

	return score
}

// QuizXPReward scales the quest reward by the score band and floors the result
func QuizXPReward(baseReward int, score float64) int {
	multiplier := 1.0
	switch {
	case score >= 90:
		multiplier = 1.5
	case score >= 75:
		multiplier = 1.2
	}
	return int(float64(baseReward) * multiplier)
}
