package structs

import "devstep/models"

type CreateQuestRequest struct {
	Title         string                `json:"title" binding:"required"`
	Description   string                `json:"description" binding:"required"`
	RequiredLevel int                   `json:"requiredLevel" binding:"required,min=1,max=7"`
	ContentType   string                `json:"contentType" binding:"required,oneof=video article quiz project coding-challenge"`
	ContentURL    string                `json:"contentUrl"`
	Difficulty    string                `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	XPReward      int                   `json:"xpReward" binding:"required,min=1"`
	QuizQuestions []models.QuizQuestion `json:"quizQuestions"`
	OrderIndex    int                   `json:"orderIndex"`
}

type UpdateQuestRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	RequiredLevel int                   `json:"requiredLevel" binding:"omitempty,min=1,max=7"`
	ContentType   string                `json:"contentType" binding:"omitempty,oneof=video article quiz project coding-challenge"`
	ContentURL    string                `json:"contentUrl"`
	Difficulty    string                `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	XPReward      int                   `json:"xpReward" binding:"omitempty,min=1"`
	QuizQuestions []models.QuizQuestion `json:"quizQuestions"`
	OrderIndex    *int                  `json:"orderIndex"`
	IsLocked      *bool                 `json:"isLocked"`
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}
