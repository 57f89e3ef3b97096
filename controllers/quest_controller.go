package controllers

import (
	"fmt"
	"net/http"
	"time"

	"devstep/db"
	"devstep/internal/cache"
	"devstep/levels"
	"devstep/middlewares"
	"devstep/models"
	"devstep/services"
	"devstep/structs"
	"devstep/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetQuests lists all quests ordered by their course position
func GetQuests(c *gin.Context) {
	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := db.GetCollection("quests").Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quests"})
		return
	}
	defer cursor.Close(ctx)

	var quests []models.Quest
	if err := cursor.All(ctx, &quests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode quests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

// GetQuestByID returns a single quest
func GetQuestByID(c *gin.Context) {
	questID, err := primitive.ObjectIDFromHex(c.Param("questId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quest ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var quest models.Quest
	if err := db.GetCollection("quests").FindOne(ctx, bson.M{"_id": questID}).Decode(&quest); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quest": quest})
}

// CreateQuest adds a new quest; the creator policy is enforced by middleware
func CreateQuest(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req structs.CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	if req.ContentType == "quiz" && len(req.QuizQuestions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quiz quests need at least one question"})
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	now := time.Now()
	quest := models.Quest{
		ID:            primitive.NewObjectID(),
		Title:         req.Title,
		Description:   req.Description,
		RequiredLevel: req.RequiredLevel,
		ContentType:   req.ContentType,
		ContentURL:    req.ContentURL,
		Difficulty:    difficulty,
		XPReward:      req.XPReward,
		QuizQuestions: req.QuizQuestions,
		CompletedBy:   []primitive.ObjectID{},
		OrderIndex:    req.OrderIndex,
		CreatedBy:     user.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := db.GetCollection("quests").InsertOne(ctx, quest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quest"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Quest created", "quest": quest})
}

// UpdateQuest modifies an existing quest's definition
func UpdateQuest(c *gin.Context) {
	questID, err := primitive.ObjectIDFromHex(c.Param("questId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quest ID"})
		return
	}

	var req structs.UpdateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.RequiredLevel != 0 {
		set["requiredLevel"] = req.RequiredLevel
	}
	if req.ContentType != "" {
		set["contentType"] = req.ContentType
	}
	if req.ContentURL != "" {
		set["contentUrl"] = req.ContentURL
	}
	if req.Difficulty != "" {
		set["difficulty"] = req.Difficulty
	}
	if req.XPReward != 0 {
		set["xpReward"] = req.XPReward
	}
	if req.QuizQuestions != nil {
		set["quizQuestions"] = req.QuizQuestions
	}
	if req.OrderIndex != nil {
		set["orderIndex"] = *req.OrderIndex
	}
	if req.IsLocked != nil {
		set["isLocked"] = *req.IsLocked
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := db.GetCollection("quests").UpdateOne(ctx, bson.M{"_id": questID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quest"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quest updated"})
}

// DeleteQuest removes a quest definition
func DeleteQuest(c *gin.Context) {
	questID, err := primitive.ObjectIDFromHex(c.Param("questId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quest ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := db.GetCollection("quests").DeleteOne(ctx, bson.M{"_id": questID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quest"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quest deleted"})
}

// broadcastProgression pushes level-up and badge events to websocket clients
func broadcastProgression(userID string, res levels.ChangeResult) {
	now := time.Now()
	if res.LeveledUp {
		websocket.BroadcastProgressionEvent(models.ProgressionEvent{
			Type:      "level_up",
			UserID:    userID,
			Level:     res.NewLevel,
			LevelName: res.NewLevelName,
			XPEarned:  res.XPEarned,
			TotalXP:   res.TotalXP,
			Timestamp: now,
		})
	}
	for _, badge := range res.NewBadges {
		websocket.BroadcastProgressionEvent(models.ProgressionEvent{
			Type:      "badge_awarded",
			UserID:    userID,
			BadgeName: badge.Name,
			Timestamp: now,
		})
	}
}

// CompleteQuest awards quest XP and runs the progression state machine.
// The per-user lock makes the duplicate check and the XP award atomic with
// respect to concurrent completions.
func CompleteQuest(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questID, err := primitive.ObjectIDFromHex(c.Param("questId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quest ID"})
		return
	}

	locks := services.GetUserLockService()
	locks.Lock(current.ID.Hex())
	defer locks.Unlock(current.ID.Hex())

	ctx, cancel := dbCtx()
	defer cancel()

	var quest models.Quest
	if err := db.GetCollection("quests").FindOne(ctx, bson.M{"_id": questID}).Decode(&quest); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
		return
	}

	// Re-read under the lock; the context copy may be stale
	var user models.User
	if err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": current.ID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Level < quest.RequiredLevel {
		c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("Level %d required to attempt this quest", quest.RequiredLevel)})
		return
	}
	if user.HasCompletedQuest(questID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quest already completed"})
		return
	}

	now := time.Now()
	user.CompletedQuests = append(user.CompletedQuests, questID)
	user.CurrentQuest = nil
	user.LogActivity(now, 1, quest.XPReward)
	res := levels.ApplyXPChange(&user, quest.XPReward, now)

	if err := saveUser(ctx, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	// Quest stats are best-effort; the user's award already persisted
	db.GetCollection("quests").UpdateOne(ctx, bson.M{"_id": questID},
		bson.M{"$addToSet": bson.M{"completedBy": user.ID}})

	cache.InvalidateLeaderboard()
	broadcastProgression(user.ID.Hex(), res)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Quest completed successfully!",
		"xpEarned":     quest.XPReward,
		"totalXP":      user.XP,
		"currentLevel": user.Level,
		"levelName":    user.CurrentLevelName,
		"leveledUp":    res.LeveledUp,
		"newBadges":    res.NewBadges,
	})
}

// SubmitQuiz grades a quiz submission and awards scaled XP on a pass.
// Completion is idempotent: an already-completed quiz cannot be re-submitted
// for XP, matching the CompleteQuest policy.
func SubmitQuiz(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questID, err := primitive.ObjectIDFromHex(c.Param("questId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quest ID"})
		return
	}

	var req structs.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	locks := services.GetUserLockService()
	locks.Lock(current.ID.Hex())
	defer locks.Unlock(current.ID.Hex())

	ctx, cancel := dbCtx()
	defer cancel()

	var quest models.Quest
	if err := db.GetCollection("quests").FindOne(ctx, bson.M{"_id": questID}).Decode(&quest); err != nil || quest.ContentType != "quiz" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	var user models.User
	if err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": current.ID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Level < quest.RequiredLevel {
		c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("Level %d required to attempt this quest", quest.RequiredLevel)})
		return
	}
	if user.HasCompletedQuest(questID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quest already completed"})
		return
	}

	score := services.GradeQuiz(quest.QuizQuestions, req.Answers)

	if !score.Passed {
		c.JSON(http.StatusOK, gin.H{
			"passed":         false,
			"score":          score.Score,
			"correctCount":   score.CorrectCount,
			"totalQuestions": score.TotalQuestions,
			"message":        "Keep trying! You need 60% to pass.",
			"results":        score.Results,
		})
		return
	}

	xpEarned := services.QuizXPReward(quest.XPReward, score.Score)

	now := time.Now()
	user.CompletedQuests = append(user.CompletedQuests, questID)
	user.CurrentQuest = nil
	user.LogActivity(now, 1, xpEarned)
	res := levels.ApplyXPChange(&user, xpEarned, now)

	if err := saveUser(ctx, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	db.GetCollection("quests").UpdateOne(ctx, bson.M{"_id": questID},
		bson.M{"$addToSet": bson.M{"completedBy": user.ID}})

	cache.InvalidateLeaderboard()
	broadcastProgression(user.ID.Hex(), res)

	c.JSON(http.StatusOK, gin.H{
		"passed":         true,
		"score":          score.Score,
		"correctCount":   score.CorrectCount,
		"totalQuestions": score.TotalQuestions,
		"xpEarned":       xpEarned,
		"totalXP":        user.XP,
		"currentLevel":   user.Level,
		"levelName":      user.CurrentLevelName,
		"leveledUp":      res.LeveledUp,
		"newBadges":      res.NewBadges,
		"results":        score.Results,
	})
}
