package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"devstep/db"
	"devstep/internal/cache"
	"devstep/levels"
	"devstep/middlewares"
	"devstep/models"
	"devstep/structs"
	"devstep/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WelcomeBonusXP is seeded into every new account
const WelcomeBonusXP = 100

// DefaultMessageCredits is the starting allowance for non-mentorship messages
const DefaultMessageCredits = 10

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// saveUser replaces the stored user document with the mutated one
func saveUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := db.GetCollection("users").ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

func userSummary(user *models.User, token string) gin.H {
	return gin.H{
		"id":               user.ID,
		"name":             user.Name,
		"email":            user.Email,
		"level":            user.Level,
		"xp":               user.XP,
		"currentLevelName": user.CurrentLevelName,
		"isMentor":         user.IsMentor,
		"canMentor":        user.CanMentor,
		"messageCredits":   user.MessageCredits,
		"streakCount":      user.StreakCount,
		"longestStreak":    user.LongestStreak,
		"badges":           user.Badges,
		"token":            token,
	}
}

// Register creates a new account seeded with the welcome XP bonus
func Register(c *gin.Context) {
	var req structs.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	usersColl := db.GetCollection("users")

	var existing models.User
	err := usersColl.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:               primitive.NewObjectID(),
		Name:             req.Name,
		Email:            req.Email,
		Password:         hash,
		Role:             "user",
		Level:            1,
		CurrentLevelName: levels.Table[0].Name,
		CompletedQuests:  []primitive.ObjectID{},
		ActiveMentees:    []primitive.ObjectID{},
		Badges:           []models.Badge{},
		Artifacts:        []models.Artifact{},
		ActivityLog:      []models.ActivityEntry{},
		MessageCredits:   DefaultMessageCredits,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	levels.ApplyXPChange(&user, WelcomeBonusXP, now)

	if _, err := usersColl.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, userSummary(&user, token))
}

// Login verifies credentials, updates the login streak, and issues a token
func Login(c *gin.Context) {
	var req structs.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	err := db.GetCollection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	user.UpdateStreak(time.Now())
	if err := saveUser(ctx, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, userSummary(&user, token))
}

// GetCurrentUser returns the authenticated user's full record
func GetCurrentUser(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserProfile returns another user's public record
func GetUserProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var user models.User
	if err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetAllUsers searches users by name or email for the messaging UI
func GetAllUsers(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filter := bson.M{"_id": bson.M{"$ne": current.ID}}
	if search := c.Query("search"); search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"email": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := db.GetCollection("users").Find(ctx, filter, options.Find().SetLimit(20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// profileChanges maps the provided profile fields to a targeted update. Only
// the fields the caller sent are touched, so a concurrent XP award on the
// same document is never clobbered by a stale snapshot.
func profileChanges(req *structs.UpdateProfileRequest) bson.M {
	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.GithubProfile != "" {
		set["githubProfile"] = req.GithubProfile
	}
	if req.LinkedInProfile != "" {
		set["linkedInProfile"] = req.LinkedInProfile
	}
	if req.PortfolioURL != "" {
		set["portfolioUrl"] = req.PortfolioURL
	}
	return set
}

// UpdateProfile updates the caller's name, links, and optionally password
func UpdateProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req structs.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	set := profileChanges(&req)
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
			return
		}
		set["password"] = hash
	}
	set["updatedAt"] = time.Now()

	ctx, cancel := dbCtx()
	defer cancel()

	if _, err := db.GetCollection("users").UpdateOne(ctx,
		bson.M{"_id": user.ID}, bson.M{"$set": set}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, userSummary(user, token))
}

// GetDashboard returns the caller's progression summary
func GetDashboard(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"name":                user.Name,
			"email":               user.Email,
			"level":               user.Level,
			"levelName":           user.CurrentLevelName,
			"xp":                  user.XP,
			"progressToNextLevel": levels.Progress(user.Level, user.XP),
			"xpNeeded":            levels.XPToNext(user.Level, user.XP),
			"streakCount":         user.StreakCount,
			"longestStreak":       user.LongestStreak,
			"badges":              user.Badges,
			"artifacts":           user.Artifacts,
			"activityLog":         user.ActivityLog,
			"completedQuests":     len(user.CompletedQuests),
			"isMentor":            user.IsMentor,
			"canMentor":           user.CanMentor,
			"mentorPoints":        user.MentorPoints,
			"activeMentees":       user.ActiveMentees,
			"myMentor":            user.MyMentor,
			"messageCredits":      user.MessageCredits,
		},
	})
}

// LeaderboardEntry is one row of the XP leaderboard
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	LevelName  string `json:"levelName"`
	XP         int    `json:"xp"`
	BadgeCount int    `json:"badgeCount"`
	Streak     int    `json:"streak"`
}

// GetLeaderboard returns the top users by XP, served from cache when warm
func GetLeaderboard(c *gin.Context) {
	if cached := cache.GetLeaderboard(); cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	limit := int64(50)

	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := db.GetCollection("users").Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "xp", Value: -1}, {Key: "level", Value: -1}}).SetLimit(limit),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode leaderboard data"})
		return
	}

	leaderboard := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		name := user.Name
		if name == "" {
			name = utils.ExtractNameFromEmail(user.Email)
		}
		leaderboard = append(leaderboard, LeaderboardEntry{
			Rank:       i + 1,
			Name:       name,
			Level:      user.Level,
			LevelName:  user.CurrentLevelName,
			XP:         user.XP,
			BadgeCount: len(user.Badges),
			Streak:     user.StreakCount,
		})
	}

	payload := gin.H{"leaderboard": leaderboard}
	if raw, err := json.Marshal(payload); err == nil {
		cache.SetLeaderboard(string(raw))
	}

	c.JSON(http.StatusOK, payload)
}
