package controllers

import (
	"net/http"
	"time"

	"devstep/db"
	"devstep/internal/cache"
	"devstep/levels"
	"devstep/middlewares"
	"devstep/models"
	"devstep/services"
	"devstep/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EndorsementBonusXP is the flat bonus credited to an endorsed mentor
const EndorsementBonusXP = 100

// MentorBonusPerLevel is paid to the mentor for each level the mentee gained
const MentorBonusPerLevel = 200

// BecomeMentor flips the caller into mentor status if they are eligible
func BecomeMentor(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !levels.CanMentor(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You must be Level 5 or higher to become a mentor"})
		return
	}

	user.IsMentor = true
	if user.MentorSlots == 0 {
		user.MentorSlots = levels.DefaultMentorSlots
	}

	ctx, cancel := dbCtx()
	defer cancel()

	if err := saveUser(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "You are now a mentor!",
		"mentorSlots": user.MentorSlots,
	})
}

// RequestMentorship creates a pending mentor -> mentee edge
func RequestMentorship(c *gin.Context) {
	mentee, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mentorID, err := primitive.ObjectIDFromHex(c.Param("mentorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentor ID"})
		return
	}
	if mentorID == mentee.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot mentor yourself"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var mentor models.User
	if err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": mentorID}).Decode(&mentor); err != nil || !mentor.IsMentor {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		return
	}

	if !levels.HasFreeSlot(&mentor) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentor has reached maximum mentee capacity"})
		return
	}

	// A pending or accepted edge between the pair blocks a new request
	count, err := db.GetCollection("mentorships").CountDocuments(ctx, bson.M{
		"mentor": mentorID,
		"mentee": mentee.ID,
		"status": bson.M{"$in": []string{models.MentorshipPending, models.MentorshipAccepted}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentorship request already exists"})
		return
	}

	now := time.Now()
	mentorship := models.Mentorship{
		ID:                 primitive.NewObjectID(),
		Mentor:             mentorID,
		Mentee:             mentee.ID,
		Status:             models.MentorshipPending,
		MenteeLevelAtStart: mentee.Level,
		MenteeLevelCurrent: mentee.Level,
		Sessions:           []models.Session{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := db.GetCollection("mentorships").InsertOne(ctx, mentorship); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mentorship request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Mentorship request sent!",
		"mentorship": mentorship,
	})
}

// RespondToRequest lets the mentor accept or reject a pending request.
// Accepting mutates both user records; if the second write fails the first
// is compensated so the edge stays pending.
func RespondToRequest(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mentorshipID, err := primitive.ObjectIDFromHex(c.Param("mentorshipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentorship ID"})
		return
	}

	var req structs.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	mentorshipsColl := db.GetCollection("mentorships")
	usersColl := db.GetCollection("users")

	var mentorship models.Mentorship
	if err := mentorshipsColl.FindOne(ctx, bson.M{"_id": mentorshipID}).Decode(&mentorship); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if mentorship.Mentor != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the mentor may respond"})
		return
	}
	if mentorship.Status != models.MentorshipPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request already handled"})
		return
	}

	if req.Action == "reject" {
		_, err := mentorshipsColl.UpdateOne(ctx, bson.M{"_id": mentorshipID},
			bson.M{"$set": bson.M{"status": models.MentorshipRejected, "updatedAt": time.Now()}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Mentorship request rejected"})
		return
	}

	// Accept: capacity may have filled since the request was made
	if !levels.HasFreeSlot(current) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentor has reached maximum mentee capacity"})
		return
	}

	_, err = usersColl.UpdateOne(ctx, bson.M{"_id": mentorship.Mentor},
		bson.M{"$addToSet": bson.M{"activeMentees": mentorship.Mentee}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept mentorship"})
		return
	}

	_, err = usersColl.UpdateOne(ctx, bson.M{"_id": mentorship.Mentee},
		bson.M{"$set": bson.M{"myMentor": mentorship.Mentor}})
	if err != nil {
		// Roll the mentor side back so the edge stays pending
		usersColl.UpdateOne(ctx, bson.M{"_id": mentorship.Mentor},
			bson.M{"$pull": bson.M{"activeMentees": mentorship.Mentee}})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept mentorship"})
		return
	}

	if _, err := mentorshipsColl.UpdateOne(ctx, bson.M{"_id": mentorshipID},
		bson.M{"$set": bson.M{"status": models.MentorshipAccepted, "updatedAt": time.Now()}}); err != nil {
		usersColl.UpdateOne(ctx, bson.M{"_id": mentorship.Mentor},
			bson.M{"$pull": bson.M{"activeMentees": mentorship.Mentee}})
		usersColl.UpdateOne(ctx, bson.M{"_id": mentorship.Mentee},
			bson.M{"$unset": bson.M{"myMentor": ""}})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept mentorship"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentorship accepted!"})
}

// GetAvailableMentors lists mentors within the mentee's messaging band that
// still have free slots
func GetAvailableMentors(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := db.GetCollection("users").Find(ctx, bson.M{
		"isMentor": true,
		"level":    bson.M{"$gte": user.Level, "$lte": user.Level + levels.MessageLevelBand},
		"_id":      bson.M{"$ne": user.ID},
		"$expr":    bson.M{"$lt": bson.A{bson.M{"$size": "$activeMentees"}, "$mentorSlots"}},
	}, options.Find().SetLimit(20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mentors"})
		return
	}
	defer cursor.Close(ctx)

	var mentors []models.User
	if err := cursor.All(ctx, &mentors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode mentors"})
		return
	}

	out := make([]gin.H, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, gin.H{
			"id":             m.ID,
			"name":           m.Name,
			"level":          m.Level,
			"levelName":      m.CurrentLevelName,
			"mentorPoints":   m.MentorPoints,
			"endorsements":   m.Endorsements,
			"availableSlots": m.MentorSlots - len(m.ActiveMentees),
			"totalSlots":     m.MentorSlots,
		})
	}

	c.JSON(http.StatusOK, gin.H{"mentors": out})
}

// GetMentorships lists every mentorship the caller participates in
func GetMentorships(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := db.GetCollection("mentorships").Find(ctx, bson.M{
		"$or": []bson.M{{"mentor": user.ID}, {"mentee": user.ID}},
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mentorships"})
		return
	}
	defer cursor.Close(ctx)

	var mentorships []models.Mentorship
	if err := cursor.All(ctx, &mentorships); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode mentorships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentorships": mentorships})
}

// GetMentorshipDetails returns one mentorship record
func GetMentorshipDetails(c *gin.Context) {
	mentorshipID, err := primitive.ObjectIDFromHex(c.Param("mentorshipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentorship ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var mentorship models.Mentorship
	if err := db.GetCollection("mentorships").FindOne(ctx, bson.M{"_id": mentorshipID}).Decode(&mentorship); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentorship not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentorship": mentorship})
}

// AddSession appends a session log entry to a mentorship
func AddSession(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mentorshipID, err := primitive.ObjectIDFromHex(c.Param("mentorshipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentorship ID"})
		return
	}

	var req structs.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var mentorship models.Mentorship
	if err := db.GetCollection("mentorships").FindOne(ctx, bson.M{"_id": mentorshipID}).Decode(&mentorship); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentorship not found"})
		return
	}
	if mentorship.Mentor != current.ID && mentorship.Mentee != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this mentorship"})
		return
	}

	now := time.Now()
	session := models.Session{
		Date:     now,
		Duration: req.Duration,
		Topic:    req.Topic,
		Notes:    req.Notes,
	}

	_, err = db.GetCollection("mentorships").UpdateOne(ctx, bson.M{"_id": mentorshipID}, bson.M{
		"$push": bson.M{"sessions": session},
		"$inc":  bson.M{"messageCount": 1},
		"$set":  bson.M{"lastMessageAt": now, "updatedAt": now},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Session recorded successfully!"})
}

// EndorseMentor lets the mentee endorse their mentor exactly once, crediting
// the endorsement bonus through the progression state machine
func EndorseMentor(c *gin.Context) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mentorshipID, err := primitive.ObjectIDFromHex(c.Param("mentorshipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentorship ID"})
		return
	}

	var req structs.EndorseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var mentorship models.Mentorship
	if err := db.GetCollection("mentorships").FindOne(ctx, bson.M{"_id": mentorshipID}).Decode(&mentorship); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentorship not found"})
		return
	}

	if mentorship.Mentee != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the mentee can endorse"})
		return
	}
	if !mentorship.CanEndorse() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already endorsed"})
		return
	}

	// Atomically flip the endorsement flag; a lost race means someone beat us
	result, err := db.GetCollection("mentorships").UpdateOne(ctx,
		bson.M{"_id": mentorshipID, "isEndorsed": false},
		bson.M{"$set": bson.M{
			"isEndorsed":         true,
			"rating":             req.Rating,
			"endorsementMessage": req.Message,
			"updatedAt":          time.Now(),
		}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to endorse"})
		return
	}
	if result.ModifiedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already endorsed"})
		return
	}

	locks := services.GetUserLockService()
	locks.Lock(mentorship.Mentor.Hex())
	defer locks.Unlock(mentorship.Mentor.Hex())

	var mentor models.User
	if err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": mentorship.Mentor}).Decode(&mentor); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		return
	}

	mentor.Endorsements++
	res := levels.ApplyXPChange(&mentor, EndorsementBonusXP, time.Now())

	if err := saveUser(ctx, &mentor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to credit endorsement"})
		return
	}

	cache.InvalidateLeaderboard()
	broadcastProgression(mentor.ID.Hex(), res)

	c.JSON(http.StatusOK, gin.H{"message": "Mentor endorsed successfully!"})
}

// awardMentorBonus pays the mentor for levels the mentee gained during the
// mentorship, crediting both xp and mentorPoints
func awardMentorBonus(mentorship *models.Mentorship, menteeLevel int) {
	levelGain := menteeLevel - mentorship.MenteeLevelAtStart
	if levelGain <= 0 {
		return
	}
	bonus := levelGain * MentorBonusPerLevel

	locks := services.GetUserLockService()
	locks.Lock(mentorship.Mentor.Hex())
	defer locks.Unlock(mentorship.Mentor.Hex())

	ctx, cancel := dbCtx()
	defer cancel()

	var mentor models.User
	if err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": mentorship.Mentor}).Decode(&mentor); err != nil {
		return
	}

	mentor.MentorPoints += bonus
	res := levels.ApplyXPChange(&mentor, bonus, time.Now())
	if err := saveUser(ctx, &mentor); err != nil {
		return
	}

	cache.InvalidateLeaderboard()
	broadcastProgression(mentor.ID.Hex(), res)
}

// RemoveMentee detaches the pair and marks the mentorship completed
func RemoveMentee(c *gin.Context) {
	completeMentorshipEdge(c, false)
}

// CompleteMentorship finishes the mentorship and pays the mentor growth bonus
func CompleteMentorship(c *gin.Context) {
	completeMentorshipEdge(c, true)
}

func completeMentorshipEdge(c *gin.Context, awardBonus bool) {
	current, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mentorshipID, err := primitive.ObjectIDFromHex(c.Param("mentorshipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentorship ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var mentorship models.Mentorship
	if err := db.GetCollection("mentorships").FindOne(ctx, bson.M{"_id": mentorshipID}).Decode(&mentorship); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentorship not found"})
		return
	}

	if mentorship.Mentor != current.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the mentor may do this"})
		return
	}
	if !mentorship.CanComplete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only an accepted mentorship can be completed"})
		return
	}

	usersColl := db.GetCollection("users")

	var mentee models.User
	menteeFound := usersColl.FindOne(ctx, bson.M{"_id": mentorship.Mentee}).Decode(&mentee) == nil

	usersColl.UpdateOne(ctx, bson.M{"_id": mentorship.Mentor},
		bson.M{"$pull": bson.M{"activeMentees": mentorship.Mentee}})
	usersColl.UpdateOne(ctx, bson.M{"_id": mentorship.Mentee, "myMentor": mentorship.Mentor},
		bson.M{"$unset": bson.M{"myMentor": ""}})

	now := time.Now()
	set := bson.M{
		"status":      models.MentorshipCompleted,
		"completedAt": now,
		"updatedAt":   now,
	}
	if menteeFound {
		set["menteeLevelCurrent"] = mentee.Level
	}
	if _, err := db.GetCollection("mentorships").UpdateOne(ctx, bson.M{"_id": mentorshipID},
		bson.M{"$set": set}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete mentorship"})
		return
	}

	if awardBonus && menteeFound {
		awardMentorBonus(&mentorship, mentee.Level)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentorship completed!"})
}
