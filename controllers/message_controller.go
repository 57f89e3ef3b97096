package controllers

import (
	"net/http"
	"time"

	"devstep/db"
	"devstep/internal/cache"
	"devstep/levels"
	"devstep/middlewares"
	"devstep/models"
	"devstep/structs"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// isMentorshipPair reports whether sender and receiver are linked by an
// active mentorship in either direction
func isMentorshipPair(sender *models.User, receiverID primitive.ObjectID) bool {
	if sender.MyMentor != nil && *sender.MyMentor == receiverID {
		return true
	}
	return sender.HasMentee(receiverID)
}

// creditDebitQuery builds the atomic one-credit debit. The filter demands a
// positive balance and the update decrements in place, so a concurrent XP
// award on the same user document is never overwritten by a stale snapshot.
func creditDebitQuery(userID primitive.ObjectID, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"_id": userID, "messageCredits": bson.M{"$gte": 1}}
	update := bson.M{
		"$inc": bson.M{"messageCredits": -1},
		"$set": bson.M{"updatedAt": now},
	}
	return filter, update
}

// SendMessage applies the messaging gate, debits a credit for non-mentorship
// messages, and stores the message
func SendMessage(c *gin.Context) {
	sender, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req structs.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receiver ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	var receiver models.User
	if err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": receiverID}).Decode(&receiver); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !levels.CanMessage(sender, &receiver) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You can only message users up to 2 levels above you, or your mentor/mentees",
		})
		return
	}

	mentorshipMessage := isMentorshipPair(sender, receiverID)

	limit := cache.DefaultMessageRateLimit()
	allowed, err := cache.CheckMessageRateLimit(sender.ID.Hex(), limit)
	if err == nil && !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages, slow down"})
		return
	}

	usersColl := db.GetCollection("users")
	now := time.Now()

	// Debit before inserting so the balance check and the decrement are one
	// atomic operation against the live document
	creditsUsed := 0
	if !mentorshipMessage {
		filter, update := creditDebitQuery(sender.ID, now)
		result, err := usersColl.UpdateOne(ctx, filter, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to debit credits"})
			return
		}
		if result.ModifiedCount == 0 {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient message credits. Complete quests to earn more!",
			})
			return
		}
		creditsUsed = 1
		sender.MessageCredits--
	}

	message := models.Message{
		ID:                  primitive.NewObjectID(),
		Sender:              sender.ID,
		Receiver:            receiverID,
		Content:             req.Content,
		AttachmentURL:       req.AttachmentURL,
		IsMentorshipMessage: mentorshipMessage,
		CreditsUsed:         creditsUsed,
		CreatedAt:           now,
	}

	if _, err := db.GetCollection("messages").InsertOne(ctx, message); err != nil {
		if creditsUsed > 0 {
			usersColl.UpdateOne(ctx, bson.M{"_id": sender.ID},
				bson.M{"$inc": bson.M{"messageCredits": 1}})
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	cache.RecordMessage(sender.ID.Hex(), limit)

	c.JSON(http.StatusCreated, gin.H{
		"message":          "Message sent successfully",
		"messageData":      message,
		"creditsRemaining": sender.MessageCredits,
	})
}

// GetMessages lists the caller's most recent messages
func GetMessages(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := db.GetCollection("messages").Find(ctx, bson.M{
		"$or": []bson.M{{"sender": user.ID}, {"receiver": user.ID}},
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConversation returns the thread with one user and marks their unread
// messages to the caller as read
func GetConversation(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	otherID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	messagesColl := db.GetCollection("messages")

	cursor, err := messagesColl.Find(ctx, bson.M{
		"$or": []bson.M{
			{"sender": user.ID, "receiver": otherID},
			{"sender": otherID, "receiver": user.ID},
		},
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode conversation"})
		return
	}

	now := time.Now()
	messagesColl.UpdateMany(ctx,
		bson.M{"sender": otherID, "receiver": user.ID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now}})

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConversations summarizes the caller's threads with last message and
// unread counts
func GetConversations(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	cursor, err := db.GetCollection("messages").Find(ctx, bson.M{
		"$or": []bson.M{{"sender": user.ID}, {"receiver": user.ID}},
	}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode conversations"})
		return
	}

	type conversation struct {
		PartnerID   primitive.ObjectID `json:"partnerId"`
		LastMessage models.Message     `json:"lastMessage"`
		UnreadCount int                `json:"unreadCount"`
	}

	order := []primitive.ObjectID{}
	byPartner := map[primitive.ObjectID]*conversation{}
	for _, msg := range messages {
		partnerID := msg.Sender
		if partnerID == user.ID {
			partnerID = msg.Receiver
		}
		conv, exists := byPartner[partnerID]
		if !exists {
			conv = &conversation{PartnerID: partnerID, LastMessage: msg}
			byPartner[partnerID] = conv
			order = append(order, partnerID)
		}
		if msg.Receiver == user.ID && !msg.IsRead {
			conv.UnreadCount++
		}
	}

	conversations := make([]conversation, 0, len(order))
	for _, id := range order {
		conversations = append(conversations, *byPartner[id])
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// MarkAsRead flags one message as read
func MarkAsRead(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID, err := primitive.ObjectIDFromHex(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := db.GetCollection("messages").UpdateOne(ctx,
		bson.M{"_id": messageID, "receiver": user.ID},
		bson.M{"$set": bson.M{"isRead": true, "readAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

// DeleteMessage removes a message the caller sent or received
func DeleteMessage(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	messageID, err := primitive.ObjectIDFromHex(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	ctx, cancel := dbCtx()
	defer cancel()

	result, err := db.GetCollection("messages").DeleteOne(ctx, bson.M{
		"_id": messageID,
		"$or": []bson.M{{"sender": user.ID}, {"receiver": user.ID}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully!"})
}
