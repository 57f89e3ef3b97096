package main

import (
	"log"
	"strconv"

	"devstep/config"
	"devstep/db"
	"devstep/internal/cache"
	"devstep/middlewares"
	"devstep/routes"
	"devstep/utils"
	"devstep/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTConfig(cfg.JWT.Secret, cfg.JWT.ExpiryDays)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := db.EnsureIndexes(); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Redis is optional; the leaderboard cache and message rate limit
	// degrade to database-only behavior without it
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
	}

	if cfg.Seed {
		utils.SeedQuests()
		utils.PopulateTestUsers()
	}

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CorsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes
	router.POST("/users/register", routes.RegisterRouteHandler)
	router.POST("/users/login", routes.LoginRouteHandler)

	router.GET("/levels", routes.GetLevelsRouteHandler)
	router.GET("/levels/progress/:level/:xp", routes.GetLevelProgressRouteHandler)
	router.GET("/levels/:levelNumber", routes.GetLevelRouteHandler)

	router.GET("/quests", routes.GetQuestsRouteHandler)
	router.GET("/quests/:questId", routes.GetQuestByIDRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/users/me", routes.GetCurrentUserRouteHandler)
		auth.GET("/users/all", routes.GetAllUsersRouteHandler)
		auth.GET("/users/profile/:userId", routes.GetUserProfileRouteHandler)
		auth.PUT("/users/profile", routes.UpdateProfileRouteHandler)
		auth.GET("/users/dashboard", routes.GetDashboardRouteHandler)
		auth.GET("/users/leaderboard", routes.GetLeaderboardRouteHandler)

		auth.POST("/quests/:questId/complete", routes.CompleteQuestRouteHandler)
		auth.POST("/quests/:questId/submit-quiz", routes.SubmitQuizRouteHandler)

		auth.POST("/mentorship/become-mentor", routes.BecomeMentorRouteHandler)
		auth.GET("/mentorship/available-mentors", routes.GetAvailableMentorsRouteHandler)
		auth.GET("/mentorship", routes.GetMentorshipsRouteHandler)
		auth.POST("/mentorship/request/:mentorId", routes.RequestMentorshipRouteHandler)
		auth.PUT("/mentorship/:mentorshipId/respond", routes.RespondToRequestRouteHandler)
		auth.GET("/mentorship/:mentorshipId", routes.GetMentorshipDetailsRouteHandler)
		auth.POST("/mentorship/:mentorshipId/session", routes.AddSessionRouteHandler)
		auth.POST("/mentorship/:mentorshipId/endorse", routes.EndorseMentorRouteHandler)
		auth.DELETE("/mentorship/:mentorshipId/remove-mentee", routes.RemoveMenteeRouteHandler)
		auth.POST("/mentorship/:mentorshipId/complete", routes.CompleteMentorshipRouteHandler)

		auth.POST("/messages/send", routes.SendMessageRouteHandler)
		auth.GET("/messages", routes.GetMessagesRouteHandler)
		auth.GET("/messages/conversations", routes.GetConversationsRouteHandler)
		auth.GET("/messages/conversation/:userId", routes.GetConversationRouteHandler)
		auth.PUT("/messages/:messageId/read", routes.MarkAsReadRouteHandler)
		auth.DELETE("/messages/:messageId", routes.DeleteMessageRouteHandler)
	}

	// Quest authoring is gated by the creator policy
	authoring := router.Group("/")
	authoring.Use(middlewares.AuthMiddleware(), middlewares.QuestCreatorMiddleware())
	{
		authoring.POST("/quests", routes.CreateQuestRouteHandler)
		authoring.PUT("/quests/:questId", routes.UpdateQuestRouteHandler)
		authoring.DELETE("/quests/:questId", routes.DeleteQuestRouteHandler)
	}

	// WebSocket progression events (token validated in the handler, since
	// browsers cannot set headers on upgrade requests)
	router.GET("/ws/progression", websocket.ProgressionWebSocketHandler)

	return router
}
