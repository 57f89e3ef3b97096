package routes

import (
	"devstep/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRouteHandler(ctx *gin.Context) {
	controllers.Register(ctx)
}

func LoginRouteHandler(ctx *gin.Context) {
	controllers.Login(ctx)
}

func GetCurrentUserRouteHandler(ctx *gin.Context) {
	controllers.GetCurrentUser(ctx)
}

func GetAllUsersRouteHandler(ctx *gin.Context) {
	controllers.GetAllUsers(ctx)
}

func GetUserProfileRouteHandler(ctx *gin.Context) {
	controllers.GetUserProfile(ctx)
}

func UpdateProfileRouteHandler(ctx *gin.Context) {
	controllers.UpdateProfile(ctx)
}

func GetDashboardRouteHandler(ctx *gin.Context) {
	controllers.GetDashboard(ctx)
}

func GetLeaderboardRouteHandler(ctx *gin.Context) {
	controllers.GetLeaderboard(ctx)
}
