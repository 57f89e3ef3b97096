package routes

import (
	"devstep/controllers"

	"github.com/gin-gonic/gin"
)

func GetLevelsRouteHandler(c *gin.Context) {
	controllers.GetLevels(c)
}

func GetLevelRouteHandler(c *gin.Context) {
	controllers.GetLevel(c)
}

func GetLevelProgressRouteHandler(c *gin.Context) {
	controllers.GetLevelProgress(c)
}
