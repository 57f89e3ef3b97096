package routes

import (
	"devstep/controllers"

	"github.com/gin-gonic/gin"
)

func GetQuestsRouteHandler(c *gin.Context) {
	controllers.GetQuests(c)
}

func GetQuestByIDRouteHandler(c *gin.Context) {
	controllers.GetQuestByID(c)
}

func CreateQuestRouteHandler(c *gin.Context) {
	controllers.CreateQuest(c)
}

func UpdateQuestRouteHandler(c *gin.Context) {
	controllers.UpdateQuest(c)
}

func DeleteQuestRouteHandler(c *gin.Context) {
	controllers.DeleteQuest(c)
}

func CompleteQuestRouteHandler(c *gin.Context) {
	controllers.CompleteQuest(c)
}

func SubmitQuizRouteHandler(c *gin.Context) {
	controllers.SubmitQuiz(c)
}
