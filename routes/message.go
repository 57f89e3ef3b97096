package routes

import (
	"devstep/controllers"

	"github.com/gin-gonic/gin"
)

func SendMessageRouteHandler(c *gin.Context) {
	controllers.SendMessage(c)
}

func GetMessagesRouteHandler(c *gin.Context) {
	controllers.GetMessages(c)
}

func GetConversationRouteHandler(c *gin.Context) {
	controllers.GetConversation(c)
}

func GetConversationsRouteHandler(c *gin.Context) {
	controllers.GetConversations(c)
}

func MarkAsReadRouteHandler(c *gin.Context) {
	controllers.MarkAsRead(c)
}

func DeleteMessageRouteHandler(c *gin.Context) {
	controllers.DeleteMessage(c)
}
