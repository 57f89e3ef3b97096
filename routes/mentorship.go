package routes

import (
	"devstep/controllers"

	"github.com/gin-gonic/gin"
)

func BecomeMentorRouteHandler(c *gin.Context) {
	controllers.BecomeMentor(c)
}

func RequestMentorshipRouteHandler(c *gin.Context) {
	controllers.RequestMentorship(c)
}

func RespondToRequestRouteHandler(c *gin.Context) {
	controllers.RespondToRequest(c)
}

func GetAvailableMentorsRouteHandler(c *gin.Context) {
	controllers.GetAvailableMentors(c)
}

func GetMentorshipsRouteHandler(c *gin.Context) {
	controllers.GetMentorships(c)
}

func GetMentorshipDetailsRouteHandler(c *gin.Context) {
	controllers.GetMentorshipDetails(c)
}

func AddSessionRouteHandler(c *gin.Context) {
	controllers.AddSession(c)
}

func EndorseMentorRouteHandler(c *gin.Context) {
	controllers.EndorseMentor(c)
}

func RemoveMenteeRouteHandler(c *gin.Context) {
	controllers.RemoveMentee(c)
}

func CompleteMentorshipRouteHandler(c *gin.Context) {
	controllers.CompleteMentorship(c)
}
