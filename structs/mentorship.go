package structs

type RespondRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

type EndorseRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Message string `json:"message"`
}

type SessionRequest struct {
	Duration int    `json:"duration" binding:"required,min=1"`
	Topic    string `json:"topic" binding:"required"`
	Notes    string `json:"notes"`
}
