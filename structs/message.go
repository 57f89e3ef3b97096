package structs

type SendMessageRequest struct {
	ReceiverID    string `json:"receiverId" binding:"required"`
	Content       string `json:"content" binding:"required"`
	AttachmentURL string `json:"attachmentUrl"`
}
