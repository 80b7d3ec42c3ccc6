package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	chatdomain "github.com/smallbiznis/supportly/internal/chat/domain"
)

type sendMessageRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

type sendMessageResponse struct {
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	Suggestions    []string  `json:"suggestions"`
	Sender         string    `json:"sender"`
}

type feedbackRequest struct {
	ConversationID string `json:"conversation_id"`
	Satisfaction   int    `json:"satisfaction"`
	Feedback       string `json:"feedback"`
}

type messageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// SendMessage runs one chat turn. An empty body starts a new conversation.
func (s *Server) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.chatSvc.Send(c.Request.Context(), chatdomain.SendRequest{
		Message:        req.Message,
		ConversationID: strings.TrimSpace(req.ConversationID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set("chat_intent", resp.Intent)

	suggestions := resp.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, sendMessageResponse{
		Message:        resp.Message,
		CreatedAt:      resp.CreatedAt,
		MessageID:      resp.MessageID,
		ConversationID: resp.ConversationID,
		Suggestions:    suggestions,
		Sender:         resp.Sender,
	})
}

func (s *Server) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.ConversationID) == "" {
		AbortWithError(c, newValidationError("conversation_id", "required", "conversation_id is required"))
		return
	}

	survey, err := s.chatSvc.LogFeedback(c.Request.Context(), chatdomain.FeedbackRequest{
		ConversationID: strings.TrimSpace(req.ConversationID),
		Satisfaction:   req.Satisfaction,
		Feedback:       strings.TrimSpace(req.Feedback),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": survey})
}

func (s *Server) ListMessages(c *gin.Context) {
	limit, err := parseBoundedInt(c.Query("limit"), 0, 1, 100)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be between 1 and 100"))
		return
	}

	messages, err := s.chatSvc.History(c.Request.Context(), strings.TrimSpace(c.Param("conversationId")), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, messageResponse{
			ID:             m.ID.String(),
			ConversationID: m.ConversationID,
			Sender:         m.Sender,
			Message:        m.MessageText,
			CreatedAt:      m.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
