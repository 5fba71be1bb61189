package server

import (
	"errors"
	"net/http"

	"github.com/example/adminshop/pkg/models"
	"github.com/example/adminshop/pkg/repository"
	"github.com/example/adminshop/pkg/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type messageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

func (s *Server) listMessages(c *gin.Context) {
	ctx := c.Request.Context()

	if s.cache != nil {
		var cached []models.ContactMessage
		if err := s.cache.GetList(ctx, repository.MessagesKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	messages, err := s.store.ListMessages(ctx)
	if err != nil {
		s.logger.Error("Failed to list messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}

	if s.cache != nil {
		if err := s.cache.CacheList(ctx, repository.MessagesKey, messages); err != nil {
			s.logger.Warn("Failed to cache messages", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, messages)
}

func (s *Server) createMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := s.store.CreateMessage(c.Request.Context(), msg); err != nil {
		s.logger.Error("Failed to create message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create message"})
		return
	}

	s.invalidate(c, repository.MessagesKey)
	s.audit.Record("create_message", msg.ID, map[string]interface{}{"email": msg.Email})

	c.JSON(http.StatusCreated, msg)
}

func (s *Server) markMessageRead(c *gin.Context) {
	id := c.Param("id")

	msg, changed, err := s.store.MarkMessageRead(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		s.logger.Error("Failed to mark message as read", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark message as read"})
		return
	}

	// Re-reading an already-read message mutates nothing, so there is
	// nothing to invalidate or audit.
	if changed {
		s.invalidate(c, repository.MessagesKey)
		s.audit.Record("read_message", id, nil)
	}

	c.JSON(http.StatusOK, msg)
}

func (s *Server) deleteMessage(c *gin.Context) {
	id := c.Param("id")

	if err := s.store.DeleteMessage(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		s.logger.Error("Failed to delete message", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}

	s.invalidate(c, repository.MessagesKey)
	s.audit.Record("delete_message", id, nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
