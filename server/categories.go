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

type categoryRequest struct {
	NameUz string `json:"name_uz" binding:"required"`
	NameEn string `json:"name_en"`
	NameRu string `json:"name_ru"`
}

func (s *Server) listCategories(c *gin.Context) {
	ctx := c.Request.Context()

	if s.cache != nil {
		var cached []models.Category
		if err := s.cache.GetList(ctx, repository.CategoriesKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	if s.cache != nil {
		if err := s.cache.CacheList(ctx, repository.CategoriesKey, categories); err != nil {
			s.logger.Warn("Failed to cache categories", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{
		NameUz: req.NameUz,
		NameEn: req.NameEn,
		NameRu: req.NameRu,
	}
	if err := s.store.CreateCategory(c.Request.Context(), category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create category"})
		return
	}

	s.invalidate(c, repository.CategoriesKey)
	s.audit.Record("create_category", category.ID, map[string]interface{}{"name_uz": category.NameUz})

	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{
		ID:     c.Param("id"),
		NameUz: req.NameUz,
		NameEn: req.NameEn,
		NameRu: req.NameRu,
	}
	if err := s.store.UpdateCategory(c.Request.Context(), category); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		s.logger.Error("Failed to update category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update category"})
		return
	}

	s.invalidate(c, repository.CategoriesKey)
	s.audit.Record("update_category", category.ID, map[string]interface{}{"name_uz": category.NameUz})

	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id := c.Param("id")

	if err := s.store.DeleteCategory(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrCategoryInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		default:
			s.logger.Error("Failed to delete category", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		}
		return
	}

	s.invalidate(c, repository.CategoriesKey)
	s.audit.Record("delete_category", id, nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
