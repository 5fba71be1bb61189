package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/example/adminshop/pkg/models"
	"github.com/example/adminshop/pkg/repository"
	"github.com/example/adminshop/pkg/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type productRequest struct {
	NameUz        string   `json:"name_uz" binding:"required"`
	NameEn        string   `json:"name_en"`
	NameRu        string   `json:"name_ru"`
	DescriptionUz string   `json:"description_uz"`
	DescriptionEn string   `json:"description_en"`
	DescriptionRu string   `json:"description_ru"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	Size          string   `json:"size"`
	CategoryID    string   `json:"categoryId"`
	Image         string   `json:"image"`
}

func (r *productRequest) toModel(id string) *models.Product {
	return &models.Product{
		ID:            id,
		NameUz:        r.NameUz,
		NameEn:        r.NameEn,
		NameRu:        r.NameRu,
		DescriptionUz: r.DescriptionUz,
		DescriptionEn: r.DescriptionEn,
		DescriptionRu: r.DescriptionRu,
		Price:         *r.Price,
		Size:          r.Size,
		CategoryID:    r.CategoryID,
		Image:         r.Image,
	}
}

// productListResponse is the {items,total} envelope the dashboard consumes.
type productListResponse struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

func (s *Server) listProducts(c *gin.Context) {
	ctx := c.Request.Context()

	filter := store.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("categoryId"),
		Sort:       c.Query("sort"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil && size > 0 {
		filter.PageSize = size
	}

	// Only the unfiltered listing is cached; parameterized queries go to
	// the store directly.
	if filter.IsZero() && s.cache != nil {
		var cached productListResponse
		if err := s.cache.GetList(ctx, repository.ProductsKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	products, total, err := s.store.ListProducts(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	resp := productListResponse{Items: products, Total: total}
	if filter.IsZero() && s.cache != nil {
		if err := s.cache.CacheList(ctx, repository.ProductsKey, resp); err != nil {
			s.logger.Warn("Failed to cache products", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toModel("")
	if err := s.store.CreateProduct(c.Request.Context(), product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	s.invalidate(c, repository.ProductsKey)
	s.audit.Record("create_product", product.ID, map[string]interface{}{
		"name_uz": product.NameUz,
		"price":   product.Price,
	})

	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toModel(c.Param("id"))
	if err := s.store.UpdateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		s.logger.Error("Failed to update product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	s.invalidate(c, repository.ProductsKey)
	s.audit.Record("update_product", product.ID, map[string]interface{}{
		"name_uz": product.NameUz,
		"price":   product.Price,
	})

	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := s.store.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		s.logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	s.invalidate(c, repository.ProductsKey)
	s.audit.Record("delete_product", id, nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
