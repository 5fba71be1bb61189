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

type orderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int32   `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"gte=0"`
}

type orderRequest struct {
	FullName   string             `json:"fullName" binding:"required"`
	Phone      string             `json:"phone" binding:"required"`
	Address    string             `json:"address"`
	Email      string             `json:"email"`
	Oferta     bool               `json:"oferta"`
	TotalPrice float64            `json:"totalPrice"`
	Status     models.OrderStatus `json:"status"`
	Items      []orderItemRequest `json:"items" binding:"dive"`
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (s *Server) listOrders(c *gin.Context) {
	ctx := c.Request.Context()

	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if status == "" && s.cache != nil {
		var cached []models.Order
		if err := s.cache.GetList(ctx, repository.OrdersKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	orders, err := s.store.ListOrders(ctx, status)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	if status == "" && s.cache != nil {
		if err := s.cache.CacheList(ctx, repository.OrdersKey, orders); err != nil {
			s.logger.Warn("Failed to cache orders", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, orders)
}

func (s *Server) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusNew
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	// The total is the sum over items only when items are present; a bare
	// total is stored as given and never reconciled later.
	total := req.TotalPrice
	if len(items) > 0 {
		total = 0
		for _, item := range items {
			total += float64(item.Quantity) * item.Price
		}
	}

	order := &models.Order{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Address:    req.Address,
		Email:      req.Email,
		Oferta:     req.Oferta,
		TotalPrice: total,
		Status:     status,
		Items:      items,
	}
	if err := s.store.CreateOrder(c.Request.Context(), order); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	s.invalidate(c, repository.OrdersKey)
	s.audit.Record("create_order", order.ID, map[string]interface{}{
		"full_name":   order.FullName,
		"total_price": order.TotalPrice,
	})

	c.JSON(http.StatusCreated, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	id := c.Param("id")
	order, err := s.store.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		s.logger.Error("Failed to update order status", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	s.invalidate(c, repository.OrdersKey)
	s.audit.Record("update_order_status", id, map[string]interface{}{"status": string(req.Status)})

	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id := c.Param("id")

	if err := s.store.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		s.logger.Error("Failed to delete order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}

	s.invalidate(c, repository.OrdersKey)
	s.audit.Record("delete_order", id, nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
