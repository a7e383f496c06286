package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_client/internal/repository"
)

type OrderHandler struct {
	repo repository.DocumentRepository
	log  *logrus.Logger
}

func NewOrderHandler(repo repository.DocumentRepository, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		repo: repo,
		log:  logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/orders/:user", h.ListOrders)
	router.POST("/orders/:user", h.CreateOrder)
}

type OrderItemRequest struct {
	ProductID    string  `json:"productId" binding:"required"`
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	Price        float64 `json:"price" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	CartItems   []OrderItemRequest `json:"cartItems" binding:"required,min=1,dive"`
	TotalAmount float64            `json:"totalAmount" binding:"required,gt=0"`
	Date        string             `json:"date" binding:"required"`
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	user, ok := trimDocumentSuffix(c.Param("user"))
	if !ok {
		h.log.Warnf("Invalid orders path parameter: %s", c.Param("user"))
		ErrorResponse(c, http.StatusBadRequest, "append .json to the request path")
		return
	}

	docs, err := h.repo.List("orders/" + user)
	if err != nil {
		h.log.Errorf("Failed to list orders for user '%s': %v", user, err)
		ErrorResponse(c, http.StatusInternalServerError, "could not list orders")
		return
	}

	h.log.Infof("Listing %d orders for user '%s'", len(docs), user)
	c.JSON(http.StatusOK, docs)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	user, ok := trimDocumentSuffix(c.Param("user"))
	if !ok {
		h.log.Warnf("Invalid orders path parameter: %s", c.Param("user"))
		ErrorResponse(c, http.StatusBadRequest, "append .json to the request path")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create order (user '%s'): %v", user, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := json.Marshal(req)
	if err != nil {
		h.log.Errorf("Failed to marshal order document for user '%s': %v", user, err)
		ErrorResponse(c, http.StatusInternalServerError, "could not store order")
		return
	}

	id, err := h.repo.Save("orders/"+user, doc)
	if err != nil {
		h.log.Errorf("Failed to save order for user '%s': %v", user, err)
		ErrorResponse(c, http.StatusInternalServerError, "could not store order")
		return
	}

	h.log.Infof("Order created for user '%s' with id '%s'", user, id)
	NameResponse(c, http.StatusOK, id)
}
