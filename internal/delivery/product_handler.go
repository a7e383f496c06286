package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_client/internal/repository"
)

const productsCollection = "products"

type ProductHandler struct {
	repo repository.DocumentRepository
	log  *logrus.Logger
}

func NewProductHandler(repo repository.DocumentRepository, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		repo: repo,
		log:  logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/products.json", h.ListProducts)
	router.POST("/products.json", h.CreateProduct)
	router.PATCH("/products/:id", h.UpdateProduct)
}

type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required,min=5"`
	ImageURL    string  `json:"imageUrl" binding:"required,url"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	OwnerID     string  `json:"ownerId"`
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	docs, err := h.repo.List(productsCollection)
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "could not list products")
		return
	}

	h.log.Infof("Listing %d products", len(docs))
	c.JSON(http.StatusOK, docs)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := json.Marshal(req)
	if err != nil {
		h.log.Errorf("Failed to marshal product document '%s': %v", req.Title, err)
		ErrorResponse(c, http.StatusInternalServerError, "could not store product")
		return
	}

	id, err := h.repo.Save(productsCollection, doc)
	if err != nil {
		h.log.Errorf("Failed to save product '%s': %v", req.Title, err)
		ErrorResponse(c, http.StatusInternalServerError, "could not store product")
		return
	}

	h.log.Infof("Product created: '%s' with id '%s'", req.Title, id)
	NameResponse(c, http.StatusOK, id)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := trimDocumentSuffix(c.Param("id"))
	if !ok {
		h.log.Warnf("Invalid product path parameter: %s", c.Param("id"))
		ErrorResponse(c, http.StatusBadRequest, "append .json to the request path")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Errorf("Failed to bind JSON for update product '%s': %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(updates) == 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: no fields provided for update")
		return
	}

	patch, err := json.Marshal(updates)
	if err != nil {
		h.log.Errorf("Failed to marshal update patch for product '%s': %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "could not update product")
		return
	}

	merged, err := h.repo.Merge(productsCollection, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			h.log.Warnf("Product '%s' not found for update", id)
			ErrorResponse(c, http.StatusNotFound, "product not found")
			return
		}
		h.log.Errorf("Failed to merge product '%s': %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "could not update product")
		return
	}

	h.log.Infof("Product updated: '%s'", id)
	c.Data(http.StatusOK, "application/json", merged)
}
