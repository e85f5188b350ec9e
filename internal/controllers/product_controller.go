package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"delivery_tracker/internal/services"
)

func CreateProduct(c *gin.Context) {
	var input services.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := services.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func GetProduct(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	product, err := services.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func ListProducts(c *gin.Context) {
	products, err := services.ListProducts(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func UpdateProduct(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	var input services.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := services.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func DeleteProduct(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteProduct(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Stock handlers ---

type addStockInput struct {
	Quantity  int    `json:"quantity" binding:"required"`
	Reference string `json:"reference"`
}

func AddStock(c *gin.Context) {
	warehouseID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}
	var input addStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := services.AddStock(c.Request.Context(), warehouseID, productID, input.Quantity, input.Reference)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": row})
}

type consumeStockInput struct {
	Amount    int    `json:"amount" binding:"required"`
	Reference string `json:"reference"`
}

func ConsumeStock(c *gin.Context) {
	warehouseID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}
	var input consumeStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ConsumeStock(c.Request.Context(), warehouseID, productID, input.Amount, input.Reference); err != nil {
		respondErr(c, err)
		return
	}
	stock, err := services.GetStock(c.Request.Context(), warehouseID, productID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

func GetStock(c *gin.Context) {
	warehouseID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}
	stock, err := services.GetStock(c.Request.Context(), warehouseID, productID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

func ListStock(c *gin.Context) {
	warehouseID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	rows, err := services.ListStock(c.Request.Context(), warehouseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// ListMovements lists inventory movements, optionally scoped to one
// warehouse via ?warehouse_id=N.
func ListMovements(c *gin.Context) {
	var warehouseID uint
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse_id format."})
			return
		}
		warehouseID = uint(id)
	}
	moves, err := services.ListMovements(c.Request.Context(), warehouseID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": moves})
}

// ImportProducts accepts a multipart CSV upload and applies it row by
// row. Rejected rows come back in the report; they never abort the run.
func ImportProducts(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'file' upload"})
		return
	}
	defer file.Close()

	report, err := services.ImportCSV(c.Request.Context(), file)
	if err != nil {
		respondErr(c, err)
		return
	}
	status := http.StatusOK
	if report.Created > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"report": report})
}
