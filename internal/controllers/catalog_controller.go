package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery_tracker/internal/services"
)

// Reference-entity handlers. Creates are findOrCreate on the natural
// key: a repeated POST answers 200 with the existing row instead of
// duplicating it, which keeps bulk imports and retries idempotent.

type departmentInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateDepartment(c *gin.Context) {
	var input departmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dept, err := services.FindOrCreateDepartment(c.Request.Context(), input.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"department": dept})
}

func GetDepartment(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	dept, err := services.GetDepartment(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": dept})
}

func ListDepartments(c *gin.Context) {
	depts, err := services.ListDepartments(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": depts})
}

func DeleteDepartment(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteDepartment(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type cityInput struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID uint   `json:"department_id" binding:"required"`
}

func CreateCity(c *gin.Context) {
	var input cityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	city, err := services.FindOrCreateCity(c.Request.Context(), input.Name, input.DepartmentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"city": city})
}

func GetCity(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	city, err := services.GetCity(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city})
}

func DeleteCity(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteCity(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ListCities(c *gin.Context) {
	cities, err := services.ListCities(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cities})
}

type categoryInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := services.FindOrCreateCategory(c.Request.Context(), input.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

func ListCategories(c *gin.Context) {
	cats, err := services.ListCategories(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

func DeleteCategory(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteCategory(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type supplierInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func CreateSupplier(c *gin.Context) {
	var input supplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sup, err := services.FindOrCreateSupplier(c.Request.Context(), input.Name, input.Email, input.Phone)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supplier": sup})
}

func GetSupplier(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	sup, err := services.GetSupplier(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": sup})
}

func ListSuppliers(c *gin.Context) {
	sups, err := services.ListSuppliers(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sups})
}

func DeleteSupplier(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteSupplier(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
