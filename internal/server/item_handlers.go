package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapledger/snapledger/internal/middleware"
	"github.com/snapledger/snapledger/internal/service"
)

func (s *Server) handleCreateItem(c *gin.Context) {
	var input service.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.items.Create(c.Request.Context(), c.Param("id"), input, middleware.Username(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(item))
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	var input service.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.items.Update(c.Request.Context(), c.Param("id"), input, middleware.Username(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	if err := s.items.Delete(c.Request.Context(), c.Param("id"), middleware.Username(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense item deleted"})
}
