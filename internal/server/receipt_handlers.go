package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapledger/snapledger/internal/middleware"
)

// maxUploadSize caps receipt image uploads. Phone photos of long receipts
// run large, so allow well beyond a typical JPEG.
const maxUploadSize = 20 << 20 // 20MB

func (s *Server) handleUploadReceipt(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 20MB upload limit"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read uploaded file"})
		return
	}

	receipt, err := s.receipts.Ingest(c.Request.Context(), image, header.Filename, middleware.Username(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReceiptResponse(receipt))
}

func (s *Server) handleListReceipts(c *gin.Context) {
	receipts, err := s.receipts.ListForUser(c.Request.Context(), middleware.Username(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]receiptResponse, len(receipts))
	for i, receipt := range receipts {
		out[i] = toReceiptResponse(receipt)
	}
	c.JSON(http.StatusOK, gin.H{"receipts": out})
}

func (s *Server) handleGetReceipt(c *gin.Context) {
	receipt, err := s.receipts.Get(c.Request.Context(), c.Param("id"), middleware.Username(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReceiptResponse(receipt))
}

func (s *Server) handleDeleteReceipt(c *gin.Context) {
	if err := s.receipts.Delete(c.Request.Context(), c.Param("id"), middleware.Username(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "receipt deleted"})
}
