package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snugbooks/backend/internal/server/models"
)

type createSIEFileRequest struct {
	UserID      int64   `json:"user_id" binding:"required"`
	Filename    string  `json:"filename" binding:"required"`
	StoragePath string  `json:"storage_path" binding:"required"`
	Period      *string `json:"period"`
}

type createReceiptRequest struct {
	UserID      int64   `json:"user_id" binding:"required"`
	Filename    string  `json:"filename" binding:"required"`
	StoragePath string  `json:"storage_path" binding:"required"`
	Note        *string `json:"note"`
}

type sieFileResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Period      *string   `json:"period"`
	CreatedAt   time.Time `json:"created_at"`
}

type receiptResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// userIDQuery parses the required user_id query parameter of list endpoints.
func userIDQuery(c *gin.Context) (int64, bool) {
	raw, ok := c.GetQuery("user_id")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (s *Server) createSIEFile(c *gin.Context) {
	var req createSIEFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	f, err := s.records.CreateSIEFile(c.Request.Context(), &models.SIEFile{
		UserID:      req.UserID,
		Filename:    req.Filename,
		StoragePath: req.StoragePath,
		Period:      req.Period,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": f.ID})
}

func (s *Server) listSIEFiles(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	files, err := s.records.ListSIEFiles(c.Request.Context(), userID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	result := make([]sieFileResponse, 0, len(files))
	for _, f := range files {
		result = append(result, sieFileResponse{
			ID:          f.ID,
			UserID:      f.UserID,
			Filename:    f.Filename,
			StoragePath: f.StoragePath,
			Period:      f.Period,
			CreatedAt:   f.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) createReceipt(c *gin.Context) {
	var req createReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	r, err := s.records.CreateReceipt(c.Request.Context(), &models.Receipt{
		UserID:      req.UserID,
		Filename:    req.Filename,
		StoragePath: req.StoragePath,
		Note:        req.Note,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": r.ID})
}

func (s *Server) listReceipts(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	receipts, err := s.records.ListReceipts(c.Request.Context(), userID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	result := make([]receiptResponse, 0, len(receipts))
	for _, r := range receipts {
		result = append(result, receiptResponse{
			ID:          r.ID,
			UserID:      r.UserID,
			Filename:    r.Filename,
			StoragePath: r.StoragePath,
			Note:        r.Note,
			CreatedAt:   r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}
