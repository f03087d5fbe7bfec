package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snugbooks/backend/internal/server/models"
)

type createCompanyRequest struct {
	UserID          int64   `json:"user_id" binding:"required"`
	CompanyName     string  `json:"company_name" binding:"required"`
	OrgNumber       *string `json:"organization_number"`
	Address         *string `json:"address"`
	PostalCode      *string `json:"postal_code"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	VatNumber       *string `json:"vat_number"`
	FiscalYearStart *string `json:"fiscal_year_start"`
	FiscalYearEnd   *string `json:"fiscal_year_end"`
}

type updateCompanyRequest struct {
	CompanyName     string  `json:"company_name" binding:"required"`
	OrgNumber       *string `json:"organization_number"`
	Address         *string `json:"address"`
	PostalCode      *string `json:"postal_code"`
	City            *string `json:"city"`
	Country         *string `json:"country"`
	VatNumber       *string `json:"vat_number"`
	FiscalYearStart *string `json:"fiscal_year_start"`
	FiscalYearEnd   *string `json:"fiscal_year_end"`
}

// companyResponse is the camelCase wire shape the frontend expects. Stored
// column names are snake_case; this translation must stay in place for
// client compatibility.
type companyResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	CompanyName     string    `json:"companyName"`
	OrgNumber       *string   `json:"organizationNumber"`
	Address         *string   `json:"address"`
	PostalCode      *string   `json:"postalCode"`
	City            *string   `json:"city"`
	Country         *string   `json:"country"`
	VatNumber       *string   `json:"vatNumber"`
	FiscalYearStart *string   `json:"fiscalYearStart"`
	FiscalYearEnd   *string   `json:"fiscalYearEnd"`
	CreatedAt       time.Time `json:"createdAt"`
}

func companyOf(c *models.Company) companyResponse {
	return companyResponse{
		ID:              c.ID,
		UserID:          c.UserID,
		CompanyName:     c.CompanyName,
		OrgNumber:       c.OrgNumber,
		Address:         c.Address,
		PostalCode:      c.PostalCode,
		City:            c.City,
		Country:         c.Country,
		VatNumber:       c.VatNumber,
		FiscalYearStart: c.FiscalYearStart,
		FiscalYearEnd:   c.FiscalYearEnd,
		CreatedAt:       c.CreatedAt,
	}
}

func (s *Server) listCompanies(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	companies, err := s.companies.ListByUser(c.Request.Context(), userID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	result := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		result = append(result, companyOf(company))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) createCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	company, err := s.companies.Create(c.Request.Context(), &models.Company{
		UserID:          req.UserID,
		CompanyName:     req.CompanyName,
		OrgNumber:       req.OrgNumber,
		Address:         req.Address,
		PostalCode:      req.PostalCode,
		City:            req.City,
		Country:         req.Country,
		VatNumber:       req.VatNumber,
		FiscalYearStart: req.FiscalYearStart,
		FiscalYearEnd:   req.FiscalYearEnd,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": company.ID})
}

func (s *Server) updateCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	company, err := s.companies.Update(c.Request.Context(), &models.Company{
		ID:              id,
		CompanyName:     req.CompanyName,
		OrgNumber:       req.OrgNumber,
		Address:         req.Address,
		PostalCode:      req.PostalCode,
		City:            req.City,
		Country:         req.Country,
		VatNumber:       req.VatNumber,
		FiscalYearStart: req.FiscalYearStart,
		FiscalYearEnd:   req.FiscalYearEnd,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": company.ID})
}

func (s *Server) deleteCompany(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := s.companies.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
