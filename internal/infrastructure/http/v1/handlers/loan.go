package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/domain/payroll/loan"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// LoanHandler handles employee loan endpoints.
type LoanHandler struct {
	*BaseHandler
	service *loan.Service
}

// NewLoanHandler creates a new loan handler.
func NewLoanHandler(base *BaseHandler, service *loan.Service) *LoanHandler {
	return &LoanHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /loans
func (h *LoanHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := loan.Filter{ListFilter: domain.DefaultListFilter()}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy")
	filter.IncludeInactive = c.Query("includeInactive") == "true"
	filter.Status = loan.Status(c.Query("status"))
	if employeeID := c.Query("employeeId"); employeeID != "" {
		parsed, err := id.Parse(employeeID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid employee id").
				WithDetail("field", "employeeId"))
			return
		}
		filter.EmployeeID = parsed
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromLoan(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	loanID, ok := h.ParseID(c)
	if !ok {
		return
	}

	l, err := h.service.GetByID(ctx, loanID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromLoan(l))
}

// Create handles POST /loans
func (h *LoanHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateLoanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	l, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, l); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromLoan(l))
}

// Update handles PUT /loans/:id
func (h *LoanHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	loanID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateLoanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	l, err := h.service.GetByID(ctx, loanID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(l); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, l); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromLoan(l))
}

// Delete handles DELETE /loans/:id
func (h *LoanHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	loanID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, loanID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Annul handles POST /loans/:id/annul
func (h *LoanHandler) Annul(c *gin.Context) {
	ctx := c.Request.Context()

	loanID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Annul(ctx, loanID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "loan annulled")
}
