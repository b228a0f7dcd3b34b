package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	commands     services.ExpenseCommandServicer
	queries      services.ExpenseQueryServicer
	auditService services.AuditServicer
	now          func() time.Time
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(
	commands services.ExpenseCommandServicer,
	queries services.ExpenseQueryServicer,
	auditService services.AuditServicer,
) *ExpenseHandler {
	return &ExpenseHandler{
		commands:     commands,
		queries:      queries,
		auditService: auditService,
		now:          time.Now,
	}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// amount accepts a JSON number or a decimal string.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required,not_blank,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required,positive_amount" swaggertype:"string" example:"45.50"`
	Date        string          `json:"date" binding:"required" example:"2024-05-01T12:00:00Z"`
	CategoryID  uint            `json:"categoryId" binding:"required,min=1"`
}

// UpdateExpenseRequest represents the request payload for updating an expense.
// The category of an existing expense cannot be changed.
type UpdateExpenseRequest struct {
	Description string          `json:"description" binding:"required,not_blank,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required,positive_amount" swaggertype:"string" example:"45.50"`
	Date        string          `json:"date" binding:"required" example:"2024-05-01T12:00:00Z"`
}

// CreatedResponse carries the id of a newly created resource.
type CreatedResponse struct {
	ID uint `json:"id"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record a new expense for the authenticated user. An identical submission within 10 seconds is rejected.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} CreatedResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate submission"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, _, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	id, err := h.commands.CreateExpense(c.Request.Context(), userID, req.Description, req.Amount, date, req.CategoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionCreateExpense, "expense", id, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String(), "category_id": req.CategoryID})

	c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, id))
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// GetExpenses handles the retrieval of the caller's expenses
// @Summary     List expenses
// @Description Get a page of the authenticated user's expenses, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       pageNumber query int false "Page number (default 1)"
// @Param       pageSize   query int false "Items per page (default 10, max 50)"
// @Success     200 {object} pagination.PagedResult[models.ExpenseView] "Paged expenses"
// @Failure     400 {object} ErrorResponse "Invalid paging parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.queries.GetExpenses(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpense handles the retrieval of a single expense
// @Summary     Get an expense
// @Description Get one of the authenticated user's expenses by id
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} models.ExpenseView "Expense"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.queries.GetExpenseByID(c.Request.Context(), expenseID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense handles updating an expense
// @Summary     Update an expense
// @Description Replace description, amount and date of an expense
// @Tags        expenses
// @Accept      json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Updated expense"
// @Success     204 "Updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, _, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.commands.UpdateExpense(c.Request.Context(), expenseID, userID, req.Description, req.Amount, date); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionUpdateExpense, "expense", expenseID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String()})

	c.Status(http.StatusNoContent)
}

// DeleteExpense handles deleting an expense
// @Summary     Delete an expense
// @Description Soft-delete an expense. Deleting an already deleted expense succeeds.
// @Tags        expenses
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     204 "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.commands.DeleteExpense(c.Request.Context(), expenseID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionDeleteExpense, "expense", expenseID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetSummary handles the per-category spending report
// @Summary     Expense summary
// @Description Total and per-category breakdown of the user's expenses in a date range. Defaults to the current month.
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       startDate query string false "Range start (RFC3339 or YYYY-MM-DD)"
// @Param       endDate   query string false "Range end, inclusive (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.ExpenseSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, end, err := parseDateRange(c, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.queries.GetSummary(c.Request.Context(), userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetCategories handles listing the category catalog
// @Summary     List categories
// @Description Categories an expense can be filed under, sorted by name
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Category "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	categories, err := h.queries.GetCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
