package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/audit"
	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AccountingHandler covers the back-office money endpoints: expenses,
// invoices, weekly barber payouts and the monthly summary.
type AccountingHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAccountingHandler(db *gorm.DB, audit *audit.Dispatcher) *AccountingHandler {
	return &AccountingHandler{db: db, audit: audit}
}

// ======================================================
// EXPENSES
// ======================================================

type ExpenseRequest struct {
	Category       string  `json:"category" binding:"required"`
	CustomCategory string  `json:"custom_category"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Description    string  `json:"description"`
	Date           string  `json:"date" binding:"required"` // YYYY-MM-DD
	Notes          string  `json:"notes"`
}

func (h *AccountingHandler) ListExpenses(c *gin.Context) {
	q := h.db.Model(&models.Expense{})
	if month := c.Query("month"); month != "" {
		q = q.Where("date LIKE ?", month+"%") // "YYYY-MM"
	}

	var expenses []models.Expense
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_expenses", "Error al listar gastos.")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (h *AccountingHandler) CreateExpense(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	expense := models.Expense{
		Category:       req.Category,
		CustomCategory: req.CustomCategory,
		Amount:         req.Amount,
		Description:    req.Description,
		Date:           req.Date,
		Notes:          req.Notes,
	}

	if err := h.db.Create(&expense).Error; err != nil {
		httperr.Internal(c, "failed_to_create_expense", "Error al registrar el gasto.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "expense_created",
		Entity:   "expense",
		EntityID: &expense.ID,
	})

	c.JSON(http.StatusCreated, expense)
}

func (h *AccountingHandler) DeleteExpense(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var expense models.Expense
	if err := h.db.First(&expense, id).Error; err != nil {
		httperr.NotFound(c, "expense_not_found", "Gasto no encontrado.")
		return
	}

	if err := h.db.Delete(&expense).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_expense", "Error al eliminar el gasto.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "expense_deleted",
		Entity:   "expense",
		EntityID: &expense.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// INVOICES
// ======================================================

type InvoiceRequest struct {
	Type        string  `json:"type"`
	RecipientID uint    `json:"recipient_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"` // YYYY-MM-DD, optional
}

func (h *AccountingHandler) ListInvoices(c *gin.Context) {
	var invoices []models.Invoice
	if err := h.db.
		Preload("Recipient").
		Order("issue_date DESC").
		Find(&invoices).Error; err != nil {
		httperr.Internal(c, "failed_to_list_invoices", "Error al listar facturas.")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func (h *AccountingHandler) CreateInvoice(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	invType := req.Type
	if invType == "" {
		invType = models.InvoiceTypeService
	}
	if invType != models.InvoiceTypeService && invType != models.InvoiceTypeBarberPayment {
		httperr.BadRequest(c, "invalid_invoice_type", "Tipo de factura inválido.")
		return
	}

	var recipient models.User
	if err := h.db.First(&recipient, req.RecipientID).Error; err != nil {
		httperr.BadRequest(c, "recipient_not_found", "Destinatario no encontrado.")
		return
	}

	invoice := models.Invoice{
		InvoiceNumber: newInvoiceNumber(),
		Type:          invType,
		RecipientID:   recipient.ID,
		Amount:        req.Amount,
		Description:   req.Description,
		IssueDate:     time.Now(),
	}

	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_due_date", "Fecha de vencimiento inválida.")
			return
		}
		invoice.DueDate = &due
	}

	if err := h.db.Create(&invoice).Error; err != nil {
		httperr.Internal(c, "failed_to_create_invoice", "Error al crear la factura.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "invoice_created",
		Entity:   "invoice",
		EntityID: &invoice.ID,
	})

	c.JSON(http.StatusCreated, invoice)
}

func (h *AccountingHandler) MarkInvoicePaid(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var invoice models.Invoice
	if err := h.db.First(&invoice, id).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", "Factura no encontrada.")
		return
	}

	if invoice.IsPaid {
		c.JSON(http.StatusOK, invoice)
		return
	}

	now := time.Now()
	invoice.IsPaid = true
	invoice.PaidAt = &now

	if err := h.db.Save(&invoice).Error; err != nil {
		httperr.Internal(c, "failed_to_update_invoice", "Error al actualizar la factura.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "invoice_paid",
		Entity:   "invoice",
		EntityID: &invoice.ID,
	})

	c.JSON(http.StatusOK, invoice)
}

// Invoice numbers are year-scoped with a random suffix, short enough to
// read over the phone.
func newInvoiceNumber() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("INV-%d-%s", time.Now().Year(), suffix)
}

// ======================================================
// BARBER PAYMENTS
// ======================================================

type BarberPaymentRequest struct {
	BarberID  uint    `json:"barber_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	WeekStart string  `json:"week_start" binding:"required"`
	WeekEnd   string  `json:"week_end" binding:"required"`
	Notes     string  `json:"notes"`
}

func (h *AccountingHandler) ListBarberPayments(c *gin.Context) {
	q := h.db.Model(&models.BarberPayment{}).Preload("Barber.User")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var payments []models.BarberPayment
	if err := q.Order("week_start DESC").Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Error al listar pagos.")
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (h *AccountingHandler) CreateBarberPayment(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req BarberPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	start, err := time.Parse("2006-01-02", req.WeekStart)
	if err != nil {
		httperr.BadRequest(c, "invalid_week_start", "Inicio de semana inválido.")
		return
	}
	end, err := time.Parse("2006-01-02", req.WeekEnd)
	if err != nil || !start.Before(end) {
		httperr.BadRequest(c, "invalid_week_end", "Fin de semana inválido.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, req.BarberID).Error; err != nil {
		httperr.BadRequest(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	payment := models.BarberPayment{
		BarberID:  barber.ID,
		Amount:    req.Amount,
		WeekStart: req.WeekStart,
		WeekEnd:   req.WeekEnd,
		Status:    models.PaymentPending,
		Notes:     req.Notes,
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_payment", "Error al registrar el pago.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_payment_created",
		Entity:   "barber_payment",
		EntityID: &payment.ID,
	})

	c.JSON(http.StatusCreated, payment)
}

func (h *AccountingHandler) MarkBarberPaymentPaid(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var payment models.BarberPayment
	if err := h.db.First(&payment, id).Error; err != nil {
		httperr.NotFound(c, "payment_not_found", "Pago no encontrado.")
		return
	}

	if payment.Status == models.PaymentPaid {
		c.JSON(http.StatusOK, payment)
		return
	}

	now := time.Now()
	payment.Status = models.PaymentPaid
	payment.PaidAt = &now

	if err := h.db.Save(&payment).Error; err != nil {
		httperr.Internal(c, "failed_to_update_payment", "Error al actualizar el pago.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_payment_paid",
		Entity:   "barber_payment",
		EntityID: &payment.ID,
	})

	c.JSON(http.StatusOK, payment)
}

// ======================================================
// SUMMARY
// ======================================================

// Summary aggregates a month: revenue from completed appointments,
// recorded expenses and pending payouts.
func (h *AccountingHandler) Summary(c *gin.Context) {
	month := c.Query("month") // "YYYY-MM"
	if _, err := time.Parse("2006-01", month); err != nil {
		httperr.BadRequest(c, "invalid_month", "Mes inválido, formato YYYY-MM.")
		return
	}

	monthStart, _ := time.Parse("2006-01", month)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var revenue struct {
		Total float64
		Count int64
	}
	h.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(price), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND start_time >= ? AND start_time < ?",
			string(domain.StatusCompleted), monthStart, monthEnd).
		Scan(&revenue)

	var expenses float64
	h.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date LIKE ?", month+"%").
		Scan(&expenses)

	var pendingPayouts float64
	h.db.Model(&models.BarberPayment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", models.PaymentPending).
		Scan(&pendingPayouts)

	c.JSON(http.StatusOK, gin.H{
		"month":                  month,
		"revenue":                revenue.Total,
		"completed_appointments": revenue.Count,
		"expenses":               expenses,
		"pending_payouts":        pendingPayouts,
		"net":                    revenue.Total - expenses,
	})
}
