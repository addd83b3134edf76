package handler

import (
	appfinance "github.com/clinisupply/backend/internal/application/finance"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// FinanceHandler exposes clinic financial records
type FinanceHandler struct {
	BaseHandler
	transactions *appfinance.TransactionService
	invoices     *appfinance.InvoiceService
	payables     *appfinance.PayableService
	receivables  *appfinance.ReceivableService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	transactions *appfinance.TransactionService,
	invoices *appfinance.InvoiceService,
	payables *appfinance.PayableService,
	receivables *appfinance.ReceivableService,
) *FinanceHandler {
	return &FinanceHandler{
		transactions: transactions,
		invoices:     invoices,
		payables:     payables,
		receivables:  receivables,
	}
}

// RegisterRoutes registers finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions", middleware.Authorize(isolation.KindTransaction))
	{
		transactions.POST("", h.CreateTransaction)
		transactions.GET("", h.ListTransactions)
		transactions.GET("/:id", h.GetTransaction)
		transactions.POST("/:id/complete", h.CompleteTransaction)
	}

	invoices := rg.Group("/invoices", middleware.Authorize(isolation.KindInvoice))
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.POST("/:id/pay", h.MarkInvoicePaid)
	}

	payables := rg.Group("/payables", middleware.Authorize(isolation.KindAccountPayable))
	{
		payables.POST("", h.CreatePayable)
		payables.GET("", h.ListPayables)
		payables.GET("/overdue", h.ListOverduePayables)
		payables.GET("/:id", h.GetPayable)
		payables.POST("/:id/payments", h.RegisterPayment)
	}

	receivables := rg.Group("/receivables", middleware.Authorize(isolation.KindAccountReceivable))
	{
		receivables.POST("", h.CreateReceivable)
		receivables.GET("", h.ListReceivables)
		receivables.GET("/overdue", h.ListOverdueReceivables)
		receivables.GET("/:id", h.GetReceivable)
		receivables.POST("/:id/receipts", h.RegisterReceipt)
	}
}

// CreateTransaction records a pending balance transaction
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req appfinance.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid transaction payload")
		return
	}
	resp, err := h.transactions.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTransactions returns a page of the clinic's transactions
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	var filter appfinance.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.transactions.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetTransaction returns one transaction
func (h *FinanceHandler) GetTransaction(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.transactions.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CompleteTransaction settles a pending transaction
func (h *FinanceHandler) CompleteTransaction(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.transactions.Complete(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateInvoice issues an invoice
func (h *FinanceHandler) CreateInvoice(c *gin.Context) {
	var req appfinance.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid invoice payload")
		return
	}
	resp, err := h.invoices.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListInvoices returns a page of the clinic's invoices
func (h *FinanceHandler) ListInvoices(c *gin.Context) {
	var filter appfinance.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.invoices.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetInvoice returns one invoice
func (h *FinanceHandler) GetInvoice(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.invoices.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkInvoicePaid records payment on an invoice
func (h *FinanceHandler) MarkInvoicePaid(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.invoices.MarkPaid(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreatePayable records money the clinic owes
func (h *FinanceHandler) CreatePayable(c *gin.Context) {
	var req appfinance.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid payable payload")
		return
	}
	resp, err := h.payables.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPayables returns a page of the clinic's payables
func (h *FinanceHandler) ListPayables(c *gin.Context) {
	var filter appfinance.PayableListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.payables.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListOverduePayables returns unsettled payables past their due date
func (h *FinanceHandler) ListOverduePayables(c *gin.Context) {
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	items, err := h.payables.ListOverdue(c.Request.Context(), hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetPayable returns one payable
func (h *FinanceHandler) GetPayable(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.payables.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterPayment applies a payment to a payable
func (h *FinanceHandler) RegisterPayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	var req appfinance.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid payment payload")
		return
	}
	resp, err := h.payables.RegisterPayment(c.Request.Context(), id, hint, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateReceivable records money owed to the clinic
func (h *FinanceHandler) CreateReceivable(c *gin.Context) {
	var req appfinance.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid receivable payload")
		return
	}
	resp, err := h.receivables.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListReceivables returns a page of the clinic's receivables
func (h *FinanceHandler) ListReceivables(c *gin.Context) {
	var filter appfinance.ReceivableListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.receivables.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListOverdueReceivables returns unsettled receivables past their due date
func (h *FinanceHandler) ListOverdueReceivables(c *gin.Context) {
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	items, err := h.receivables.ListOverdue(c.Request.Context(), hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetReceivable returns one receivable
func (h *FinanceHandler) GetReceivable(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.receivables.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterReceipt applies a received amount to a receivable
func (h *FinanceHandler) RegisterReceipt(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	var req appfinance.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid receipt payload")
		return
	}
	resp, err := h.receivables.RegisterReceipt(c.Request.Context(), id, hint, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
