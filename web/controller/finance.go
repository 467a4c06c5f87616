package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/util/json_util"
	"github.com/daftarhq/daftar/web/middleware"
	"github.com/daftarhq/daftar/web/service"
	"github.com/daftarhq/daftar/web/session"
)

// InvoiceForm carries the invoice payload with its line items still
// structured; items are serialized before storage.
type InvoiceForm struct {
	InvoiceNumber string              `json:"invoiceNumber" form:"invoiceNumber"`
	ClientId      int                 `json:"clientId" form:"clientId"`
	ProjectId     *int                `json:"projectId" form:"projectId"`
	Items         []model.InvoiceItem `json:"items"`
	TotalAmount   float64             `json:"totalAmount" form:"totalAmount"`
	Status        model.InvoiceStatus `json:"status" form:"status"`
	DueDate       time.Time           `json:"dueDate" form:"dueDate"`
}

type FinanceController struct {
	BaseController

	financeService service.FinanceService
	invoiceService service.InvoiceService
	expenseService service.ExpenseService
}

func NewFinanceController(g *gin.RouterGroup) *FinanceController {
	a := &FinanceController{}
	a.initRouter(g)
	return a
}

func (a *FinanceController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/finance")
	g.Use(a.checkLogin)

	g.GET("", a.summary)
	g.GET("/invoices", a.listInvoices)
	g.GET("/expenses", a.listExpenses)

	manage := middleware.PermissionRequired(model.PermManageFinance)
	g.POST("", manage, a.createTransaction)
	g.POST("/invoices", manage, a.createInvoice)
	g.POST("/expenses", manage, a.createExpense)
}

// summary returns the firm-wide totals plus the latest transactions.
func (a *FinanceController) summary(c *gin.Context) {
	summary, err := a.financeService.Summary()
	if err != nil {
		jsonMsg(c, "finance summary", err)
		return
	}
	recent, err := a.financeService.RecentTransactions()
	if err != nil {
		jsonMsg(c, "finance summary", err)
		return
	}
	jsonObj(c, gin.H{"summary": summary, "transactions": recent}, nil)
}

func (a *FinanceController) createTransaction(c *gin.Context) {
	tx := &model.Transaction{}
	if err := c.ShouldBind(tx); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if tx.Type != model.Income && tx.Type != model.Outcome {
		pureJsonMsg(c, http.StatusBadRequest, false, "type must be income or expense")
		return
	}
	if tx.Amount <= 0 || tx.Category == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "amount and category are required")
		return
	}
	if claims := session.GetLoginClaims(c); claims != nil {
		tx.CreatedBy = claims.UserId
	}
	if err := a.financeService.CreateTransaction(tx); err != nil {
		jsonMsg(c, "create transaction", err)
		return
	}
	jsonObj(c, tx, nil)
}

func (a *FinanceController) listInvoices(c *gin.Context) {
	invoices, err := a.invoiceService.GetAll()
	jsonObj(c, invoices, err)
}

func (a *FinanceController) createInvoice(c *gin.Context) {
	var form InvoiceForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if form.ClientId == 0 || form.DueDate.IsZero() {
		pureJsonMsg(c, http.StatusBadRequest, false, "clientId and dueDate are required")
		return
	}

	items, err := json_util.ToRawMessage(form.Items)
	if err != nil {
		jsonMsg(c, "create invoice", err)
		return
	}

	invoice := &model.Invoice{
		InvoiceNumber: form.InvoiceNumber,
		ClientId:      form.ClientId,
		ProjectId:     form.ProjectId,
		Items:         items,
		TotalAmount:   form.TotalAmount,
		Status:        form.Status,
		DueDate:       form.DueDate,
	}
	if claims := session.GetLoginClaims(c); claims != nil {
		invoice.CreatedBy = claims.UserId
	}
	if err := a.invoiceService.Create(invoice); err != nil {
		jsonMsg(c, "create invoice", err)
		return
	}
	jsonObj(c, invoice, nil)
}

func (a *FinanceController) listExpenses(c *gin.Context) {
	expenses, err := a.expenseService.GetAll()
	jsonObj(c, expenses, err)
}

func (a *FinanceController) createExpense(c *gin.Context) {
	expense := &model.Expense{}
	if err := c.ShouldBind(expense); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}
	if expense.Title == "" || expense.Amount <= 0 {
		pureJsonMsg(c, http.StatusBadRequest, false, "title and a positive amount are required")
		return
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	if err := a.expenseService.Create(expense); err != nil {
		jsonMsg(c, "create expense", err)
		return
	}
	jsonObj(c, expense, nil)
}
