package bills

import "github.com/shopspring/decimal"

type GenerateRequest struct {
	Period      string          `json:"period" binding:"required,period"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"max=200"`
}

type CreateBillRequest struct {
	ResidentID  string          `json:"residentId" binding:"required"`
	Period      string          `json:"period" binding:"required,period"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"max=200"`
}

type PayRequest struct {
	Method    string `json:"method" binding:"required,oneof=cash upi bank_transfer cheque card other"`
	Reference string `json:"reference" binding:"max=100"`
}
