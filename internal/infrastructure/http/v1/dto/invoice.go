package dto

import (
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/documents"
	"backoffice/internal/domain/documents/invoice"
)

// LineInputRequest is one document line as submitted by the client.
// Amounts and taxes are recomputed server-side.
type LineInputRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  types.Money `json:"quantity" binding:"required"`
	UnitPrice types.Money `json:"unitPrice"`
}

// ToLineInputs converts request lines to domain line inputs.
func ToLineInputs(lines []LineInputRequest) ([]documents.LineInput, error) {
	inputs := make([]documents.LineInput, 0, len(lines))
	for _, l := range lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, documents.LineInput{
			ProductID: productID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return inputs, nil
}

// CreateInvoiceRequest is the request body for creating an invoice.
type CreateInvoiceRequest struct {
	CustomerID    string             `json:"customerId" binding:"required"`
	IssueDate     *time.Time         `json:"issueDate"`
	PaymentMethod string             `json:"paymentMethod"`
	Payment       types.Money        `json:"payment"`
	Lines         []LineInputRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the request to a domain entity plus line inputs.
func (r *CreateInvoiceRequest) ToEntity() (*invoice.Invoice, []documents.LineInput, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, nil, err
	}

	inv := invoice.New(customerID)
	if r.IssueDate != nil {
		inv.IssueDate = *r.IssueDate
	}
	inv.PaymentMethod = r.PaymentMethod
	inv.Payment = r.Payment

	inputs, err := ToLineInputs(r.Lines)
	if err != nil {
		return nil, nil, err
	}
	return inv, inputs, nil
}

// UpdateInvoiceRequest is the request body for updating an invoice.
type UpdateInvoiceRequest struct {
	CustomerID    string             `json:"customerId" binding:"required"`
	IssueDate     *time.Time         `json:"issueDate"`
	PaymentMethod string             `json:"paymentMethod"`
	Payment       types.Money        `json:"payment"`
	Lines         []LineInputRequest `json:"lines" binding:"required,min=1"`
	Version       int                `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing invoice and returns the new
// line inputs.
func (r *UpdateInvoiceRequest) ApplyTo(inv *invoice.Invoice) ([]documents.LineInput, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, err
	}

	inv.CustomerID = customerID
	if r.IssueDate != nil {
		inv.IssueDate = *r.IssueDate
	}
	inv.PaymentMethod = r.PaymentMethod
	inv.Payment = r.Payment
	inv.Version = r.Version

	return ToLineInputs(r.Lines)
}

// InvoiceLineResponse is one invoice line in responses.
type InvoiceLineResponse struct {
	LineID    string `json:"lineId"`
	LineNo    int    `json:"lineNo"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
}

// InvoiceResponse is the response body for an invoice.
type InvoiceResponse struct {
	DocumentResponse
	CustomerID    string                `json:"customerId"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
	Payment       string                `json:"payment"`
	Change        string                `json:"change"`
	Lines         []InvoiceLineResponse `json:"lines"`
}

// FromInvoice creates a response DTO from a domain entity.
func FromInvoice(inv *invoice.Invoice) *InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, InvoiceLineResponse{
			LineID:    l.LineID.String(),
			LineNo:    l.LineNo,
			ProductID: l.ProductID.String(),
			Quantity:  l.Quantity.String(),
			UnitPrice: l.UnitPrice.StringFixed(2),
			Subtotal:  l.Subtotal.StringFixed(2),
			Tax:       l.Tax.StringFixed(2),
		})
	}
	return &InvoiceResponse{
		DocumentResponse: FromDocument(inv.Document),
		CustomerID:       inv.CustomerID.String(),
		PaymentMethod:    inv.PaymentMethod,
		Payment:          inv.Payment.StringFixed(2),
		Change:           inv.Change.StringFixed(2),
		Lines:            lines,
	}
}
