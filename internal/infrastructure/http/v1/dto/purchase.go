package dto

import (
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/documents"
	"backoffice/internal/domain/documents/purchase"
)

// CreatePurchaseRequest is the request body for recording a purchase.
// Line unit prices are taken as the supplier's unit cost.
type CreatePurchaseRequest struct {
	SupplierID        string             `json:"supplierId" binding:"required"`
	SupplierDocNumber string             `json:"supplierDocNumber"`
	IssueDate         *time.Time         `json:"issueDate"`
	Lines             []LineInputRequest `json:"lines" binding:"required,min=1"`
}

// ToEntity converts the request to a domain entity plus line inputs.
func (r *CreatePurchaseRequest) ToEntity() (*purchase.Purchase, []documents.LineInput, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, nil, err
	}

	p := purchase.New(supplierID)
	p.SupplierDocNumber = r.SupplierDocNumber
	if r.IssueDate != nil {
		p.IssueDate = *r.IssueDate
	}

	inputs, err := ToLineInputs(r.Lines)
	if err != nil {
		return nil, nil, err
	}
	return p, inputs, nil
}

// UpdatePurchaseRequest is the request body for updating a purchase.
type UpdatePurchaseRequest struct {
	SupplierID        string             `json:"supplierId" binding:"required"`
	SupplierDocNumber string             `json:"supplierDocNumber"`
	IssueDate         *time.Time         `json:"issueDate"`
	Lines             []LineInputRequest `json:"lines" binding:"required,min=1"`
	Version           int                `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing purchase and returns the new
// line inputs.
func (r *UpdatePurchaseRequest) ApplyTo(p *purchase.Purchase) ([]documents.LineInput, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, err
	}

	p.SupplierID = supplierID
	p.SupplierDocNumber = r.SupplierDocNumber
	if r.IssueDate != nil {
		p.IssueDate = *r.IssueDate
	}
	p.Version = r.Version

	return ToLineInputs(r.Lines)
}

// PurchaseLineResponse is one purchase line in responses.
type PurchaseLineResponse struct {
	LineID    string `json:"lineId"`
	LineNo    int    `json:"lineNo"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
	UnitCost  string `json:"unitCost"`
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
}

// PurchaseResponse is the response body for a purchase.
type PurchaseResponse struct {
	DocumentResponse
	SupplierID        string                 `json:"supplierId"`
	SupplierDocNumber string                 `json:"supplierDocNumber,omitempty"`
	Lines             []PurchaseLineResponse `json:"lines"`
}

// FromPurchase creates a response DTO from a domain entity.
func FromPurchase(p *purchase.Purchase) *PurchaseResponse {
	lines := make([]PurchaseLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, PurchaseLineResponse{
			LineID:    l.LineID.String(),
			LineNo:    l.LineNo,
			ProductID: l.ProductID.String(),
			Quantity:  l.Quantity.String(),
			UnitCost:  l.UnitCost.StringFixed(2),
			Subtotal:  l.Subtotal.StringFixed(2),
			Tax:       l.Tax.StringFixed(2),
		})
	}
	return &PurchaseResponse{
		DocumentResponse:  FromDocument(p.Document),
		SupplierID:        p.SupplierID.String(),
		SupplierDocNumber: p.SupplierDocNumber,
		Lines:             lines,
	}
}
