//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitebill/sitebill/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testInvoice(status billing.InvoiceStatus) *billing.Invoice {
	return &billing.Invoice{
		ID:            21,
		PublicationID: "INV-21",
		IssuedAt:      time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Amount:        480,
		Status:        status,
		ContractID:    8,
	}
}

func TestInvoiceHandler_Create(t *testing.T) {
	mockInvoiceService := new(MockInvoiceService)
	handler := NewInvoiceHandler(mockInvoiceService)

	mockInvoiceService.
		On("Create", mock.Anything, mock.MatchedBy(func(i *billing.Invoice) bool {
			return i.ContractID == 8 && i.Amount == 480 && i.PublicationID == "" && i.IssuedAt.IsZero()
		})).
		Return(testInvoice(billing.InvoiceStatusDraft), nil)

	c, w := newTestContext("POST", "/invoices", `{"contract_id": 8, "amount": 480}`)
	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"draft"`)
	mockInvoiceService.AssertExpectations(t)
}

func TestInvoiceHandler_Create_NegativeAmount(t *testing.T) {
	mockInvoiceService := new(MockInvoiceService)
	handler := NewInvoiceHandler(mockInvoiceService)

	c, w := newTestContext("POST", "/invoices", `{"contract_id": 8, "amount": -1}`)
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockInvoiceService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_List(t *testing.T) {
	mockInvoiceService := new(MockInvoiceService)
	handler := NewInvoiceHandler(mockInvoiceService)

	mockInvoiceService.
		On("List", mock.Anything, mock.MatchedBy(func(q *billing.InvoiceQuery) bool {
			return q.Status == billing.InvoiceStatusComputed && q.ContractID == 8 && !q.IssuedFrom.IsZero()
		})).
		Return([]*billing.Invoice{testInvoice(billing.InvoiceStatusComputed)}, nil)

	c, w := newTestContext("GET", "/invoices?status=computed&contractId=8&issuedFrom=2024-01-01T00:00:00Z", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-21")
	mockInvoiceService.AssertExpectations(t)
}

func TestInvoiceHandler_List_EmptyIsArray(t *testing.T) {
	mockInvoiceService := new(MockInvoiceService)
	handler := NewInvoiceHandler(mockInvoiceService)

	mockInvoiceService.On("List", mock.Anything, mock.Anything).Return([]*billing.Invoice{}, nil)

	c, w := newTestContext("GET", "/invoices", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestInvoiceHandler_UpdateAmount(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"editable", `{"amount": 500}`, nil, http.StatusOK},
		{"zero amount is allowed", `{"amount": 0}`, nil, http.StatusOK},
		{"missing amount", `{}`, nil, http.StatusBadRequest},
		{"published invoice", `{"amount": 500}`, fmt.Errorf("%w: invoice INV-21", billing.ErrNotEditable), http.StatusUnprocessableEntity},
		{"unknown invoice", `{"amount": 500}`, fmt.Errorf("invoice with ID 21: %w", billing.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockInvoiceService := new(MockInvoiceService)
			handler := NewInvoiceHandler(mockInvoiceService)

			if tt.serviceErr != nil {
				mockInvoiceService.On("UpdateAmount", mock.Anything, int64(21), mock.Anything).Return(nil, tt.serviceErr)
			} else {
				mockInvoiceService.On("UpdateAmount", mock.Anything, int64(21), mock.Anything).
					Return(testInvoice(billing.InvoiceStatusComputed), nil)
			}

			c, w := newTestContext("PUT", "/invoices/21", tt.body)
			c.Params = gin.Params{gin.Param{Key: "id", Value: "21"}}
			handler.UpdateAmount(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestInvoiceHandler_Transition(t *testing.T) {
	mockInvoiceService := new(MockInvoiceService)
	handler := NewInvoiceHandler(mockInvoiceService)

	mockInvoiceService.On("Transition", mock.Anything, int64(21), billing.InvoiceStatusPaid).
		Return(testInvoice(billing.InvoiceStatusPaid), nil)
	mockInvoiceService.On("Transition", mock.Anything, int64(21), billing.InvoiceStatusDraft).
		Return(nil, fmt.Errorf("%w: paid -> draft", billing.ErrInvalidTransition))

	c, w := newTestContext("PATCH", "/invoices/21/status", `{"status": "paid"}`)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "21"}}
	handler.Transition(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext("PATCH", "/invoices/21/status", `{"status": "draft"}`)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "21"}}
	handler.Transition(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	c, w = newTestContext("PATCH", "/invoices/21/status", `{"status": "cancelled"}`)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "21"}}
	handler.Transition(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockInvoiceService.AssertExpectations(t)
}

func TestInvoiceHandler_DeleteByID(t *testing.T) {
	mockInvoiceService := new(MockInvoiceService)
	handler := NewInvoiceHandler(mockInvoiceService)

	mockInvoiceService.On("DeleteByID", mock.Anything, int64(21)).
		Return(fmt.Errorf("%w: only draft invoices can be deleted", billing.ErrNotEditable))

	c, w := newTestContext("DELETE", "/invoices/21", "")
	c.Params = gin.Params{gin.Param{Key: "id", Value: "21"}}
	handler.DeleteByID(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestInvoiceHandler_PublishBatch(t *testing.T) {
	mockInvoiceService := new(MockInvoiceService)
	handler := NewInvoiceHandler(mockInvoiceService)

	mockInvoiceService.On("PublishBatch", mock.Anything, []int64{21, 22}).
		Return([]*billing.Invoice{testInvoice(billing.InvoiceStatusPublished)}, nil)

	c, w := newTestContext("POST", "/invoices/publish", `{"ids": [21, 22]}`)
	handler.PublishBatch(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"published"`)

	c, w = newTestContext("POST", "/invoices/publish", `{"ids": []}`)
	handler.PublishBatch(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockInvoiceService.AssertExpectations(t)
}
