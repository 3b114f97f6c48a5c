package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTransferRequest_Validate(t *testing.T) {
	valid := CreateTransferRequest{ProductID: 1, Quantity: 5, ToBranch: "Downtown"}
	assert.NoError(t, valid.Validate())

	noQuantity := valid
	noQuantity.Quantity = 0
	assert.Error(t, noQuantity.Validate())

	negative := valid
	negative.Quantity = -3
	assert.Error(t, negative.Validate())

	noDestination := valid
	noDestination.ToBranch = ""
	assert.Error(t, noDestination.Validate())
}

func TestUpdateTransferStatusRequest_Validate(t *testing.T) {
	for _, action := range []string{"dispatch", "complete", "cancel"} {
		req := UpdateTransferStatusRequest{Action: action}
		assert.NoError(t, req.Validate())
	}

	assert.Error(t, (&UpdateTransferStatusRequest{Action: "approve"}).Validate())
	assert.Error(t, (&UpdateTransferStatusRequest{}).Validate())
}

func TestAdjustStockRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AdjustStockRequest{Delta: 5}).Validate())
	assert.NoError(t, (&AdjustStockRequest{Delta: -5}).Validate())
	assert.ErrorIs(t, (&AdjustStockRequest{}).Validate(), errZeroDelta)
}

func TestCreateSaleRequest_Validate(t *testing.T) {
	valid := CreateSaleRequest{
		BillNumber: "BILL-0001",
		Items:      []SaleItemRequest{{ProductID: 1, Quantity: 2}},
	}
	assert.NoError(t, valid.Validate())

	noBill := valid
	noBill.BillNumber = ""
	assert.Error(t, noBill.Validate())

	noItems := valid
	noItems.Items = nil
	assert.Error(t, noItems.Validate())

	badItem := valid
	badItem.Items = []SaleItemRequest{{ProductID: 1, Quantity: 0}}
	assert.Error(t, badItem.Validate())

	negativeDiscount := valid
	negativeDiscount.Discount = -1
	assert.Error(t, negativeDiscount.Validate())
}

func TestCreateProductRequest_Validate(t *testing.T) {
	valid := CreateProductRequest{Name: "Croissant", Quantity: 10, Price: 2.5}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())

	negativePrice := valid
	negativePrice.Price = -1
	assert.Error(t, negativePrice.Validate())
}
