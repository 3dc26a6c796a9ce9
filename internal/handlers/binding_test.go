package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindNestedOrFlat_Split(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		body        string
		expectedIDs []uint
		narration   string
		expectError bool
	}{
		{
			name:        "nested",
			body:        `{"split": {"transaction_ids": [3, 4], "narration": "company"}}`,
			expectedIDs: []uint{3, 4},
			narration:   "company",
		},
		{
			name:        "flat",
			body:        `{"transaction_ids": [7]}`,
			expectedIDs: []uint{7},
		},
		{
			name:        "missing key falls back to flat",
			body:        `{"settlement": {}, "transaction_ids": [1]}`,
			expectedIDs: []uint{1},
		},
		{
			name:        "invalid ids",
			body:        `{"transaction_ids": ["a"]}`,
			expectError: true,
		},
		{
			name:        "nested key with wrong type",
			body:        `{"split": "all"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/bills/BL-1/split", bytes.NewBufferString(tt.body))

			var req SplitBillRequest
			err := BindNestedOrFlat(c, "split", &req)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedIDs, req.TransactionIDs)
			if tt.narration != "" {
				require.NotNil(t, req.Narration)
				assert.Equal(t, tt.narration, *req.Narration)
			}
		})
	}
}

func TestBindNestedOrFlat_SettlementAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, body := range []string{
		`{"settlement": {"amount": "150.25", "payment_mode_id": 2}}`,
		`{"amount": 150.25, "payment_mode_id": 2}`,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/bills/BL-1/settlements", bytes.NewBufferString(body))

		var req SettleBillRequest
		require.NoError(t, BindNestedOrFlat(c, "settlement", &req), body)
		assert.True(t, decimal.RequireFromString("150.25").Equal(req.Amount), body)
		assert.Equal(t, uint(2), req.PaymentModeID)
	}
}

func TestBindNestedOrFlat_BodyCanBeReread(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/bills/BL-1/split", bytes.NewBufferString(`{"transaction_ids": [5]}`))

	var first, second SplitBillRequest
	require.NoError(t, BindNestedOrFlat(c, "split", &first))
	require.NoError(t, BindNestedOrFlat(c, "split", &second))
	assert.Equal(t, first, second)
}
