package domain

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceForm_Valid(t *testing.T) {
	in, err := ParseInvoiceForm(map[string]string{
		FieldCustomerID: "c1",
		FieldAmount:     "45.50",
		FieldStatus:     "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", in.CustomerID)
	assert.Equal(t, 45.5, in.Amount)
	assert.Equal(t, InvoiceStatusPending, in.Status)
	assert.Equal(t, int64(4550), in.AmountInCents())
}

func TestParseInvoiceForm_AllFieldsInvalid(t *testing.T) {
	_, err := ParseInvoiceForm(map[string]string{
		FieldCustomerID: "",
		FieldAmount:     "0",
		FieldStatus:     "bogus",
	})
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{FieldCustomerID, FieldAmount, FieldStatus}, errs.Fields())

	assert.Equal(t, KindInvalidType, errs[0].Kind)
	assert.Equal(t, KindInvalidValue, errs[1].Kind)
	assert.Equal(t, []string{"amount must be greater than 0"}, errs.GetByField(FieldAmount))
	assert.Equal(t, KindInvalidEnum, errs[2].Kind)
}

func TestParseInvoiceForm_MissingFields(t *testing.T) {
	_, err := ParseInvoiceForm(map[string]string{})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	// пустая сумма приводится к 0 и падает на проверке "> 0"
	assert.Equal(t, []string{FieldCustomerID, FieldAmount, FieldStatus}, errs.Fields())
	assert.Equal(t, KindInvalidValue, errs[1].Kind)
}

func TestParseInvoiceForm_Amount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		wantKind ErrorKind
		wantOK   bool
	}{
		{name: "zero", amount: "0", wantKind: KindInvalidValue},
		{name: "negative", amount: "-3.20", wantKind: KindInvalidValue},
		{name: "not a number", amount: "ten", wantKind: KindInvalidType},
		{name: "nan literal", amount: "NaN", wantKind: KindInvalidType},
		{name: "infinity", amount: "Inf", wantKind: KindInvalidType},
		{name: "digit separators", amount: "1_000", wantKind: KindInvalidType},
		{name: "above int column", amount: "21474836.48", wantKind: KindInvalidValue},
		{name: "huge", amount: "1e20", wantKind: KindInvalidValue},
		{name: "padded", amount: " 12 ", wantOK: true},
		{name: "one cent", amount: "0.01", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInvoiceForm(map[string]string{
				FieldCustomerID: "c1",
				FieldAmount:     tt.amount,
				FieldStatus:     "paid",
			})
			if tt.wantOK {
				require.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, FieldAmount, errs[0].Field)
			assert.Equal(t, tt.wantKind, errs[0].Kind)
		})
	}
}

func TestParseInvoiceForm_AmountCeiling(t *testing.T) {
	in, err := ParseInvoiceForm(map[string]string{
		FieldCustomerID: "c1",
		FieldAmount:     strconv.FormatFloat(MaxAmount, 'f', 2, 64),
		FieldStatus:     "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2147483647), in.AmountInCents())

	_, err = ParseInvoiceForm(map[string]string{
		FieldCustomerID: "c1",
		FieldAmount:     "1e20",
		FieldStatus:     "paid",
	})
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"amount must be at most 21474836.47"}, errs.GetByField(FieldAmount))
}

func TestValidationErrors_IsInvalidInput(t *testing.T) {
	_, err := ParseInvoiceForm(map[string]string{})

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(NewNotFoundError("invoice", "x"), ErrInvalidInput))
}

func TestParseInvoiceForm_StatusIsNotDefaulted(t *testing.T) {
	for _, status := range []string{"", "PAID", "Pending", "overdue"} {
		_, err := ParseInvoiceForm(map[string]string{
			FieldCustomerID: "c1",
			FieldAmount:     "1",
			FieldStatus:     status,
		})
		var errs ValidationErrors
		require.ErrorAs(t, err, &errs, "status %q", status)
		assert.Equal(t, []string{FieldStatus}, errs.Fields())
	}
}

func TestToCents_Rounds(t *testing.T) {
	assert.Equal(t, int64(4550), ToCents(45.50))
	assert.Equal(t, int64(1999), ToCents(19.99))
	assert.Equal(t, int64(13), ToCents(0.125))
	assert.Equal(t, int64(100), ToCents(0.999))
}

func TestValidationErrors_FieldMessages(t *testing.T) {
	var errs ValidationErrors
	errs.Add("amount", KindInvalidType, "first")
	errs.Add("status", KindInvalidEnum, "bad status")
	errs.Add("amount", KindInvalidValue, "second")

	assert.Equal(t, map[string][]string{
		"amount": {"first", "second"},
		"status": {"bad status"},
	}, errs.FieldMessages())
	assert.Equal(t, "validation failed: 3 errors", errs.Error())
	assert.Nil(t, ValidationErrors(nil).FieldMessages())
}

func TestOutcome_Invalid(t *testing.T) {
	var errs ValidationErrors
	errs.Add(FieldStatus, KindInvalidEnum, "bad")

	out := Invalid("Missing Fields.", errs)
	assert.Equal(t, OutcomeError, out.Kind)
	assert.True(t, out.IsValidationFailure())
	assert.False(t, Failed("db").IsValidationFailure())
	assert.Equal(t, "redirect", Redirect("/x").Kind.String())
}
