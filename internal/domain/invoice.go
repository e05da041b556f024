package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Dhoini/invoice-dashboard/pkg/req"
	"github.com/go-playground/validator/v10"
)

// InvoiceStatus статус счета
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid сообщает, входит ли статус в допустимый набор
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Имена полей формы счета
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// InvoiceFormFields поля формы в порядке их проверки
var InvoiceFormFields = []string{FieldCustomerID, FieldAmount, FieldStatus}

// DateLayout формат даты счета (ISO, только дата)
const DateLayout = "2006-01-02"

const (
	msgCustomerRequired = "Please select a customer."
	msgAmountNotNumber  = "Expected number, received nan"
	msgAmountPositive   = "amount must be greater than 0"
	msgAmountTooLarge   = "amount must be at most 21474836.47"
	msgStatusEnum       = "Invalid enum value. Expected 'pending' | 'paid'"
)

// Invoice представляет собой сохраненный счет
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Amount     int64         `json:"amount"` // в центах
	Status     InvoiceStatus `json:"status"`
	Date       string        `json:"date"`
}

// InvoiceInput проверенные и приведенные к типам данные формы счета
type InvoiceInput struct {
	CustomerID string
	Amount     float64
	Status     InvoiceStatus
}

// AmountInCents сумма счета в центах
func (in InvoiceInput) AmountInCents() int64 {
	return ToCents(in.Amount)
}

// MaxAmount наибольшая сумма, которая в центах помещается в колонку amount INT
const MaxAmount = float64(math.MaxInt32) / 100

// ToCents переводит денежную сумму в целые центы с округлением до ближайшего
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// invoiceForm описывает правила проверки формы счета
type invoiceForm struct {
	CustomerID string  `form:"customerId" validate:"required"`
	Amount     float64 `form:"amount" validate:"gt=0,lte=21474836.47"`
	Status     string  `form:"status" validate:"oneof=pending paid"`
}

// ParseInvoiceForm проверяет сырые значения формы и приводит их к типам.
// Возвращает ValidationErrors, если хотя бы одно поле не прошло проверку;
// проверяются все поля, ошибки накапливаются.
func ParseInvoiceForm(form map[string]string) (InvoiceInput, error) {
	var errs ValidationErrors

	payload := invoiceForm{
		CustomerID: form[FieldCustomerID],
		Status:     form[FieldStatus],
	}

	// Приведение суммы: пустая строка становится 0, не число дает ошибку типа
	amount, coerced := coerceAmount(form[FieldAmount])
	payload.Amount = amount

	var err error
	if coerced {
		err = req.IsValid(payload)
	} else {
		err = req.IsValidExcept(payload, "Amount")
	}

	byField := make(map[string]ValidationError)
	if !coerced {
		byField[FieldAmount] = ValidationError{Field: FieldAmount, Kind: KindInvalidType, Message: msgAmountNotNumber}
	}
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return InvoiceInput{}, err
		}
		for _, fe := range fieldErrs {
			byField[fe.Field()] = toValidationError(fe)
		}
	}

	for _, field := range InvoiceFormFields {
		if ve, ok := byField[field]; ok {
			errs = append(errs, ve)
		}
	}
	if errs.HasErrors() {
		return InvoiceInput{}, errs
	}

	return InvoiceInput{
		CustomerID: payload.CustomerID,
		Amount:     payload.Amount,
		Status:     InvoiceStatus(payload.Status),
	}, nil
}

func coerceAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	// ParseFloat допускает разделители "1_000", форма их не принимает
	if strings.Contains(raw, "_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func toValidationError(fe validator.FieldError) ValidationError {
	switch fe.Field() {
	case FieldCustomerID:
		return ValidationError{Field: FieldCustomerID, Kind: KindInvalidType, Message: msgCustomerRequired}
	case FieldAmount:
		if fe.Tag() == "lte" {
			return ValidationError{Field: FieldAmount, Kind: KindInvalidValue, Message: msgAmountTooLarge}
		}
		return ValidationError{Field: FieldAmount, Kind: KindInvalidValue, Message: msgAmountPositive}
	case FieldStatus:
		return ValidationError{Field: FieldStatus, Kind: KindInvalidEnum, Message: msgStatusEnum}
	default:
		return ValidationError{Field: fe.Field(), Kind: KindInvalidValue, Message: fe.Error()}
	}
}
