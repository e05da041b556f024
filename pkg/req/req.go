package req

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Один валидатор на процесс: validator кеширует разобранные теги структур.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках валидации поле называется так же, как в форме
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IsValid валидирует структуру типа T.
func IsValid[T any](payload T) error {
	return validate.Struct(payload)
}

// Form разбирает form-encoded (или multipart) тело запроса и возвращает
// значения запрошенных полей. Отсутствующее поле попадает в результат как "".
func Form(r *http.Request, fields ...string) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = r.PostFormValue(field)
	}
	return values, nil
}

// IsValidExcept валидирует структуру, пропуская перечисленные поля
// (имена полей Go-структуры, например "Amount").
func IsValidExcept[T any](payload T, fields ...string) error {
	return validate.StructExcept(payload, fields...)
}
