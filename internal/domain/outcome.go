package domain

// OutcomeKind результат выполнения мутации, который HTTP-обработчик
// переводит в ответ
type OutcomeKind int

const (
	// OutcomeDone операция выполнена, перенаправление не требуется
	OutcomeDone OutcomeKind = iota
	// OutcomeRedirect операция выполнена, клиента нужно перенаправить на Path
	OutcomeRedirect
	// OutcomeError операция не выполнена, подробности в State
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDone:
		return "done"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// ActionState состояние формы, возвращаемое клиенту при ошибке
type ActionState struct {
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Outcome итог операции над счетом
type Outcome struct {
	Kind  OutcomeKind
	Path  string
	State ActionState
}

// Redirect создает успешный итог с перенаправлением
func Redirect(path string) Outcome {
	return Outcome{Kind: OutcomeRedirect, Path: path}
}

// Done создает успешный итог без перенаправления
func Done() Outcome {
	return Outcome{Kind: OutcomeDone}
}

// Failed создает итог с общей ошибкой
func Failed(message string) Outcome {
	return Outcome{Kind: OutcomeError, State: ActionState{Message: message}}
}

// Invalid создает итог с ошибками валидации по полям
func Invalid(message string, errs ValidationErrors) Outcome {
	return Outcome{Kind: OutcomeError, State: ActionState{Message: message, Errors: errs.FieldMessages()}}
}

// IsValidationFailure сообщает, что итог содержит ошибки полей формы
func (o Outcome) IsValidationFailure() bool {
	return o.Kind == OutcomeError && len(o.State.Errors) > 0
}
