package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Dhoini/invoice-dashboard/internal/cache"
	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/kafka"
	"github.com/Dhoini/invoice-dashboard/internal/metrics"
	"github.com/Dhoini/invoice-dashboard/internal/repository"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
)

// InvoicesPath маршрут списка счетов: его кеш сбрасывается после каждой
// успешной мутации, на него же перенаправляется клиент после create/update
const InvoicesPath = "/dashboard/invoices"

// Сообщения, которые видит пользователь
const (
	MsgCreateInvalid  = "Missing Fields. Failed to Create Invoice."
	MsgCreateDBFailed = "Database Error: Failed to Create Invoice."
	MsgUpdateInvalid  = "Missing Fields. Failed to Update Invoice."
	MsgUpdateDBFailed = "Database Error: Failed to Update Invoice."
	MsgDeleteDBFailed = "Database Error: Failed to Delete Invoice."
)

// Имена операций для метрик и логов
const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// InvoiceService интерфейс сервиса для работы со счетами
type InvoiceService interface {
	CreateInvoice(ctx context.Context, form map[string]string) domain.Outcome
	UpdateInvoice(ctx context.Context, id string, form map[string]string) domain.Outcome
	DeleteInvoice(ctx context.Context, id string) domain.Outcome
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (domain.Invoice, error)
}

type invoiceService struct {
	repo     repository.InvoiceRepository
	routes   cache.RouteCache
	producer kafka.Producer
	metrics  metrics.InvoiceMetrics
	log      *logger.Logger
	now      func() time.Time
}

// Option настройка сервиса счетов
type Option func(*invoiceService)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *invoiceService) { s.now = now }
}

// NewInvoiceService создает новый сервис для работы со счетами
func NewInvoiceService(
	repo repository.InvoiceRepository,
	routes cache.RouteCache,
	producer kafka.Producer,
	m metrics.InvoiceMetrics,
	log *logger.Logger,
	opts ...Option,
) InvoiceService {
	s := &invoiceService{
		repo:     repo,
		routes:   routes,
		producer: producer,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *invoiceService) CreateInvoice(ctx context.Context, form map[string]string) domain.Outcome {
	in, err := domain.ParseInvoiceForm(form)
	if err != nil {
		return s.invalid(opCreate, MsgCreateInvalid, err)
	}

	now := s.now().UTC()
	date := now.Format(domain.DateLayout)

	if err := s.repo.Create(ctx, in, date); err != nil {
		s.log.Errorw("Failed to create invoice", "error", err, "customerID", in.CustomerID)
		s.metrics.IncMutation(opCreate, metrics.ResultDatabaseError)
		return domain.Failed(MsgCreateDBFailed)
	}

	s.log.Infow("Invoice created", "customerID", in.CustomerID, "amount", in.AmountInCents(), "status", in.Status, "date", date)
	s.metrics.IncMutation(opCreate, metrics.ResultSuccess)
	s.metrics.ObserveAmount(opCreate, in.AmountInCents())

	s.revalidate(ctx, InvoicesPath)
	s.publish(ctx, s.event(kafka.EventInvoiceCreated, "", &in, now))
	return domain.Redirect(InvoicesPath)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, form map[string]string) domain.Outcome {
	in, err := domain.ParseInvoiceForm(form)
	if err != nil {
		return s.invalid(opUpdate, MsgUpdateInvalid, err)
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		s.log.Errorw("Failed to update invoice", "error", err, "invoiceID", id)
		s.metrics.IncMutation(opUpdate, metrics.ResultDatabaseError)
		return domain.Failed(MsgUpdateDBFailed)
	}

	s.log.Infow("Invoice updated", "invoiceID", id, "amount", in.AmountInCents(), "status", in.Status)
	s.metrics.IncMutation(opUpdate, metrics.ResultSuccess)
	s.metrics.ObserveAmount(opUpdate, in.AmountInCents())

	s.revalidate(ctx, InvoicesPath)
	s.publish(ctx, s.event(kafka.EventInvoiceUpdated, id, &in, s.now().UTC()))
	return domain.Redirect(InvoicesPath)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) domain.Outcome {
	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Счет уже удален: список все равно сбрасываем
		s.log.Warnw("Invoice to delete not found", "invoiceID", id)
	case err != nil:
		s.log.Errorw("Failed to delete invoice", "error", err, "invoiceID", id)
		s.metrics.IncMutation(opDelete, metrics.ResultDatabaseError)
		return domain.Failed(MsgDeleteDBFailed)
	default:
		s.log.Infow("Invoice deleted", "invoiceID", id)
	}

	s.metrics.IncMutation(opDelete, metrics.ResultSuccess)
	s.revalidate(ctx, InvoicesPath)
	if err == nil {
		s.publish(ctx, s.event(kafka.EventInvoiceDeleted, id, nil, s.now().UTC()))
	}
	return domain.Done()
}

// ListInvoices возвращает список счетов (сначала из кеша маршрута, потом из БД)
func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	cached, err := s.routes.Get(ctx, InvoicesPath)
	if err != nil {
		s.log.Warnw("Error getting invoices from cache", "error", err)
		// Продолжаем выполнение при ошибке кеша
	}
	if cached != nil {
		var invoices []domain.Invoice
		decodeErr := json.Unmarshal(cached, &invoices)
		if decodeErr == nil {
			s.log.Debugw("Invoices found in cache", "count", len(invoices))
			return invoices, nil
		}
		s.log.Warnw("Failed to unmarshal cached invoices", "error", decodeErr)
	}

	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(invoices)
	if err == nil {
		if err := s.routes.Set(ctx, InvoicesPath, data); err != nil {
			s.log.Warnw("Failed to cache invoices", "error", err)
		}
	}

	return invoices, nil
}

// GetInvoice возвращает счет по ID
func (s *invoiceService) GetInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Invoice{}, domain.NewNotFoundError("invoice", id)
		}
		return domain.Invoice{}, err
	}
	return invoice, nil
}

func (s *invoiceService) invalid(op, message string, err error) domain.Outcome {
	var errs domain.ValidationErrors
	if !errors.As(err, &errs) {
		errs.Add("form", domain.KindInvalidType, err.Error())
	}
	s.log.Debugw("Invoice form rejected", "operation", op, "fields", errs.Fields())
	s.metrics.IncMutation(op, metrics.ResultValidationError)
	return domain.Invalid(message, errs)
}

// revalidate сбрасывает кеш маршрута. Ошибка кеша не отменяет уже
// выполненную запись, поэтому только логируется.
func (s *invoiceService) revalidate(ctx context.Context, path string) {
	err := s.routes.Invalidate(ctx, path)
	s.metrics.IncCacheInvalidation(path, err == nil)
	if err != nil {
		s.log.Warnw("Failed to invalidate route cache", "error", err, "path", path)
	}
}

func (s *invoiceService) event(eventType, id string, in *domain.InvoiceInput, at time.Time) kafka.InvoiceEvent {
	event := kafka.NewInvoiceEvent(eventType, at)
	event.InvoiceID = id
	if in != nil {
		event.CustomerID = in.CustomerID
		event.Amount = in.AmountInCents()
		event.Status = string(in.Status)
	}
	return event
}

func (s *invoiceService) publish(ctx context.Context, event kafka.InvoiceEvent) {
	if err := s.producer.PublishInvoiceEvent(ctx, event); err != nil {
		s.log.Warnw("Failed to publish invoice event", "error", err, "type", event.Type)
	}
}
