package workorder

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
	"github.com/zagroshq/cmms-api/pkg/mailer"
)

// NotificationPublisher matches helpers.RabbitPublisher. Publishing is
// best-effort: a dead broker never fails the command.
type NotificationPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// GenerateNumber builds a work order number like WO-20260828-1A2B3C4D.
func GenerateNumber(now time.Time) valueobject.WorkOrderNumber {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	n, _ := valueobject.NewWorkOrderNumber("WO-" + now.UTC().Format("20060102") + "-" + suffix)
	return n
}

type CreateCommand struct {
	Number         string // optional; generated when empty
	Title          string
	Description    string
	AssetID        string
	Type           string
	Priority       int
	CreatedBy      string
	DueDate        *time.Time
	ScheduledStart *time.Time
	EstimatedHours *float64
}

type CreateHandler struct {
	Orders repository.WorkOrderRepository
	Assets repository.AssetRepository
}

func NewCreateHandler(orders repository.WorkOrderRepository, assets repository.AssetRepository) *CreateHandler {
	return &CreateHandler{Orders: orders, Assets: assets}
}

func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (string, error) {
	woType, err := valueobject.ParseWorkOrderType(cmd.Type)
	if err != nil {
		return "", err
	}

	var priority valueobject.WorkOrderPriority
	if cmd.Priority != 0 {
		priority, err = valueobject.NewWorkOrderPriority(cmd.Priority)
		if err != nil {
			return "", err
		}
	}

	if cmd.Title == "" {
		return "", domain.NewValidationError("work order title cannot be empty")
	}

	// The asset reference must resolve before we accept the order.
	if _, err := h.Assets.FindByID(ctx, cmd.AssetID); err != nil {
		return "", err
	}

	var number valueobject.WorkOrderNumber
	if cmd.Number == "" {
		number = GenerateNumber(time.Now())
	} else {
		number, err = valueobject.NewWorkOrderNumber(cmd.Number)
		if err != nil {
			return "", err
		}
	}

	exists, err := h.Orders.ExistsByNumber(ctx, number)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.NewConflictError("work order %s already exists", number)
	}

	w := entity.NewWorkOrder(number, cmd.Title, cmd.Description, cmd.AssetID, woType, priority, cmd.CreatedBy)
	w.DueDate = cmd.DueDate
	w.ScheduledStart = cmd.ScheduledStart
	w.EstimatedHours = cmd.EstimatedHours

	if err := h.Orders.Save(ctx, w); err != nil {
		return "", err
	}
	return w.ID, nil
}

type AssignCommand struct {
	WorkOrderID string
	AssigneeID  string
}

// AssignHandler assigns the order and queues an email notification for the
// assignee.
type AssignHandler struct {
	Orders    repository.WorkOrderRepository
	Users     repository.UserRepository
	Assets    repository.AssetRepository
	Publisher NotificationPublisher
	Logger    *logrus.Logger
}

func NewAssignHandler(orders repository.WorkOrderRepository, users repository.UserRepository, assets repository.AssetRepository, pub NotificationPublisher, logger *logrus.Logger) *AssignHandler {
	return &AssignHandler{Orders: orders, Users: users, Assets: assets, Publisher: pub, Logger: logger}
}

func (h *AssignHandler) Handle(ctx context.Context, cmd AssignCommand) (*DTO, error) {
	w, err := h.Orders.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}
	assignee, err := h.Users.FindByID(ctx, cmd.AssigneeID)
	if err != nil {
		return nil, err
	}
	if err := w.Assign(assignee.ID); err != nil {
		return nil, err
	}
	if err := h.Orders.Save(ctx, w); err != nil {
		return nil, err
	}

	h.notifyAssigned(ctx, w, assignee)
	return FromEntity(w), nil
}

func (h *AssignHandler) notifyAssigned(ctx context.Context, w *entity.WorkOrder, assignee *entity.User) {
	if h.Publisher == nil {
		return
	}
	assetName := w.AssetID
	if a, err := h.Assets.FindByID(ctx, w.AssetID); err == nil {
		assetName = a.Name
	}
	job := mailer.NotificationJob{
		To:   assignee.Email.String(),
		Kind: mailer.KindWorkOrderAssigned,
		Data: map[string]any{
			"RecipientName":   assignee.FullName(),
			"WorkOrderNumber": w.Number.String(),
			"WorkOrderTitle":  w.Title,
			"AssetName":       assetName,
			"Priority":        w.Priority.Int(),
			"DueDate":         formatDue(w.DueDate),
		},
	}
	if err := h.Publisher.PublishJSON(ctx, job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("work_order", w.Number.String()).Warn("notification publish failed")
	}
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type TransitionCommand struct {
	WorkOrderID string
	Action      string // "start", "complete", "cancel"
}

// Transition actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

type TransitionHandler struct {
	Orders repository.WorkOrderRepository
}

func NewTransitionHandler(orders repository.WorkOrderRepository) *TransitionHandler {
	return &TransitionHandler{Orders: orders}
}

func (h *TransitionHandler) Handle(ctx context.Context, cmd TransitionCommand) (*DTO, error) {
	w, err := h.Orders.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}
	switch cmd.Action {
	case ActionStart:
		err = w.Start()
	case ActionComplete:
		err = w.Complete()
	case ActionCancel:
		err = w.Cancel()
	default:
		return nil, domain.NewValidationError("unknown work order action: %q", cmd.Action)
	}
	if err != nil {
		return nil, err
	}
	if err := h.Orders.Save(ctx, w); err != nil {
		return nil, err
	}
	return FromEntity(w), nil
}

type ReprioritizeCommand struct {
	WorkOrderID string
	Priority    int
}

type ReprioritizeHandler struct {
	Orders repository.WorkOrderRepository
}

func NewReprioritizeHandler(orders repository.WorkOrderRepository) *ReprioritizeHandler {
	return &ReprioritizeHandler{Orders: orders}
}

func (h *ReprioritizeHandler) Handle(ctx context.Context, cmd ReprioritizeCommand) (*DTO, error) {
	priority, err := valueobject.NewWorkOrderPriority(cmd.Priority)
	if err != nil {
		return nil, err
	}
	w, err := h.Orders.FindByID(ctx, cmd.WorkOrderID)
	if err != nil {
		return nil, err
	}
	w.Reprioritize(priority)
	if err := h.Orders.Save(ctx, w); err != nil {
		return nil, err
	}
	return FromEntity(w), nil
}

type DeleteCommand struct {
	WorkOrderID string
}

type DeleteHandler struct {
	Orders repository.WorkOrderRepository
}

func NewDeleteHandler(orders repository.WorkOrderRepository) *DeleteHandler {
	return &DeleteHandler{Orders: orders}
}

func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	if _, err := h.Orders.FindByID(ctx, cmd.WorkOrderID); err != nil {
		return err
	}
	return h.Orders.Delete(ctx, cmd.WorkOrderID)
}
