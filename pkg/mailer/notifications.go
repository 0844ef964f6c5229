package mailer

import "fmt"

// Notification kinds carried on the queue.
const (
	KindWorkOrderAssigned = "work_order_assigned"
	KindMaintenanceDue    = "maintenance_due"
)

// NotificationJob is the JSON payload put on the RabbitMQ queue. The worker
// renders subject and body from Kind and Data; unknown kinds get a generic
// subject so that nothing is silently dropped.
type NotificationJob struct {
	To   string         `json:"to"`
	Kind string         `json:"kind"`
	Data map[string]any `json:"data,omitempty"`
}

// Subject renders the email subject line for the job.
func (j NotificationJob) Subject() string {
	switch j.Kind {
	case KindWorkOrderAssigned:
		return fmt.Sprintf("Work order %v assigned to you", j.Data["WorkOrderNumber"])
	case KindMaintenanceDue:
		return fmt.Sprintf("Maintenance due: %v", j.Data["ScheduleName"])
	default:
		return "Notification"
	}
}

// TextBody renders a plain-text body. Plain text keeps the worker free of
// template assets; the fields come from the publishing handler.
func (j NotificationJob) TextBody() string {
	switch j.Kind {
	case KindWorkOrderAssigned:
		body := fmt.Sprintf("Hello %v,\n\nWork order %v (%v) has been assigned to you.\nAsset: %v\nPriority: %v\n",
			j.Data["RecipientName"], j.Data["WorkOrderNumber"], j.Data["WorkOrderTitle"],
			j.Data["AssetName"], j.Data["Priority"])
		if due, ok := j.Data["DueDate"]; ok && fmt.Sprintf("%v", due) != "" {
			body += fmt.Sprintf("Due: %v\n", due)
		}
		return body
	case KindMaintenanceDue:
		return fmt.Sprintf("Maintenance schedule %v for asset %v is due on %v.\n",
			j.Data["ScheduleName"], j.Data["AssetName"], j.Data["DueDate"])
	default:
		return "You have a new notification."
	}
}
