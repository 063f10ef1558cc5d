package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shunea/be-easyreserv-sub000/internal/model"
	"github.com/Shunea/be-easyreserv-sub000/internal/service"

	"github.com/rs/zerolog/log"
)

// NotificationWorker turns queued staff notifications into email jobs.
// The split keeps composition (fast, local) separate from delivery (slow,
// external SMTP behind a circuit breaker).
type NotificationWorker struct {
	dispatcher     *Dispatcher
	frontDeskEmail string
}

func NewNotificationWorker(dispatcher *Dispatcher, frontDeskEmail string) *NotificationWorker {
	return &NotificationWorker{dispatcher: dispatcher, frontDeskEmail: frontDeskEmail}
}

func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) {
	var n service.ReservationOrderNotification
	if err := json.Unmarshal(raw, &n); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}
	if w.frontDeskEmail == "" {
		log.Warn().Msg("notification_worker: no front desk email configured, dropping")
		return
	}

	subject, body := composeNotification(n)
	job := EmailJobPayload{ToEmail: w.frontDeskEmail, Subject: subject, Body: body}
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Error().Err(err).Str("staff_role", n.StaffRole).Msg("notification_worker: failed to enqueue email")
		return
	}
	log.Info().
		Str("staff_role", n.StaffRole).
		Str("tables", n.TableNames).
		Msg("notification_worker: email job enqueued")
}

func composeNotification(n service.ReservationOrderNotification) (subject, body string) {
	switch n.StaffRole {
	case model.RoleWaiter:
		subject = fmt.Sprintf("Order ready — tables %s", n.TableNames)
		body = fmt.Sprintf("An order for tables %s is ready to serve.", n.TableNames)
	case model.RoleBarman:
		subject = fmt.Sprintf("New bar orders — tables %s", n.TableNames)
		body = fmt.Sprintf("New drink orders were placed for tables %s.", n.TableNames)
	default:
		subject = fmt.Sprintf("New kitchen orders — tables %s", n.TableNames)
		body = fmt.Sprintf("New orders were placed for tables %s.", n.TableNames)
		if n.ExistDrinks {
			body += " The submission also includes drinks for the bar."
		}
	}
	return subject, body
}
