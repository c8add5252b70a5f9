package service

import (
	"context"
	"sync"
	"time"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/events"
	"carrental-portal/internal/logger"
)

const notifyTimeout = 10 * time.Second

// DecisionNotifier emails the renter or owner when an admin approves or
// denies their request. Sends run in the background so the decision returns
// without waiting on the mail provider; failures are only logged.
type DecisionNotifier struct {
	emailSvc EmailService
	wg       sync.WaitGroup
}

func NewDecisionNotifier(emailSvc EmailService) *DecisionNotifier {
	return &DecisionNotifier{emailSvc: emailSvc}
}

// Handle is the hub subscription
func (n *DecisionNotifier) Handle(e events.Event) {
	var send func(ctx context.Context) error
	switch e.Kind {
	case events.RentalDecided:
		req, ok := e.Payload.(domain.RentalRequest)
		if !ok {
			return
		}
		send = func(ctx context.Context) error { return n.emailSvc.SendRentalDecision(ctx, &req) }
	case events.ListingDecided:
		req, ok := e.Payload.(domain.CarListingRequest)
		if !ok {
			return
		}
		send = func(ctx context.Context) error { return n.emailSvc.SendListingDecision(ctx, &req) }
	default:
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			logger.Error("Failed to send decision email", "kind", e.Kind, "requestID", e.ID, "error", err)
		}
	}()
}

// Wait blocks until every queued send has finished or timed out
func (n *DecisionNotifier) Wait() {
	n.wg.Wait()
}
