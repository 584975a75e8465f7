package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentProcessor settles the amount due on a reservation and returns a
// reference for the transaction.
type PaymentProcessor interface {
	Process(ctx context.Context, r *Reservation, method PaymentMethod) (string, error)
}

// SimulatedProcessor stands in for a payment gateway: it waits for Delay
// and then approves every payment.
type SimulatedProcessor struct {
	Delay time.Duration
}

func (p SimulatedProcessor) Process(ctx context.Context, _ *Reservation, _ PaymentMethod) (string, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "PAY-" + uuid.NewString(), nil
}
