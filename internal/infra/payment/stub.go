package payment

import (
	"context"
	"strings"

	"ticketbooth/internal/pkg/clock"
	"ticketbooth/internal/pkg/config"
	"ticketbooth/internal/usecase/shared"

	"github.com/google/uuid"
)

// Card number that always declines, for tests and demos.
const alwaysDeclineNumber = "4000000000000002"

// StubAuthorizer simulates a payment gateway: it validates card shape and
// expiry locally and approves everything else. No real charge ever happens.
type StubAuthorizer struct {
	declineAll bool
	clock      clock.Clock
}

func NewStubAuthorizer(cfg config.PaymentConfig, clk clock.Clock) shared.PaymentAuthorizer {
	return &StubAuthorizer{declineAll: cfg.DeclineAll, clock: clk}
}

func (s *StubAuthorizer) Authorize(_ context.Context, req shared.PaymentRequest) (shared.PaymentResult, error) {
	if reason, ok := s.validateCard(req.Card); !ok {
		return shared.PaymentResult{Status: shared.PaymentDeclined, Reason: reason}, nil
	}

	if s.declineAll || cardNumber(req.Card) == alwaysDeclineNumber {
		return shared.PaymentResult{Status: shared.PaymentDeclined, Reason: "card declined"}, nil
	}

	return shared.PaymentResult{
		Status:    shared.PaymentApproved,
		Reference: "stub-" + uuid.NewString(),
	}, nil
}

func (s *StubAuthorizer) validateCard(card shared.CardDetails) (string, bool) {
	number := cardNumber(card)
	if len(number) < 13 || len(number) > 19 || !allDigits(number) {
		return "invalid card number", false
	}
	if len(card.CVC) < 3 || len(card.CVC) > 4 || !allDigits(card.CVC) {
		return "invalid cvc", false
	}
	if card.ExpMonth < 1 || card.ExpMonth > 12 {
		return "invalid expiry", false
	}

	now := s.clock.Now()
	if card.ExpYear < now.Year() || (card.ExpYear == now.Year() && card.ExpMonth < int(now.Month())) {
		return "card expired", false
	}

	return "", true
}

func cardNumber(card shared.CardDetails) string {
	number := strings.ReplaceAll(card.Number, " ", "")
	return strings.ReplaceAll(number, "-", "")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
