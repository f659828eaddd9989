package actions

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"SocialFlow/internal/api"
	"SocialFlow/internal/backend"
	"SocialFlow/internal/session"
)

// Plan is a subscription tier and its monthly price in KSh
type Plan struct {
	ID          string
	Name        string
	Price       int
	Description string
	Features    []string
	Popular     bool
}

// Plans is the subscription catalogue
var Plans = []Plan{
	{
		ID: session.SubscriptionFree, Name: "Free", Price: 0,
		Description: "Perfect for getting started",
		Features:    []string{"5 AI-generated posts/month", "Basic content calendar", "Brand voice setup", "Email support"},
	},
	{
		ID: session.SubscriptionPro, Name: "Pro", Price: 2500, Popular: true,
		Description: "Best for growing businesses",
		Features:    []string{"Unlimited AI-generated posts", "Advanced content calendar", "AI image generation", "Basic scheduling", "Priority support"},
	},
	{
		ID: session.SubscriptionPremium, Name: "Premium", Price: 5000,
		Description: "For serious marketers",
		Features:    []string{"Everything in Pro", "Auto-posting automation", "Analytics dashboard", "Multi-platform management", "Dedicated account manager"},
	},
}

// FindPlan looks a plan up by id
func FindPlan(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// PaymentStatus is the state of the payment screen
type PaymentStatus string

const (
	PaymentIdle       PaymentStatus = "idle"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSuccess    PaymentStatus = "success"
	PaymentError      PaymentStatus = "error"
)

// Payment drives the M-Pesa checkout: idle → processing → success|error
type Payment struct {
	client *api.Client
	logger *slog.Logger

	mu         sync.Mutex
	status     PaymentStatus
	message    string
	checkoutID string
}

// NewPayment creates an idle payment flow
func NewPayment(client *api.Client, logger *slog.Logger) *Payment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Payment{client: client, logger: logger, status: PaymentIdle}
}

// Status returns the current state and its message
func (p *Payment) Status() (PaymentStatus, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.message
}

// CheckoutID is the backend reference of the last successful push
func (p *Payment) CheckoutID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checkoutID
}

// Reset returns to idle, the "try again" path
func (p *Payment) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = PaymentIdle
	p.message = ""
	p.checkoutID = ""
}

// ValidatePayment checks that planID is a paid plan and phone is present
func ValidatePayment(planID, phone string) (Plan, error) {
	plan, ok := FindPlan(planID)
	switch {
	case !ok:
		return Plan{}, invalid("Unknown plan: " + planID)
	case plan.Price == 0:
		return Plan{}, invalid("The Free plan does not require payment")
	case strings.TrimSpace(phone) == "":
		return Plan{}, invalid("Enter the phone number linked to your M-Pesa account")
	}
	return plan, nil
}

// Pay sends an STK push for planID to phone
func (p *Payment) Pay(ctx context.Context, planID, phone string) (PaymentStatus, error) {
	phone = strings.TrimSpace(phone)
	plan, err := ValidatePayment(planID, phone)
	if err != nil {
		return p.currentStatus(), err
	}

	p.mu.Lock()
	if p.status == PaymentProcessing {
		p.mu.Unlock()
		return PaymentProcessing, ErrInFlight
	}
	p.status = PaymentProcessing
	p.message = ""
	p.mu.Unlock()

	resp, err := p.client.STKPush(ctx, backend.STKPushRequest{Phone: phone, Amount: plan.Price, Plan: plan.ID})

	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case err != nil:
		p.status = PaymentError
		p.message = Message(err)
		p.logger.Warn("stk push failed", "plan", plan.ID, "error", err)
	case !resp.Success:
		p.status = PaymentError
		p.message = "There was an issue processing your payment. Please try again."
		if resp.Message != "" {
			p.message = resp.Message
		}
		p.logger.Info("stk push declined", "plan", plan.ID)
	default:
		p.status = PaymentSuccess
		p.message = "Please check your phone and enter your M-Pesa PIN to complete the payment."
		p.checkoutID = resp.CheckoutRequestID
		p.logger.Info("stk push sent", "plan", plan.ID, "checkout_request_id", resp.CheckoutRequestID)
	}
	return p.status, err
}

func (p *Payment) currentStatus() PaymentStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}
