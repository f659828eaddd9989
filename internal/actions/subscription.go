package actions

import (
	"context"
	"log/slog"

	"SocialFlow/internal/api"
	"SocialFlow/internal/session"
)

// Subscriptions reads and changes the account plan
type Subscriptions struct {
	client *api.Client
	store  *session.Store
	logger *slog.Logger

	activate Guard
}

// NewSubscriptions creates the subscription actions
func NewSubscriptions(client *api.Client, store *session.Store, logger *slog.Logger) *Subscriptions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscriptions{client: client, store: store, logger: logger}
}

// Current returns the plan id and expiry, mirroring them onto the session user
func (s *Subscriptions) Current(ctx context.Context) (plan, expiry string, err error) {
	resp, err := s.client.Subscription(ctx)
	if err != nil {
		return "", "", err
	}
	s.apply(resp.Plan, resp.Expiry)
	return resp.Plan, resp.Expiry, nil
}

// Activate switches the account to planID
func (s *Subscriptions) Activate(ctx context.Context, planID string) (string, error) {
	if _, ok := FindPlan(planID); !ok {
		return "", invalid("Unknown plan: " + planID)
	}

	var expiry string
	err := s.activate.Run(ctx, func(ctx context.Context) error {
		resp, err := s.client.ActivateSubscription(ctx, planID)
		if err != nil {
			return err
		}
		if !resp.Success {
			return invalid("Subscription could not be activated")
		}
		expiry = resp.Expiry
		s.apply(resp.Plan, resp.Expiry)
		return nil
	})
	if err != nil {
		s.logger.Warn("subscription activation failed", "plan", planID, "error", err)
		return "", err
	}
	s.logger.Info("subscription activated", "plan", planID, "expiry", expiry)
	return expiry, nil
}

func (s *Subscriptions) apply(plan, expiry string) {
	u := s.store.User()
	if u == nil {
		return
	}
	u.Subscription = plan
	u.SubscriptionExpiry = expiry
	s.store.SetUser(u)
}
