package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/app"
	"SocialFlow/internal/ui"

	"github.com/spf13/cobra"
)

func newPayCmd(gf *globalFlags) *cobra.Command {
	var phone string
	cmd := &cobra.Command{
		Use:   "pay <pro|premium>",
		Short: "Pay for a plan with M-Pesa",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			out := cmd.OutOrStdout()
			var err error
			if phone, err = prompt(bufio.NewReader(cmd.InOrStdin()), out, "M-Pesa phone number", phone); err != nil {
				return err
			}
			return pay(cmd.Context(), out, a.Payment, args[0], phone)
		}),
	}
	cmd.Flags().StringVar(&phone, "phone", "", "phone number linked to M-Pesa")
	return cmd
}

// pay shows the processing panel only once the plan and phone are valid
func pay(ctx context.Context, out io.Writer, p *actions.Payment, planID, phone string) error {
	if _, err := actions.ValidatePayment(planID, phone); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.Payment(actions.PaymentProcessing, ""))
	status, err := p.Pay(ctx, planID, phone)
	if status != actions.PaymentSuccess && status != actions.PaymentError {
		return err
	}
	_, msg := p.Status()
	fmt.Fprintln(out, ui.Payment(status, msg))
	if status == actions.PaymentError {
		return fmt.Errorf("payment failed")
	}
	return nil
}

func newSubscriptionCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Show your plan and the available plans",
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			plan, expiry, err := a.Subscriptions.Current(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			line := "Current plan: " + ui.PlanName(plan)
			if expiry != "" {
				line += " (until " + expiry + ")"
			}
			fmt.Fprintln(out, ui.Title(line))
			fmt.Fprintln(out, ui.Plans(plan))
			return nil
		}),
	}

	activate := &cobra.Command{
		Use:   "activate <free|pro|premium>",
		Short: "Switch the account to a plan",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			expiry, err := a.Subscriptions.Activate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			msg := "Subscription activated: " + ui.PlanName(args[0])
			if expiry != "" {
				msg += " until " + expiry
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.OK(msg))
			return nil
		}),
	}
	cmd.AddCommand(activate)
	return cmd
}
