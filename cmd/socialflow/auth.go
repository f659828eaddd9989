package main

import (
	"bufio"
	"fmt"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/app"
	"SocialFlow/internal/ui"

	"github.com/spf13/cobra"
)

func newLoginCmd(gf *globalFlags) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to SocialFlow",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, gf)
			if err != nil {
				return err
			}
			defer a.Close()

			in := bufio.NewReader(cmd.InOrStdin())
			if email, err = prompt(in, cmd.OutOrStdout(), "Email", email); err != nil {
				return err
			}
			if password, err = promptPassword(cmd.InOrStdin(), in, cmd.OutOrStdout(), "Password", password); err != nil {
				return err
			}
			return userError(a.Auth.Login(cmd.Context(), email, password))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(gf *globalFlags) *cobra.Command {
	var form actions.RegisterForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a SocialFlow account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, gf)
			if err != nil {
				return err
			}
			defer a.Close()

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			for _, f := range []struct {
				label  string
				value  *string
				secret bool
			}{
				{"Full name", &form.Name, false},
				{"Email", &form.Email, false},
				{"Phone (M-Pesa)", &form.Phone, false},
				{"Password", &form.Password, true},
				{"Confirm password", &form.ConfirmPassword, true},
			} {
				if f.secret {
					*f.value, err = promptPassword(cmd.InOrStdin(), in, out, f.label, *f.value)
				} else {
					*f.value, err = prompt(in, out, f.label, *f.value)
				}
				if err != nil {
					return err
				}
			}
			return userError(a.Auth.Register(cmd.Context(), form))
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number used for M-Pesa")
	cmd.Flags().StringVar(&form.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password again")
	return cmd
}

func newLogoutCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, gf)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: withSession(gf, func(cmd *cobra.Command, a *app.App, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ui.User(a.Store().User()))
			return nil
		}),
	}
}

func newDashboardCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, gf)
			if err != nil {
				return err
			}
			defer a.Close()
			return userError(a.Run(cmd.Context()))
		},
	}
}
