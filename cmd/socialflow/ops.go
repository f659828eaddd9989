package main

import (
	"fmt"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/app"
	"SocialFlow/internal/devproxy"
	"SocialFlow/internal/telemetry"
	"SocialFlow/internal/ui"

	"github.com/spf13/cobra"
)

func newDoctorCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and backend reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, gf)
			if err != nil {
				return err
			}
			defer a.Close()

			r := a.Doctor(cmd.Context())
			out := cmd.OutOrStdout()
			base := r.BaseURL
			if base == "" {
				base = "(same origin)"
			}
			fmt.Fprintln(out, ui.Title("socialflow "+app.Version))
			fmt.Fprintf(out, "Mode:        %s\n", r.Mode)
			fmt.Fprintf(out, "Base URL:    %s\n", base)
			fmt.Fprintf(out, "Requests to: %s\n", r.RequestURL)
			fmt.Fprintf(out, "Credentials: %s\n", r.Credentials)
			fmt.Fprintf(out, "Signed in:   %t\n", r.HasToken)
			if r.HealthErr != nil {
				fmt.Fprintln(out, ui.Error("Backend: "+actions.Message(r.HealthErr)))
				return fmt.Errorf("backend unreachable")
			}
			fmt.Fprintln(out, ui.OK("Backend: "+r.Health.Status))
			return nil
		},
	}
}

func newProxyCmd(gf *globalFlags) *cobra.Command {
	var listen, target string
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Forward same-origin /api/* requests to a local backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, gf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.ProxyListen = listen
			}
			if cmd.Flags().Changed("target") {
				cfg.ProxyTarget = target
			}

			logger, closer, err := telemetry.InitLogger(cfg.LogDir, cfg.Debug)
			if err != nil {
				return err
			}
			defer closer.Close()

			p, err := devproxy.New(cfg.ProxyTarget, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forwarding %s/api/* to %s\n", cfg.ProxyListen, cfg.ProxyTarget)
			return p.ListenAndServe(cmd.Context(), cfg.ProxyListen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from SOCIALFLOW_PROXY_LISTEN)")
	cmd.Flags().StringVar(&target, "target", "", "backend origin (default from SOCIALFLOW_PROXY_TARGET)")
	return cmd
}
