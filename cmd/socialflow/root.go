package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/app"
	"SocialFlow/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// globalFlags override values loaded from the environment
type globalFlags struct {
	mode        string
	apiURL      string
	credentials string
	dataDir     string
	logDir      string
	timeout     time.Duration
	debug       bool
	envFile     string
}

func newRootCmd() *cobra.Command {
	var gf globalFlags

	root := &cobra.Command{
		Use:   "socialflow",
		Short: "AI social media content for your business",
		Long: `socialflow signs you in to SocialFlow, generates posts and images for your
brand, keeps your content calendar and handles M-Pesa subscription payments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gf.mode, "mode", "", "build mode (development|production)")
	pf.StringVar(&gf.apiURL, "api-url", "", "backend origin used in production mode")
	pf.StringVar(&gf.credentials, "credentials", "", "token storage (file|sqlite|memory)")
	pf.StringVar(&gf.dataDir, "data-dir", "", "directory for the token file or database")
	pf.StringVar(&gf.logDir, "log-dir", "", "directory for log, trace and metric files")
	pf.DurationVar(&gf.timeout, "timeout", 0, "request timeout")
	pf.BoolVar(&gf.debug, "debug", false, "enable debug logging")
	pf.StringVar(&gf.envFile, "env-file", ".env", "optional dotenv file")

	root.AddCommand(
		newLoginCmd(&gf),
		newRegisterCmd(&gf),
		newLogoutCmd(&gf),
		newWhoamiCmd(&gf),
		newGenerateCmd(&gf),
		newImagesCmd(&gf),
		newBrandCmd(&gf),
		newContentCmd(&gf),
		newCalendarCmd(&gf),
		newPayCmd(&gf),
		newSubscriptionCmd(&gf),
		newDoctorCmd(&gf),
		newProxyCmd(&gf),
		newDashboardCmd(&gf),
	)
	return root
}

// loadConfig reads the environment and applies flags that were set
func loadConfig(cmd *cobra.Command, gf *globalFlags) (config.Config, error) {
	cfg, err := config.Load(gf.envFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = config.ParseMode(gf.mode)
	}
	if flags.Changed("api-url") {
		cfg.APIURL = gf.apiURL
	}
	if flags.Changed("credentials") {
		cfg.Credentials = gf.credentials
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = gf.dataDir
	}
	if flags.Changed("log-dir") {
		cfg.LogDir = gf.logDir
	}
	if flags.Changed("timeout") {
		cfg.Timeout = gf.timeout
	}
	if flags.Changed("debug") {
		cfg.Debug = gf.debug
	}
	return cfg, cfg.Validate()
}

// openApp builds the client for a command; the caller closes it
func openApp(cmd *cobra.Command, gf *globalFlags) (*app.App, error) {
	cfg, err := loadConfig(cmd, gf)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg,
		app.WithOutput(cmd.OutOrStdout()),
		app.WithInput(cmd.InOrStdin()),
	)
}

// withSession runs fn after the auth gate lets the user through
func withSession(gf *globalFlags, fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, gf)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Authenticate(cmd.Context()); err != nil {
			return err
		}
		return userError(fn(cmd, a, args))
	}
}

// userError turns action errors into the message the user sees
func userError(err error) error {
	if err == nil || app.IsRedirect(err) {
		return err
	}
	return fmt.Errorf("%s", actions.Message(err))
}

// prompt reads a line from in when value is empty
func prompt(in *bufio.Reader, out io.Writer, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword is prompt without echo when src is a terminal
func promptPassword(src io.Reader, in *bufio.Reader, out io.Writer, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	f, ok := src.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(in, out, label, value)
	}
	fmt.Fprintf(out, "%s: ", label)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}
