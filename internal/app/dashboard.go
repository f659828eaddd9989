package app

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/backend"
	"SocialFlow/internal/calendar"
	"SocialFlow/internal/ui"
)

// dashboard is one interactive page session
type dashboard struct {
	app   *App
	month calendar.Month
	now   func() time.Time
}

// Run opens the interactive dashboard. The auth gate runs first; when it
// redirects, Run returns authgate.ErrRedirect without reading input.
func (a *App) Run(ctx context.Context) error {
	scope := actions.NewScope(ctx)
	defer scope.Close()
	ctx = scope.Context()

	fmt.Fprintln(a.out, ui.Hint("Checking your session…"))
	if err := a.Authenticate(ctx); err != nil {
		return err
	}
	if err := a.Hydrate(ctx); err != nil && !IsRedirect(err) {
		fmt.Fprintln(a.out, ui.Error(actions.Message(err)))
	}

	d := &dashboard{app: a, now: time.Now}
	d.month = calendar.MonthOf(d.now())

	fmt.Fprintln(a.out, ui.Title("=== SocialFlow ==="))
	fmt.Fprintln(a.out, ui.User(a.store.User()))
	fmt.Fprintln(a.out, "Type /help for commands, /quit to exit")
	fmt.Fprintln(a.out)

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if !strings.HasPrefix(input, "/") {
			fmt.Fprintln(a.out, ui.Hint("Commands start with /. Type /help for the list."))
			continue
		}

		shouldQuit, err := d.handleCommand(ctx, input)
		if err != nil {
			fmt.Fprintln(a.out, ui.Error(actions.Message(err)))
			a.logger.Info("command error", "command", strings.Fields(input)[0], "error", err)
		}
		if shouldQuit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Fprintln(a.out, "Goodbye!")
	return nil
}

// handleCommand handles dashboard commands
func (d *dashboard) handleCommand(ctx context.Context, cmd string) (bool, error) {
	a := d.app
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return false, nil
	}
	args := parts[1:]

	switch parts[0] {
	case "/quit", "/exit":
		return true, nil

	case "/whoami":
		fmt.Fprintln(a.out, ui.User(a.store.User()))
		return false, nil

	case "/generate":
		req := actions.ContentRequest{}
		if len(args) > 0 && slices.Contains(backend.Platforms, args[0]) {
			req.Platform = args[0]
			args = args[1:]
		}
		if b := a.store.Snapshot().Brand; b != nil {
			req.Tone = b.Tone
		}
		req.Topic = strings.Join(args, " ")
		texts, err := a.Generator.Content(ctx, req, false)
		if err != nil {
			return false, err
		}
		fmt.Fprint(a.out, ui.Variations(texts))
		return false, nil

	case "/images":
		style := ""
		if len(args) > 0 && slices.Contains(backend.ImageStyles, args[0]) {
			style = args[0]
			args = args[1:]
		}
		urls, err := a.Generator.Images(ctx, strings.Join(args, " "), style)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(a.out, ui.Images(urls))
		return false, nil

	case "/brand":
		fmt.Fprintln(a.out, ui.Brand(a.store.Snapshot().Brand))
		return false, nil

	case "/content":
		fmt.Fprintln(a.out, ui.Contents(a.store.Snapshot().Contents))
		return false, nil

	case "/calendar":
		if len(args) > 0 {
			switch args[0] {
			case "prev":
				d.month = d.month.Prev()
			case "next":
				d.month = d.month.Next()
			case "today":
				d.month = calendar.MonthOf(d.now())
			default:
				return false, fmt.Errorf("usage: /calendar [prev|next|today]")
			}
		}
		grid := calendar.Grid(d.month, a.store.Snapshot().Contents)
		today := d.now()
		fmt.Fprint(a.out, ui.Calendar(d.month, grid, func(day calendar.Day) bool {
			return calendar.SameDay(day.Date, today, d.month.First().Location())
		}))
		return false, nil

	case "/plans":
		current := ""
		if u := a.store.User(); u != nil {
			current = u.Subscription
		}
		fmt.Fprintln(a.out, ui.Plans(current))
		return false, nil

	case "/pay":
		if len(args) < 2 {
			return false, fmt.Errorf("usage: /pay <pro|premium> <phone>")
		}
		status, err := a.Payment.Pay(ctx, args[0], args[1])
		_, msg := a.Payment.Status()
		if err != nil && status != actions.PaymentError {
			return false, err
		}
		fmt.Fprintln(a.out, ui.Payment(status, msg))
		a.Payment.Reset()
		return false, nil

	case "/refresh":
		if err := a.Hydrate(ctx); err != nil {
			return false, err
		}
		fmt.Fprintln(a.out, ui.OK(fmt.Sprintf("Loaded %d posts", len(a.store.Snapshot().Contents))))
		return false, nil

	case "/logout":
		if err := a.Logout(ctx); err != nil {
			return false, err
		}
		return true, nil

	case "/help":
		fmt.Fprintln(a.out, "Available commands:")
		fmt.Fprintln(a.out, "  /generate [platform] <topic>  - Generate post variations")
		fmt.Fprintln(a.out, "  /images [style] <prompt>      - Generate images")
		fmt.Fprintln(a.out, "  /brand                        - Show your brand profile")
		fmt.Fprintln(a.out, "  /content                      - List your content")
		fmt.Fprintln(a.out, "  /calendar [prev|next|today]   - Show the content calendar")
		fmt.Fprintln(a.out, "  /plans                        - Show subscription plans")
		fmt.Fprintln(a.out, "  /pay <plan> <phone>           - Pay for a plan with M-Pesa")
		fmt.Fprintln(a.out, "  /refresh                      - Reload brand and content")
		fmt.Fprintln(a.out, "  /whoami                       - Show the signed-in account")
		fmt.Fprintln(a.out, "  /logout                       - Sign out")
		fmt.Fprintln(a.out, "  /quit, /exit                  - Leave the dashboard")
		fmt.Fprintln(a.out, "  /help                         - Show this help message")
		return false, nil

	default:
		return false, fmt.Errorf("unknown command: %s", parts[0])
	}
}
