// Package ui renders SocialFlow state for the terminal.
package ui

import (
	"fmt"
	"strings"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/calendar"
	"SocialFlow/internal/session"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette
var (
	Primary     = lipgloss.Color("#6366F1") // indigo
	Accent      = lipgloss.Color("#EC4899") // pink
	Muted       = lipgloss.Color("#9CA3AF")
	Destructive = lipgloss.Color("#EF4444")
	Success     = lipgloss.Color("#22C55E")
	Warning     = lipgloss.Color("#F59E0B")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	labelStyle   = lipgloss.NewStyle().Foreground(Muted)
	errorStyle   = lipgloss.NewStyle().Foreground(Destructive)
	successStyle = lipgloss.NewStyle().Foreground(Success)
	warnStyle    = lipgloss.NewStyle().Foreground(Warning)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
	popularStyle = cardStyle.BorderForeground(Accent)
	todayStyle   = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	busyDayStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
)

// Title renders a section heading
func Title(s string) string {
	return titleStyle.Render(s)
}

// Error renders an inline error message
func Error(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// OK renders a confirmation
func OK(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// Hint renders secondary text
func Hint(msg string) string {
	return labelStyle.Render(msg)
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label+":") + " " + value
}

// User renders the signed-in account
func User(u *session.User) string {
	if u == nil {
		return Hint("Not signed in")
	}
	lines := []string{
		Title(displayName(u)),
		field("Email", u.Email),
		field("Plan", PlanName(u.Subscription)),
	}
	if u.SubscriptionExpiry != "" {
		lines = append(lines, field("Renews", u.SubscriptionExpiry))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func displayName(u *session.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// PlanName is the display name of a subscription id
func PlanName(id string) string {
	if p, ok := actions.FindPlan(id); ok {
		return p.Name
	}
	return actions.Plans[0].Name
}

// Brand renders the brand profile
func Brand(b *session.BrandProfile) string {
	if b == nil {
		return Hint("No brand profile yet. Run `socialflow brand set` to create one.")
	}
	swatches := make([]string, 0, len(b.BrandColors))
	for _, c := range b.BrandColors {
		swatches = append(swatches, lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■ "+c))
	}
	return cardStyle.Render(strings.Join([]string{
		Title(b.BusinessName),
		field("Industry", b.Industry),
		field("Tone", b.Tone),
		field("Audience", b.TargetAudience),
		field("Description", b.Description),
		field("Colors", strings.Join(swatches, " ")),
	}, "\n"))
}

// Variations renders generated post text, numbered
func Variations(texts []string) string {
	var sb strings.Builder
	for i, text := range texts {
		sb.WriteString(cardStyle.Render(fmt.Sprintf("%s\n%s", Title(fmt.Sprintf("Variation %d", i+1)), text)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Images renders generated image URLs
func Images(urls []string) string {
	lines := make([]string, len(urls))
	for i, u := range urls {
		lines[i] = fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("[%d]", i+1)), u)
	}
	return strings.Join(lines, "\n")
}

// Contents renders a content list, one line per post
func Contents(cs []session.Content) string {
	if len(cs) == 0 {
		return Hint("No content yet")
	}
	lines := make([]string, len(cs))
	for i, c := range cs {
		when := calendar.DateOf(c).Format("2006-01-02 15:04")
		lines[i] = fmt.Sprintf("%s  %-9s %-9s %s  %s",
			labelStyle.Render("#"+c.ID), c.Platform, c.Status, labelStyle.Render(when), truncate(c.Body, 60))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Calendar renders a Sunday-first month grid. Days with posts show the
// post count; today is highlighted.
func Calendar(m calendar.Month, grid []calendar.Day, today func(d calendar.Day) bool) string {
	var sb strings.Builder
	sb.WriteString(Title(m.Title()))
	sb.WriteString("\n")
	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-6s", wd)))
	}
	sb.WriteString("\n")

	for _, week := range calendar.Weeks(grid) {
		for _, d := range week {
			if d.IsPadding() {
				sb.WriteString(strings.Repeat(" ", 6))
				continue
			}
			cell := fmt.Sprintf("%2d", d.Date.Day())
			if n := len(d.Contents); n > 0 {
				cell += fmt.Sprintf("•%d", n)
			}
			cell = fmt.Sprintf("%-6s", cell)
			switch {
			case today != nil && today(d):
				cell = todayStyle.Render(cell)
			case len(d.Contents) > 0:
				cell = busyDayStyle.Render(cell)
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Plans renders the subscription catalogue, marking the current plan
func Plans(current string) string {
	cards := make([]string, 0, len(actions.Plans))
	for _, p := range actions.Plans {
		head := Title(p.Name)
		if p.Popular {
			head += " " + lipgloss.NewStyle().Foreground(Accent).Render("Most Popular")
		}
		price := "Free"
		if p.Price > 0 {
			price = fmt.Sprintf("KSh %d/month", p.Price)
		}
		lines := []string{head, price, Hint(p.Description)}
		for _, f := range p.Features {
			lines = append(lines, "• "+f)
		}
		if p.ID == current {
			lines = append(lines, OK("Current plan"))
		}
		style := cardStyle
		if p.Popular {
			style = popularStyle
		}
		cards = append(cards, style.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// Payment renders the payment state
func Payment(status actions.PaymentStatus, message string) string {
	switch status {
	case actions.PaymentProcessing:
		return warnStyle.Render("Processing payment…")
	case actions.PaymentSuccess:
		return OK("Payment initiated. " + message)
	case actions.PaymentError:
		return Error("Payment failed. " + message)
	default:
		return Hint("Select a plan and enter your M-Pesa phone number")
	}
}
