package status

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/avelezco/redbag-claimer/internal/application"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(statuses []application.AccountStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Red Bag Claim Pool"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.AccountStatus, s styles) string {
	title := s.account.Render(fmt.Sprintf("%s (%s)", maskHandle(status.Account.Handle), status.Account.ID))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		sessionLine(status, s),
	)
}

func sessionLine(status application.AccountStatus, s styles) string {
	session := status.Session

	switch {
	case session.AuthPending:
		return s.faded.Render("session: login in flight")
	case status.CooldownRemaining > 0:
		return s.warning.Render(fmt.Sprintf("session: cooling down (%s left)", formatRemaining(status.CooldownRemaining)))
	case session.Authenticated():
		return s.ok.Render("session: authenticated") + " " +
			s.detail.Render(fmt.Sprintf("member %s", session.Credentials.MemberID))
	case session.LastAttemptFailed:
		return s.warning.Render("session: last login failed")
	default:
		return s.faded.Render("session: none yet")
	}
}

// maskHandle hides the middle of a handle, keeping the prefix and the
// last four digits: "+573001234567" becomes "+5730•••4567".
func maskHandle(handle string) string {
	if len(handle) <= 9 {
		return handle
	}
	return handle[:5] + "•••" + handle[len(handle)-4:]
}

func formatRemaining(d time.Duration) string {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds%60 == 0 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
}
