package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gatekeeper/internal/messaging"
	"gatekeeper/internal/review/models"
)

const timeLayout = "2006-01-02 15:04:05"

// Callback data prefixes for the reviewer's inline buttons.
const (
	ApprovePrefix = "approve_"
	RejectPrefix  = "reject_"
)

const (
	textRejected       = "❌ Sorry, your verification request was not approved."
	suffixApproved     = "\n\n✅ Approved by admin"
	suffixRejected     = "\n\n❌ Rejected by admin"
	suffixSuperseded   = "\n\n🔁 Superseded by a newer request"
	linkSingleUseNotes = "⚠️ Note: this link can only be used once."
)

func approvedText(link string) string {
	return "🎉 Your verification request has been approved!\n\n" +
		"🔗 Your group invite link:\n" + link + "\n\n" + linkSingleUseNotes
}

func reviewerText(entry models.PendingEntry) string {
	return fmt.Sprintf("📝 New verification request\n\n"+
		"👤 User: %s\n"+
		"📌 ID: %d\n"+
		"👋 Name: %s\n"+
		"🎫 Token: %s\n"+
		"⏰ Time: %s",
		entry.Identity.DisplayName(),
		entry.Identity.ID,
		entry.Identity.FirstName,
		entry.SubmittedToken,
		entry.SubmittedAt.Format(timeLayout),
	)
}

// reviewerKeyboard encodes the identity and submission time as
// "<prefix><identity>_<unix nanos>", well under Telegram's 64-byte limit.
func reviewerKeyboard(entry models.PendingEntry) messaging.Keyboard {
	ref := strconv.FormatInt(entry.Identity.ID, 10) + "_" + strconv.FormatInt(entry.SubmittedAt.UnixNano(), 10)
	return messaging.Keyboard{messaging.Row(
		messaging.Button{Label: "✅ Approve", Data: ApprovePrefix + ref},
		messaging.Button{Label: "❌ Reject", Data: RejectPrefix + ref},
	)}
}

// FormatPending renders the pending list for the chat /pending command.
func FormatPending(entries []models.PendingEntry) string {
	if len(entries) == 0 {
		return "📝 There are no pending requests."
	}
	var b strings.Builder
	b.WriteString("📋 Pending requests:\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "👤 User: %s\n📌 ID: %d\n🎫 Token: %s\n⏰ Time: %s\n\n",
			e.Identity.DisplayName(), e.Identity.ID, e.SubmittedToken, e.SubmittedAt.Format(timeLayout))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTokenExport renders the token-only export of the pending list.
func FormatTokenExport(tokens []string) string {
	if len(tokens) == 0 {
		return "📝 There are no pending requests."
	}
	var b strings.Builder
	b.WriteString("📥 Submitted tokens:\n\n")
	for _, t := range tokens {
		b.WriteString("🎫 " + t + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatBulkResult renders a resolve-by-tokens outcome.
func FormatBulkResult(r models.BulkResult) string {
	msg := fmt.Sprintf("✅ Approved %d user(s)", r.Approved)
	if len(r.NotFound) > 0 {
		msg += "\n\n❌ No pending user found for these tokens:\n"
		lines := make([]string, 0, len(r.NotFound))
		for _, t := range r.NotFound {
			lines = append(lines, "🎫 "+t)
		}
		msg += strings.Join(lines, "\n")
	}
	return msg
}

// ParseDecision reads reviewer callback data back into a decision.
func ParseDecision(data string) (models.Decision, bool) {
	var (
		d    models.Decision
		rest string
	)
	switch {
	case strings.HasPrefix(data, ApprovePrefix):
		d.Outcome, rest = models.OutcomeApprove, strings.TrimPrefix(data, ApprovePrefix)
	case strings.HasPrefix(data, RejectPrefix):
		d.Outcome, rest = models.OutcomeReject, strings.TrimPrefix(data, RejectPrefix)
	default:
		return models.Decision{}, false
	}
	idPart, atPart, found := strings.Cut(rest, "_")
	if !found {
		return models.Decision{}, false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return models.Decision{}, false
	}
	nanos, err := strconv.ParseInt(atPart, 10, 64)
	if err != nil || nanos <= 0 {
		return models.Decision{}, false
	}
	d.Identity = id
	d.SubmittedAt = time.Unix(0, nanos).UTC()
	return d, true
}
