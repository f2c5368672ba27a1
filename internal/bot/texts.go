package bot

import (
	"fmt"
	"strings"

	"gatekeeper/internal/messaging"
)

const (
	callbackBack   = "back_to_start"
	callbackExport = "export_codes"
)

const (
	textForbidden      = "❌ Only administrators can use this command"
	textAddUsage       = "❌ Please provide invitation tokens\nUsage: /add_codes code1 code2 code3"
	textApproveUsage   = "❌ Please provide invitation tokens\nUsage: /approve_codes code1 code2 code3"
	textNothingAdded   = "❌ No new tokens were added"
	textNoTokens       = "📝 There are no tokens available."
	textAlreadyHandled = "⚠️ This request has already been handled."
	textIssuanceRetry  = "❌ Could not create an invite link. The request is still pending, please try again."
	textInternal       = "❌ Something went wrong, please try again later."
)

const textHelpUser = "📚 Available commands:\n\n" +
	"User commands:\n" +
	"➖➖➖➖➖➖➖➖➖➖\n" +
	"/start - Start using the bot\n" +
	"/help - Show this help message\n" +
	"/cancel - Cancel the current verification\n\n"

const textHelpAdmin = "Administrator commands:\n" +
	"➖➖➖➖➖➖➖➖➖➖\n" +
	"/pending - List users waiting for review\n" +
	"/add_codes - Add invitation tokens\n" +
	"/list_codes - List available invitation tokens\n" +
	"/approve_codes - Approve every pending user who submitted one of the tokens\n" +
	"Usage: /approve_codes code1 code2 code3\n\n" +
	"💡 Tips:\n" +
	"• The pending list can export just the submitted tokens\n" +
	"• Single users can be approved or rejected from their request message\n" +
	"• /approve_codes handles many users at once"

func helpText(admin bool) string {
	if admin {
		return textHelpUser + textHelpAdmin
	}
	return strings.TrimRight(textHelpUser, "\n")
}

func backKeyboard() messaging.Keyboard {
	return messaging.Keyboard{messaging.Row(messaging.Button{Label: "🔙 Back", Data: callbackBack})}
}

func exportKeyboard() messaging.Keyboard {
	return messaging.Keyboard{messaging.Row(messaging.Button{Label: "📥 Export tokens", Data: callbackExport})}
}

func addedText(added []string) string {
	if len(added) == 0 {
		return textNothingAdded
	}
	return fmt.Sprintf("✅ Added %d token(s):\n", len(added)) + bulletList(added)
}

func tokenListText(tokens []string) string {
	if len(tokens) == 0 {
		return textNoTokens
	}
	return "📋 Available tokens:\n\n" + bulletList(tokens)
}

func bulletList(tokens []string) string {
	lines := make([]string, 0, len(tokens))
	for _, t := range tokens {
		lines = append(lines, "🎫 "+t)
	}
	return strings.Join(lines, "\n")
}
