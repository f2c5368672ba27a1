package service

import (
	"fmt"
	"time"

	"gatekeeper/internal/messaging"
)

// Callback data for the welcome buttons.
const (
	CallbackBegin = "start_verify"
	CallbackHelp  = "show_help"
)

const welcomeBody = "🔹 This group requires verification to join\n" +
	"🔹 Have your invitation token ready\n" +
	"🔹 You will receive a group invite link once verified\n\n" +
	"Ready? Tap the button below to begin!"

// WelcomeText greets a user in a private chat.
const WelcomeText = "👋 Welcome to the verification bot!\n\n" + welcomeBody

const (
	textCaptchaPrompt  = "Please enter the code shown in the image:"
	textCaptchaWrong   = "❌ Wrong code, please start over.\n\n" + welcomeBody
	textTokenPrompt    = "Please enter your invitation token:"
	textRateLimited    = "❌ Too many requests, please try again later."
	textSubmitted      = "✅ Your verification request has been submitted!\n⏳ Please wait for an administrator to review it; the bot will message you with the result."
	textIssuanceFailed = "❌ Sorry, something went wrong while creating your invite link. Please try again later or contact an administrator."
	textCancelled      = "❌ Verification cancelled. Send /start to begin again."
)

// WelcomeKeyboard offers "begin" and "help".
func WelcomeKeyboard() messaging.Keyboard {
	return messaging.Keyboard{
		messaging.Row(messaging.Button{Label: "🎫 Begin verification", Data: CallbackBegin}),
		messaging.Row(messaging.Button{Label: "❓ Help", Data: CallbackHelp}),
	}
}

func lockedText(retryAfter time.Duration) string {
	return fmt.Sprintf("❌ You have exceeded the maximum number of attempts. Please try again in %d minute(s).",
		int(retryAfter/time.Minute))
}

func grantedText(link string) string {
	return "🎉 Invitation token accepted!\n\n" +
		"🔗 Your group invite link:\n" + link + "\n\n" +
		"⚠️ Note: this link can only be used once."
}
