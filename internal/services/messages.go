package services

import (
	"fmt"

	"github.com/anonto42/review-portal/backend/internal/models"
)

// Notification texts are rendered once at write time and stored verbatim.

func versionUploadedText(displayName string) string {
	return fmt.Sprintf("📂 New file uploaded: \"%s\"", displayName)
}

func decisionText(d models.Decision) string {
	switch d {
	case models.DecisionApproved:
		return "✅ The client APPROVED the project! 🎉"
	case models.DecisionRejected:
		return "❌ The client requested CHANGES (Rejected)."
	default:
		return "↩️ The decision was cancelled. The project is back to Pending."
	}
}

func reactionText(kind models.ReactionKind) string {
	return kind.Emoji() + " New reaction received"
}

const finalSelectedText = "🎉 Final version selected"

func commentText(author, projectTitle string) string {
	return fmt.Sprintf("💬 %s commented on \"%s\"", author, projectTitle)
}
