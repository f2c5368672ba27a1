package admin

import (
	"time"

	reviewmodels "gatekeeper/internal/review/models"
	"gatekeeper/pkg/platform/audit"
)

// PendingEntryResponse is one row of the pending list.
type PendingEntryResponse struct {
	Identity    int64     `json:"identity"`
	Username    string    `json:"username,omitempty"`
	FirstName   string    `json:"first_name,omitempty"`
	Token       string    `json:"token"`
	SubmittedAt time.Time `json:"submitted_at"`
	Status      string    `json:"status"`
}

type PendingListResponse struct {
	Pending []PendingEntryResponse `json:"pending"`
	Total   int                    `json:"total"`
}

type ResolveResponse struct {
	Identity int64  `json:"identity"`
	Status   string `json:"status"`
}

type TokensRequest struct {
	Tokens []string `json:"tokens"`
}

type TokensResponse struct {
	Tokens []string `json:"tokens"`
	Total  int      `json:"total"`
}

type AddTokensResponse struct {
	Added []string `json:"added"`
}

func toPendingList(entries []reviewmodels.PendingEntry) PendingListResponse {
	out := make([]PendingEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, PendingEntryResponse{
			Identity:    e.Identity.ID,
			Username:    e.Identity.Username,
			FirstName:   e.Identity.FirstName,
			Token:       e.SubmittedToken,
			SubmittedAt: e.SubmittedAt,
			Status:      string(e.Status),
		})
	}
	return PendingListResponse{Pending: out, Total: len(out)}
}

type AuditEventResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id,omitempty"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type AuditListResponse struct {
	Events []AuditEventResponse `json:"events"`
	Total  int                  `json:"total"`
}

func toAuditList(events []audit.Event) AuditListResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, AuditEventResponse{
			ID:        e.ID,
			Category:  string(e.Category),
			Subject:   e.Subject,
			Action:    e.Action,
			ActorID:   e.ActorID,
			Decision:  e.Decision,
			Reason:    e.Reason,
			Timestamp: e.Timestamp,
		})
	}
	return AuditListResponse{Events: out, Total: len(out)}
}
