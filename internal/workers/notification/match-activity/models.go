// internal/workers/notification/match-activity/models.go
package matchactivity

type Input struct {
	TriggerID      string `json:"triggerId"`
	Kind           string `json:"kind"` // participant_joined, participant_left, thought_added, thought_reaction
	MatchID        string `json:"matchId"`
	OrganizerID    string `json:"organizerId"`
	ActorID        string `json:"actorId"`
	ActorName      string `json:"actorName"`
	ThoughtContent string `json:"thoughtContent,omitempty"`
}

type Output struct {
	NotificationsCreated int  `json:"notificationsCreated"`
	FanOutCompleted      bool `json:"fanOutCompleted"`
}
