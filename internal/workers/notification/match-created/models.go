// internal/workers/notification/match-created/models.go
package matchcreated

type Input struct {
	TriggerID         string   `json:"triggerId"`
	MatchID           string   `json:"matchId"`
	CreatorID         string   `json:"creatorId"`
	CreatorName       string   `json:"creatorName"`
	VenueName         string   `json:"venueName,omitempty"`
	MatchDate         string   `json:"matchDate,omitempty"` // ISO 8601
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	GroupIDs          []string `json:"groupIds,omitempty"`
	RestrictedUserIDs []string `json:"restrictedUserIds,omitempty"`
}

type Output struct {
	NotificationsCreated int  `json:"notificationsCreated"`
	FanOutCompleted      bool `json:"fanOutCompleted"`
}
