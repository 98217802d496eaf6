// internal/fanout/composer.go
package fanout

import (
	"fmt"

	"padel-notifier/internal/models"
)

// Truncation budgets for quoted thought content.
const (
	thoughtQuoteLimit  = 100
	reactionQuoteLimit = 50
)

const messageDateFormat = "Mon 2 Jan at 15:04"

// Payload is the human-readable part of a notification, shared by every
// recipient of one fan-out run.
type Payload struct {
	Title   string
	Message string
	Link    string
}

// Composer builds deterministic notification payloads per trigger kind.
type Composer struct {
	linkBase string // optional prefix for deep links, e.g. "https://app.example.com"
}

func NewComposer(linkBase string) *Composer {
	return &Composer{linkBase: linkBase}
}

// Compose returns the payload for a trigger. The deep link always references
// the match id, independent of kind. Unknown kinds are an error; the switch
// is exhaustive over the five trigger kinds.
func (c *Composer) Compose(event *models.MatchEvent) (Payload, error) {
	actor := event.ActorName
	if actor == "" {
		actor = "A player"
	}
	link := c.linkBase + "/matches/" + event.MatchID

	switch event.Kind {
	case models.TriggerNewMatch:
		return Payload{
			Title:   "New padel match",
			Message: actor + " organised a new match" + whenAndWhere(event) + ".",
			Link:    link,
		}, nil

	case models.TriggerParticipantJoined:
		return Payload{
			Title:   "A player joined",
			Message: actor + " joined the match" + whenAndWhere(event) + ".",
			Link:    link,
		}, nil

	case models.TriggerParticipantLeft:
		return Payload{
			Title:   "A player left",
			Message: actor + " left the match" + whenAndWhere(event) + ".",
			Link:    link,
		}, nil

	case models.TriggerThoughtAdded:
		return Payload{
			Title:   "New thought",
			Message: actor + ` shared a thought: "` + truncate(event.ThoughtContent, thoughtQuoteLimit) + `"`,
			Link:    link,
		}, nil

	case models.TriggerThoughtReaction:
		return Payload{
			Title:   "New reaction",
			Message: actor + ` reacted to a thought: "` + truncate(event.ThoughtContent, reactionQuoteLimit) + `"`,
			Link:    link,
		}, nil
	}

	return Payload{}, fmt.Errorf("unknown trigger kind: %q", event.Kind)
}

// whenAndWhere renders the time/place clause in three tiers: venue and date,
// date only, or nothing. A venue without a date is not enough for a clause.
func whenAndWhere(event *models.MatchEvent) string {
	if event.MatchDate == nil {
		return ""
	}
	date := event.MatchDate.Format(messageDateFormat)
	if event.VenueName != "" {
		return " at " + event.VenueName + " on " + date
	}
	return " on " + date
}

// truncate cuts s to at most limit characters, appending an ellipsis only
// when something was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
