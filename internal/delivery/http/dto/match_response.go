package dto

import (
	"time"

	"fate-inyeon/internal/domain/match"
)

type MatchResponse struct {
	ID        string    `json:"_id"`
	Profiles  [2]string `json:"profiles"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{ID: m.ID, Profiles: m.Profiles, CreatedAt: m.CreatedAt}
}

func NewMatchList(ms []match.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMatchResponse(m))
	}
	return out
}

// MatchNames carries the display names of a freshly found match.
type MatchNames struct {
	Profile1 string `json:"profile1"`
	Profile2 string `json:"profile2"`
}

type LikeResponse struct {
	Message string      `json:"message"`
	Match   *MatchNames `json:"match,omitempty"`
}
