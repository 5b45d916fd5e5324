package dto

import (
	"time"

	"fate-inyeon/internal/domain/profile"
)

type PreferencesResponse struct {
	Gender string `json:"gender"`
	Age    [2]int `json:"age"`
}

// CandidateResponse is a profile as shown to other accounts. It never
// carries the owner's likes or dislikes.
type CandidateResponse struct {
	ID          string              `json:"_id"`
	AccountID   string              `json:"accountId"`
	Name        string              `json:"name"`
	Age         int                 `json:"age"`
	Birthday    string              `json:"birthday,omitempty"`
	Gender      string              `json:"gender"`
	Location    string              `json:"location,omitempty"`
	Bio         string              `json:"bio,omitempty"`
	Picture     string              `json:"picture,omitempty"`
	Preferences PreferencesResponse `json:"preferences"`
}

type ProfileResponse struct {
	CandidateResponse

	Likes     []string  `json:"likes"`
	Dislikes  []string  `json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCandidateResponse(p profile.Profile) CandidateResponse {
	return CandidateResponse{
		ID:        p.ID,
		AccountID: p.AccountID,
		Name:      p.Name,
		Age:       p.Age,
		Birthday:  p.Birthday,
		Gender:    p.Gender,
		Location:  p.Location,
		Bio:       p.Bio,
		Picture:   p.Picture,
		Preferences: PreferencesResponse{
			Gender: p.Preferences.Gender,
			Age:    p.Preferences.AgeRange,
		},
	}
}

func NewCandidateList(ps []profile.Profile) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewCandidateResponse(p))
	}
	return out
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		CandidateResponse: NewCandidateResponse(p),
		Likes:             p.Likes.Slice(),
		Dislikes:          p.Dislikes.Slice(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
