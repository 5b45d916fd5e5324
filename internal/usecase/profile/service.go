package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "fate-inyeon/internal/domain/profile"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternal      = errors.New("internal error")
)

type PreferencesInput struct {
	Gender   string
	AgeRange [2]int
}

type CreateInput struct {
	Name        string
	Age         int
	Birthday    string
	Gender      string
	Location    string
	Bio         string
	Picture     string
	Preferences PreferencesInput
}

// UpdateInput carries only the fields present in the request; nil fields
// keep their stored value.
type UpdateInput struct {
	Name        *string
	Age         *int
	Birthday    *string
	Gender      *string
	Location    *string
	Bio         *string
	Picture     *string
	Preferences *PreferencesInput
}

type Service struct {
	profiles domain.Repository
	now      func() time.Time
}

func NewService(profiles domain.Repository) *Service {
	return &Service{profiles: profiles, now: time.Now}
}

func (s *Service) Create(ctx context.Context, accountID string, in CreateInput) (domain.Profile, error) {
	attrs := domain.Attributes{
		Name:     strings.TrimSpace(in.Name),
		Age:      in.Age,
		Birthday: strings.TrimSpace(in.Birthday),
		Gender:   strings.TrimSpace(in.Gender),
		Location: strings.TrimSpace(in.Location),
		Bio:      in.Bio,
		Picture:  strings.TrimSpace(in.Picture),
		Preferences: domain.Preferences{
			Gender:   strings.TrimSpace(in.Preferences.Gender),
			AgeRange: in.Preferences.AgeRange,
		},
	}
	if err := s.normalize(&attrs); err != nil {
		return domain.Profile{}, err
	}

	now := s.now().UTC()
	p, err := s.profiles.Create(ctx, domain.Profile{
		AccountID:  accountID,
		Attributes: attrs,
		Likes:      domain.NewIDSet(),
		Dislikes:   domain.NewIDSet(),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.Profile{}, ErrAlreadyExists
		}
		if errors.Is(err, domain.ErrInvalidID) {
			return domain.Profile{}, ErrInvalidInput
		}
		return domain.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, accountID string) (domain.Profile, error) {
	p, err := s.profiles.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, accountID string, in UpdateInput) (domain.Profile, error) {
	cur, err := s.Get(ctx, accountID)
	if err != nil {
		return domain.Profile{}, err
	}

	attrs := cur.Attributes
	if in.Name != nil {
		attrs.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		attrs.Age = *in.Age
	}
	if in.Birthday != nil {
		attrs.Birthday = strings.TrimSpace(*in.Birthday)
	}
	if in.Gender != nil {
		attrs.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.Location != nil {
		attrs.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bio != nil {
		attrs.Bio = *in.Bio
	}
	if in.Picture != nil {
		attrs.Picture = strings.TrimSpace(*in.Picture)
	}
	if in.Preferences != nil {
		attrs.Preferences = domain.Preferences{
			Gender:   strings.TrimSpace(in.Preferences.Gender),
			AgeRange: in.Preferences.AgeRange,
		}
	}
	if err := s.normalize(&attrs); err != nil {
		return domain.Profile{}, err
	}

	p, err := s.profiles.UpdateAttributes(ctx, accountID, attrs)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, ErrInternal
	}
	return p, nil
}

// normalize derives age from the birthday when it parses; otherwise the
// submitted age is kept.
func (s *Service) normalize(a *domain.Attributes) error {
	if a.Name == "" || a.Gender == "" || a.Preferences.Gender == "" {
		return ErrInvalidInput
	}
	if age, ok := domain.AgeOn(a.Birthday, s.now()); ok {
		a.Age = age
	}
	if a.Age < 0 {
		return ErrInvalidInput
	}
	lo, hi := a.Preferences.AgeRange[0], a.Preferences.AgeRange[1]
	if lo < 0 || hi < 0 || (hi != 0 && lo > hi) {
		return ErrInvalidInput
	}
	return nil
}
