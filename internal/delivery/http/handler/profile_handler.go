package handler

import (
	"errors"

	"fate-inyeon/internal/delivery/http/dto"
	"fate-inyeon/internal/delivery/http/middleware"
	"fate-inyeon/internal/pkg/response"
	"fate-inyeon/internal/usecase"
	ucprofile "fate-inyeon/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type preferencesRequest struct {
	Gender string `json:"gender" validate:"required"`
	Age    []int  `json:"age" validate:"omitempty,agerange"`
}

type createProfileRequest struct {
	Name        string             `json:"name" validate:"required"`
	Age         int                `json:"age" validate:"omitempty,min=0,max=150"`
	Birthday    string             `json:"birthday"`
	Gender      string             `json:"gender" validate:"required"`
	Location    string             `json:"location"`
	Bio         string             `json:"bio" validate:"max=2000"`
	Picture     string             `json:"picture" validate:"omitempty,url"`
	Preferences preferencesRequest `json:"preferences"`
}

type updateProfileRequest struct {
	Name        *string             `json:"name"`
	Age         *int                `json:"age" validate:"omitempty,min=0,max=150"`
	Birthday    *string             `json:"birthday"`
	Gender      *string             `json:"gender"`
	Location    *string             `json:"location"`
	Bio         *string             `json:"bio" validate:"omitempty,max=2000"`
	Picture     *string             `json:"picture" validate:"omitempty,url"`
	Preferences *preferencesRequest `json:"preferences"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/new-profile", h.Create)
	r.Get("/my-profile", h.Get)
	r.Put("/edit-profile", h.Update)
}

func (h *ProfileHandler) Create(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	var req createProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.uc.CreateProfile(c.Context(), accountID, ucprofile.CreateInput{
		Name:        req.Name,
		Age:         req.Age,
		Birthday:    req.Birthday,
		Gender:      req.Gender,
		Location:    req.Location,
		Bio:         req.Bio,
		Picture:     req.Picture,
		Preferences: toPreferencesInput(req.Preferences),
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), accountID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := ucprofile.UpdateInput{
		Name:     req.Name,
		Age:      req.Age,
		Birthday: req.Birthday,
		Gender:   req.Gender,
		Location: req.Location,
		Bio:      req.Bio,
		Picture:  req.Picture,
	}
	if req.Preferences != nil {
		prefs := toPreferencesInput(*req.Preferences)
		in.Preferences = &prefs
	}

	p, err := h.uc.UpdateProfile(c.Context(), accountID, in)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func toPreferencesInput(req preferencesRequest) ucprofile.PreferencesInput {
	in := ucprofile.PreferencesInput{Gender: req.Gender}
	if len(req.Age) == 2 {
		in.AgeRange = [2]int{req.Age[0], req.Age[1]}
	}
	return in
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucprofile.ErrNotFound):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Profile not found", nil, err)
	case errors.Is(err, ucprofile.ErrAlreadyExists):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Profile already exists", nil, err)
	case errors.Is(err, ucprofile.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return internalError(err)
	}
}
