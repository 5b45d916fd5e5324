package handler

import (
	"errors"

	"fate-inyeon/internal/delivery/http/dto"
	"fate-inyeon/internal/delivery/http/middleware"
	"fate-inyeon/internal/pkg/response"
	"fate-inyeon/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Delete("/unmatch/:matchId", h.Unmatch)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	ms, err := h.uc.List(c.Context(), accountID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewMatchList(ms))
}

func (h *MatchHandler) Unmatch(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	if err := h.uc.Unmatch(c.Context(), accountID, c.Params("matchId")); err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Message(c, fiber.StatusOK, "Match unmatched successfully")
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrNotParticipant):
		return middleware.NewAppError(fiber.StatusForbidden, "You are not part of this match", nil, err)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return middleware.NewAppError(fiber.StatusConflict, "Another request for this pair is in progress", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return internalError(err)
	}
}
