package handler

import (
	"errors"

	"fate-inyeon/internal/delivery/http/dto"
	"fate-inyeon/internal/delivery/http/middleware"
	"fate-inyeon/internal/pkg/response"
	"fate-inyeon/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	msgAlreadyLiked    = "Candidate already liked"
	msgLiked           = "Liked candidate successfully"
	msgMatchFound      = "Match found"
	msgAlreadyDisliked = "Candidate already disliked"
	msgDisliked        = "Disliked candidate successfully"
)

type CandidateHandler struct {
	candidates   usecase.CandidateUsecase
	interactions usecase.InteractionUsecase
}

func NewCandidateHandler(candidates usecase.CandidateUsecase, interactions usecase.InteractionUsecase) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, interactions: interactions}
}

// RegisterRoutes expects r to be behind the auth middleware.
func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/like/:candidateId", h.Like)
	r.Post("/dislike/:candidateId", h.Dislike)
}

func (h *CandidateHandler) List(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	ps, err := h.candidates.Candidates(c.Context(), accountID)
	if err != nil {
		return mapCandidateUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewCandidateList(ps))
}

func (h *CandidateHandler) Like(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	res, err := h.interactions.Like(c.Context(), accountID, c.Params("candidateId"))
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	switch res.Outcome {
	case usecase.LikeOutcomeAlreadyLiked:
		return response.JSON(c, fiber.StatusOK, dto.LikeResponse{Message: msgAlreadyLiked})
	case usecase.LikeOutcomeMatched:
		return response.JSON(c, fiber.StatusOK, dto.LikeResponse{
			Message: msgMatchFound,
			Match:   &dto.MatchNames{Profile1: res.RequesterName, Profile2: res.CandidateName},
		})
	default:
		return response.JSON(c, fiber.StatusOK, dto.LikeResponse{Message: msgLiked})
	}
}

func (h *CandidateHandler) Dislike(c fiber.Ctx) error {
	accountID, err := accountIDFromCtx(c)
	if err != nil {
		return err
	}

	res, err := h.interactions.Dislike(c.Context(), accountID, c.Params("candidateId"))
	if err != nil {
		return mapCandidateUsecaseError(err)
	}

	if res.Outcome == usecase.DislikeOutcomeAlreadyDisliked {
		return response.Message(c, fiber.StatusOK, msgAlreadyDisliked)
	}
	return response.Message(c, fiber.StatusOK, msgDisliked)
}

func mapCandidateUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidTarget):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid candidate", nil, err)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return middleware.NewAppError(fiber.StatusConflict, "Another request for this pair is in progress", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return internalError(err)
	}
}
