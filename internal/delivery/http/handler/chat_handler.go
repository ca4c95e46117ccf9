package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-site-api/internal/delivery/dto"
	"clinic-site-api/internal/usecase"
	"clinic-site-api/pkg/response"
	"clinic-site-api/pkg/validator"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

func (h *ChatHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatUsecase.StartSession(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.writeError(w, r, err, "Failed to start chat session")
		return
	}

	response.Success(w, http.StatusCreated, "Chat session started", session)
}

func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	session, err := h.chatUsecase.GetSession(r.Context(), vars["slug"], vars["id"])
	if err != nil {
		h.writeError(w, r, err, "Failed to get chat session")
		return
	}

	response.Success(w, http.StatusOK, "Chat session retrieved successfully", session)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", response.NextActionFixInput)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	vars := mux.Vars(r)
	reply, err := h.chatUsecase.SendMessage(r.Context(), vars["slug"], vars["id"], &req)
	if err != nil {
		h.writeError(w, r, err, "Failed to send chat message")
		return
	}

	response.Success(w, http.StatusOK, "Message sent", reply)
}

func (h *ChatHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	session, err := h.chatUsecase.ResetSession(r.Context(), vars["slug"], vars["id"])
	if err != nil {
		h.writeError(w, r, err, "Failed to reset chat session")
		return
	}

	response.Success(w, http.StatusOK, "Chat session reset", session)
}

func (h *ChatHandler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrMissingSlug):
		MissingSlug(w, r)
	case errors.Is(err, usecase.ErrSessionNotFound):
		response.NotFound(w, "Chat session not found", response.NextActionStartSession)
	case errors.Is(err, usecase.ErrPracticeNotFound):
		response.NotFound(w, "Practice not found", response.NextActionCheckConfig)
	default:
		response.InternalServerError(w, fallback)
	}
}
