package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
	"github.com/flashdeck/flashdeck-api/internal/service/quiz"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var poolErr *quiz.InsufficientPoolError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrFlashcardNotOwned),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors (covers user, flashcard, category, quiz record,
	// marathon)
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, quiz.ErrQuizTooSmall),
		errors.Is(err, quiz.ErrInvalidMode),
		errors.Is(err, quiz.ErrEmptySubmission),
		errors.Is(err, quiz.ErrInvalidTotalDays),
		errors.Is(err, quiz.ErrInvalidQuizCount),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// An undersized pool is a well-formed request the data cannot satisfy
	case errors.As(err, &poolErr):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var poolErr *quiz.InsufficientPoolError
	var partialErr *quiz.PartialWriteError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, service.ErrFlashcardNotOwned):
		return "You do not own this flashcard"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrFlashcardNotFound):
		return "Flashcard not found"

	case errors.Is(err, store.ErrMarathonNotFound):
		return "Marathon not found"

	case errors.Is(err, store.ErrQuizRecordNotFound):
		return "Quiz record not found"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	// Bad request errors
	case errors.Is(err, quiz.ErrQuizTooSmall):
		return fmt.Sprintf("Quiz size must be at least %d", domain.MinQuizSize)

	case errors.Is(err, quiz.ErrInvalidMode):
		return "Submission mode must be practice or marathon"

	case errors.Is(err, quiz.ErrEmptySubmission):
		return "Submission must contain at least one flashcard"

	case errors.Is(err, quiz.ErrInvalidTotalDays):
		return "Total days must be at least 1"

	case errors.Is(err, quiz.ErrInvalidQuizCount):
		return "Question and quiz counts cannot be negative"

	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Difficulty level must be Easy, Medium, or Hard"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Pool shortfalls carry safe, useful detail
	case errors.As(err, &poolErr):
		return fmt.Sprintf(
			"Not enough flashcards in category %q: have %d, need %d",
			poolErr.Category, poolErr.Have, poolErr.Need)

	case errors.As(err, &partialErr):
		return "Marathon generation failed partway; the schedule is incomplete"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Username' Error:Field validation
	// for 'Username' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "validation failed"
	}
}
