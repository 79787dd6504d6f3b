package server

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"verser/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote an error
// response, so callers should just return nil.
var errResponseWritten = errors.New("error response written")

const (
	defaultPaginationLimit = 20
	maxPaginationLimit     = 100
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

// parsePagination reads limit/offset from the query string, clamping limit
// to maxPaginationLimit.
func parsePagination(c *fiber.Ctx) Pagination {
	limit := c.QueryInt("limit", defaultPaginationLimit)
	if limit <= 0 {
		limit = defaultPaginationLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset}
}

// parseID parses a numeric route parameter. On failure it writes a 400
// response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, respondValidation(c, "Invalid "+humanizeParam(param))
	}
	return uint(id), nil
}

// respondValidation writes a 400 validation error and returns
// errResponseWritten so handlers can bail with a single return.
func respondValidation(c *fiber.Ctx, msg string) error {
	if err := models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError(msg)); err != nil {
		return err
	}
	return errResponseWritten
}

// respondAppError maps an AppError's code to an HTTP status and writes it.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.ErrCodeNotFound:
		status = fiber.StatusNotFound
	case models.ErrCodeValidation:
		status = fiber.StatusBadRequest
	case models.ErrCodeUnauthorized:
		status = fiber.StatusUnauthorized
	case models.ErrCodeForbidden:
		status = fiber.StatusForbidden
	case models.ErrCodeConflict:
		status = fiber.StatusConflict
	}
	return models.RespondWithError(c, status, appErr)
}

// mustUserID returns the authenticated user's ID. AuthRequired guarantees
// the local is set on protected routes.
func mustUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// optionalUserID returns the authenticated user's ID if present (routes
// mounted without AuthRequired see zero).
func optionalUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// humanizeParam turns a route param name like "conversationId" into
// "conversation id" for error messages.
func humanizeParam(param string) string {
	words := splitCamel(param)
	return strings.ToLower(strings.Join(words, " "))
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}
