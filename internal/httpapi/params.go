package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tracker/internal/model"
)

// decodeJSON parses the request body into dst, rejecting unknown fields and
// trailing data.
func decodeJSON(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return badRequest("request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return badRequest("invalid request body: unexpected trailing data")
	}
	return nil
}

func pathID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, badRequest("id must be a positive integer")
	}
	return uint(id), nil
}

// pageRequest reads page and limit. Missing values take defaults; limit is
// capped at the maximum rather than rejected.
func pageRequest(c *fiber.Ctx) (model.PageRequest, error) {
	p := model.PageRequest{Page: 1, Limit: model.DefaultPageLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, badRequest("page must be an integer >= 1")
		}
		p.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return p, badRequest("limit must be a positive integer")
		}
		p.Limit = limit
	}
	return p.Normalize(), nil
}

// optionalID reads a positive integer filter from the query string.
func optionalID(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, badRequest(name + " must be a positive integer")
	}
	v := uint(id)
	return &v, nil
}
