package server

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
	"github.com/KaramelBytes/dataview-cli/internal/pipeline"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

// maxPaletteCount bounds GET /palette so a query cannot allocate unbounded lists.
const maxPaletteCount = 1000

type RenderRequest struct {
	Text      string         `json:"text"`
	Delimiter string         `json:"delimiter" validate:"omitempty,delimiter"`
	View      string         `json:"view" validate:"omitempty,viewtype"`
	Options   map[string]any `json:"options"`
	Search    string         `json:"search" validate:"max=256"`
}

type FilterRequest struct {
	Text      string `json:"text"`
	Delimiter string `json:"delimiter" validate:"omitempty,delimiter"`
	Search    string `json:"search" validate:"max=256"`
}

type PaletteResponse struct {
	Kind    string   `json:"kind"`
	Format  string   `json:"format"`
	Count   int      `json:"count"`
	Colours []string `json:"colours"`
}

func (h *handlers) bind(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return ErrInvalidReq.Msg("invalid request body: %v", err)
	}
	if err := h.validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ErrInvalidReq.WithViolations(lo.Map(verrs, func(fe validator.FieldError, _ int) Violation {
				return Violation{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
			}))
		}
		return ErrInvalidReq.Msg("%v", err)
	}
	return nil
}

func (h *handlers) render(c *fiber.Ctx) error {
	var req RenderRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	// both were validated by bind
	delim, _ := dataset.ParseDelimiter(req.Delimiter)
	t, _ := view.ParseType(req.View)

	res, err := h.renderer.Render(pipeline.Request{
		Text:      req.Text,
		Delimiter: delim,
		View:      t,
		Options:   req.Options,
		Search:    req.Search,
	})
	if err != nil {
		return mapRenderError(err)
	}
	return c.JSON(res)
}

func (h *handlers) filter(c *fiber.Ctx) error {
	var req FilterRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	delim, _ := dataset.ParseDelimiter(req.Delimiter)
	res, err := h.renderer.Filter(req.Text, delim, req.Search)
	if err != nil {
		return mapRenderError(err)
	}
	return c.JSON(res)
}

func (h *handlers) views(c *fiber.Ctx) error {
	return c.JSON(view.Catalog())
}

func (h *handlers) palette(c *fiber.Ctx) error {
	g := h.renderer.Palette()
	count := c.QueryInt("count", len(g.Config().Graph))
	if count < 0 || count > maxPaletteCount {
		return ErrInvalidReq.Msg("count must be between 0 and %d", maxPaletteCount)
	}
	shuffle, err := queryBool(c, "shuffle")
	if err != nil {
		return err
	}
	pie, err := queryBool(c, "pie")
	if err != nil {
		return err
	}

	resp := PaletteResponse{Kind: "graph", Format: string(g.Config().Format), Count: count}
	if pie {
		resp.Kind = "pie"
		resp.Colours = g.Pie(count, shuffle)
	} else {
		resp.Colours = g.Graph(count, shuffle)
	}
	return c.JSON(resp)
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, ErrInvalidReq.Msg("query %s: %q is not a boolean", key, s)
	}
	return b, nil
}

func mapRenderError(err error) error {
	var pe *dataset.ParseError
	switch {
	case errors.As(err, &pe):
		return ErrInvalidCSV.Msg("%v", pe)
	case errors.Is(err, view.ErrUnknownView):
		return ErrInvalidReq.Msg("%v", err)
	}
	return err
}
