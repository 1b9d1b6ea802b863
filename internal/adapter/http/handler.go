package http

import (
	"resume-builder/internal/adapter/auth"
	"resume-builder/internal/domain"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
	"resume-builder/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	sessions *usecase.Manager
	auth     *auth.JWTAuthenticator
}

// NewHandler wires the session API. authn may be nil, in which case every
// session is anonymous.
func NewHandler(sessions *usecase.Manager, authn *auth.JWTAuthenticator) *Handler {
	return &Handler{sessions: sessions, auth: authn}
}

type fieldReq struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

type sliceParams struct {
	Slice    string `validate:"required,oneof=education experience skills projects awards"`
	EntityID string
}

type sessionState struct {
	ID            string               `json:"id"`
	Step          usecase.Step         `json:"step"`
	TotalSteps    int                  `json:"totalSteps"`
	Progress      float64              `json:"progress"`
	Percent       int                  `json:"percent"`
	IsFirst       bool                 `json:"isFirst"`
	IsLast        bool                 `json:"isLast"`
	Authenticated bool                 `json:"authenticated"`
	SavePending   bool                 `json:"savePending"`
	Checks        []usecase.StepReport `json:"checks"`
	Redirect      string               `json:"redirect,omitempty"`
}

func (h *Handler) state(c *fiber.Ctx, s *usecase.Session) sessionState {
	_, authed := s.Identity(c.UserContext())
	return sessionState{
		ID:            s.ID,
		Step:          s.Steps.Step(),
		TotalSteps:    len(usecase.Steps),
		Progress:      s.Steps.Progress(),
		Percent:       s.Steps.Percent(),
		IsFirst:       s.Steps.IsFirst(),
		IsLast:        s.Steps.IsLast(),
		Authenticated: authed,
		SavePending:   s.Autosave.Pending(),
		Checks:        s.Checks(),
		Redirect:      s.Redirect.Take(),
	}
}

// session looks up the session of the request and hands it the newest
// bearer token, so a refreshed token keeps autosave working.
func (h *Handler) session(c *fiber.Ctx, op string) (*usecase.Session, error) {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return nil, fromUsecase(op, err)
	}
	if ti, ok := s.IdentityResolver().(*auth.TokenIdentity); ok {
		ti.SetToken(tokenOf(c))
	}
	return s, nil
}

func (h *Handler) StartSession(c *fiber.Ctx) error {
	const op = "Handler.StartSession"

	var identity usecase.IdentityResolver = usecase.AnonymousIdentity{}
	if tok := tokenOf(c); tok != "" {
		if h.auth == nil {
			return utils.E(utils.CodeUnauthorized, op, "authentication is not configured", nil)
		}
		if _, err := h.auth.Verify(tok); err != nil {
			return utils.E(utils.CodeUnauthorized, op, err.Error(), err)
		}
		identity = auth.NewTokenIdentity(h.auth, tok)
	}

	s := h.sessions.Start(c.UserContext(), identity)
	return c.Status(fiber.StatusCreated).JSON(h.state(c, s))
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.session(c, "Handler.GetSession")
	if err != nil {
		return err
	}
	return c.JSON(h.state(c, s))
}

func (h *Handler) EndSession(c *fiber.Ctx) error {
	if err := h.sessions.End(c.UserContext(), c.Params("id")); err != nil {
		return fromUsecase("Handler.EndSession", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Next(c *fiber.Ctx) error {
	s, err := h.session(c, "Handler.Next")
	if err != nil {
		return err
	}
	s.Steps.Next()
	return c.JSON(h.state(c, s))
}

func (h *Handler) Previous(c *fiber.Ctx) error {
	s, err := h.session(c, "Handler.Previous")
	if err != nil {
		return err
	}
	s.Steps.Previous()
	return c.JSON(h.state(c, s))
}

// Form renders the form of the active step.
func (h *Handler) Form(c *fiber.Ctx) error {
	const op = "Handler.Form"
	s, err := h.session(c, op)
	if err != nil {
		return err
	}
	f, err := s.Editors.Form(s.Steps.Step().Slice)
	if err != nil {
		return fromUsecase(op, err)
	}
	return c.JSON(f)
}

func (h *Handler) Document(c *fiber.Ctx) error {
	s, err := h.session(c, "Handler.Document")
	if err != nil {
		return err
	}
	return c.JSON(s.Store.Document())
}

func (h *Handler) UpdatePersonalInfo(c *fiber.Ctx) error {
	const op = "Handler.UpdatePersonalInfo"
	s, err := h.session(c, op)
	if err != nil {
		return err
	}
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "invalid JSON request", err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	if _, err := s.Editors.SetField(domain.SlicePersonalInfo, "", req.Field, req.Value); err != nil {
		return fromUsecase(op, err)
	}
	return c.JSON(s.Editors.Personal.Get())
}

func (h *Handler) AddEntity(c *fiber.Ctx) error {
	const op = "Handler.AddEntity"
	s, err := h.session(c, op)
	if err != nil {
		return err
	}
	p := sliceParams{Slice: c.Params("slice")}
	if err := validateStruct(&p); err != nil {
		return err
	}
	id, err := s.Editors.Add(domain.Slice(p.Slice))
	if err != nil {
		return fromUsecase(op, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// RemoveEntity removes one entity. An id that matches nothing is not an
// error; removed is false and the document is untouched.
func (h *Handler) RemoveEntity(c *fiber.Ctx) error {
	const op = "Handler.RemoveEntity"
	s, err := h.session(c, op)
	if err != nil {
		return err
	}
	p := sliceParams{Slice: c.Params("slice"), EntityID: c.Params("entityId")}
	if err := validateStruct(&p); err != nil {
		return err
	}
	removed, err := s.Editors.Remove(domain.Slice(p.Slice), p.EntityID)
	if err != nil {
		return fromUsecase(op, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// UpdateEntity sets one field of one entity. Like RemoveEntity, an unknown
// entity id leaves the document untouched and reports updated=false.
func (h *Handler) UpdateEntity(c *fiber.Ctx) error {
	const op = "Handler.UpdateEntity"
	s, err := h.session(c, op)
	if err != nil {
		return err
	}
	p := sliceParams{Slice: c.Params("slice"), EntityID: c.Params("entityId")}
	if err := validateStruct(&p); err != nil {
		return err
	}
	var req fieldReq
	if err := c.BodyParser(&req); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "invalid JSON request", err)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}
	updated, err := s.Editors.SetField(domain.Slice(p.Slice), p.EntityID, req.Field, req.Value)
	if err != nil {
		return fromUsecase(op, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// Preview returns the display structure, or the printable page with
// ?format=html.
func (h *Handler) Preview(c *fiber.Ctx) error {
	const op = "Handler.Preview"
	s, err := h.session(c, op)
	if err != nil {
		return err
	}
	p := s.Preview()
	if c.Query("format") != "html" {
		return c.JSON(p)
	}
	html, err := render.HTML(p)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "render failed", err)
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	const op = "Handler.Export"
	s, err := h.session(c, op)
	if err != nil {
		return err
	}
	pdf, err := s.Export(c.UserContext())
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "export failed", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.pdf"`)
	return c.Send(pdf)
}
