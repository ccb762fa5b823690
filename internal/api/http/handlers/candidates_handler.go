package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/talentdesk/candidate-tracker/internal/api/dto"
	"github.com/talentdesk/candidate-tracker/internal/service"
	"github.com/talentdesk/candidate-tracker/internal/view"
	apperrors "github.com/talentdesk/candidate-tracker/pkg/util/errorutil"
)

// CandidatesHandler exposes the JSON candidate endpoints.
type CandidatesHandler struct {
	service *service.CandidateService
}

// NewCandidatesHandler constructs handler.
func NewCandidatesHandler(candidateService *service.CandidateService) *CandidatesHandler {
	return &CandidatesHandler{service: candidateService}
}

// ListCandidates GET /api/candidates.
func (h *CandidatesHandler) ListCandidates(c *fiber.Ctx) error {
	state := parseViewState(c)
	list, err := h.service.List(c.UserContext(), state)
	if err != nil {
		return err
	}
	items := make([]dto.CandidateResponse, 0, len(list.Items))
	for i := range list.Items {
		items = append(items, dto.NewCandidateResponse(&list.Items[i]))
	}
	query := map[string]string{}
	for k, v := range state.Query() {
		query[k] = v[0]
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": dto.CandidateListMeta{Total: list.Total, Count: len(items), Query: query},
	})
}

// CreateCandidate POST /api/candidates.
func (h *CandidatesHandler) CreateCandidate(c *fiber.Ctx) error {
	var req dto.CandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	candidate, err := h.service.Create(c.UserContext(), req.Form())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCandidateResponse(candidate)})
}

// GetCandidate GET /api/candidates/:id.
func (h *CandidatesHandler) GetCandidate(c *fiber.Ctx) error {
	candidate, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCandidateResponse(candidate)})
}

// UpdateCandidate PUT /api/candidates/:id.
func (h *CandidatesHandler) UpdateCandidate(c *fiber.Ctx) error {
	var req dto.CandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	candidate, err := h.service.Update(c.UserContext(), c.Params("id"), req.Form())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCandidateResponse(candidate)})
}

// DeleteCandidate DELETE /api/candidates/:id.
func (h *CandidatesHandler) DeleteCandidate(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Meta GET /api/meta.
func (h *CandidatesHandler) Meta(c *fiber.Ctx) error {
	meta := h.service.Meta()
	resp := dto.MetaResponse{}
	for _, a := range meta.Areas {
		resp.Areas = append(resp.Areas, string(a))
	}
	for _, s := range meta.Statuses {
		resp.Statuses = append(resp.Statuses, string(s))
	}
	for _, f := range meta.SortFields {
		resp.SortFields = append(resp.SortFields, string(f))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func parseViewState(c *fiber.Ctx) view.State {
	values, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		values = url.Values{}
	}
	return view.ParseState(values)
}
