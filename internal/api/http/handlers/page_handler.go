package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/talentdesk/candidate-tracker/internal/domain"
	"github.com/talentdesk/candidate-tracker/internal/service"
	"github.com/talentdesk/candidate-tracker/internal/validation"
	"github.com/talentdesk/candidate-tracker/internal/view"
	apperrors "github.com/talentdesk/candidate-tracker/pkg/util/errorutil"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"displayDate": func(c domain.Candidate) string {
		return c.RegistrationDate.Format(domain.DisplayDateLayout)
	},
}).ParseFS(templateFS, "templates/*.html"))

// PageHandler renders the candidate page and handles its form posts.
type PageHandler struct {
	candidates *service.CandidateService
	notices    *service.NotificationService
	logger     *zap.Logger
}

// NewPageHandler constructs handler.
func NewPageHandler(candidates *service.CandidateService, notices *service.NotificationService, logger *zap.Logger) *PageHandler {
	return &PageHandler{candidates: candidates, notices: notices, logger: logger}
}

type sortColumn struct {
	Label     string
	Href      string
	Indicator string
}

type pageData struct {
	Title      string
	Total      int
	Items      []domain.Candidate
	State      view.State
	Columns    []sortColumn
	Areas      []domain.Area
	Statuses   []domain.CandidateStatus
	Form       validation.CandidateForm
	Errors     map[string]string
	Notices    []service.Notice
	Candidate  *domain.Candidate
	FormAction string
	SubmitText string
}

var columnLabels = []struct {
	field view.SortField
	label string
}{
	{view.SortName, "Nome Completo"},
	{view.SortEmail, "E-mail"},
	{view.SortPhone, "Telefone"},
	{view.SortArea, "Área de Interesse"},
	{view.SortStatus, "Status"},
	{view.SortRegistrationDate, "Data de Cadastro"},
}

// Index GET /.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	return h.renderIndex(c, http.StatusOK, parseViewState(c), newForm(), nil)
}

// Create POST /candidates.
func (h *PageHandler) Create(c *fiber.Ctx) error {
	state := parseViewState(c)
	var form validation.CandidateForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderIndex(c, http.StatusBadRequest, state, form, map[string]string{validation.FieldName: "Formulário inválido"})
	}
	if _, err := h.candidates.Create(c.UserContext(), form); err != nil {
		if fields := apperrors.FieldErrors(err); fields != nil {
			return h.renderIndex(c, http.StatusBadRequest, state, form, fields)
		}
		return err
	}
	return c.Redirect(withQuery("/", state), http.StatusSeeOther)
}

// Edit GET /candidates/:id/edit.
func (h *PageHandler) Edit(c *fiber.Ctx) error {
	candidate, err := h.candidates.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.failAndReturn(c, err)
	}
	return h.renderEdit(c, http.StatusOK, candidate, validation.FormFromCandidate(candidate), nil)
}

// Update POST /candidates/:id.
func (h *PageHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var form validation.CandidateForm
	if err := c.BodyParser(&form); err != nil {
		return h.failAndReturn(c, apperrors.NewBadRequest("invalid form"))
	}
	if _, err := h.candidates.Update(c.UserContext(), id, form); err != nil {
		if fields := apperrors.FieldErrors(err); fields != nil {
			candidate, getErr := h.candidates.Get(c.UserContext(), id)
			if getErr != nil {
				return h.failAndReturn(c, getErr)
			}
			return h.renderEdit(c, http.StatusBadRequest, candidate, form, fields)
		}
		return h.failAndReturn(c, err)
	}
	return c.Redirect("/", http.StatusSeeOther)
}

// ConfirmDelete GET /candidates/:id/delete.
func (h *PageHandler) ConfirmDelete(c *fiber.Ctx) error {
	candidate, err := h.candidates.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.failAndReturn(c, err)
	}
	return h.render(c, http.StatusOK, "delete", pageData{
		Title:     "Confirmar Exclusão",
		Candidate: candidate,
		Notices:   h.notices.Drain(),
	})
}

// Delete POST /candidates/:id/delete.
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	if err := h.candidates.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.failAndReturn(c, err)
	}
	return c.Redirect("/", http.StatusSeeOther)
}

func (h *PageHandler) renderIndex(c *fiber.Ctx, status int, state view.State, form validation.CandidateForm, errs map[string]string) error {
	list, err := h.candidates.List(c.UserContext(), state)
	if err != nil {
		return err
	}
	meta := h.candidates.Meta()
	return h.render(c, status, "index", pageData{
		Title:      "Painel de Gerenciamento de Candidatos",
		Total:      list.Total,
		Items:      list.Items,
		State:      state,
		Columns:    sortColumns(state),
		Areas:      meta.Areas,
		Statuses:   meta.Statuses,
		Form:       form,
		Errors:     errs,
		Notices:    h.notices.Drain(),
		FormAction: withQuery("/candidates", state),
		SubmitText: "Salvar Candidato",
	})
}

func (h *PageHandler) renderEdit(c *fiber.Ctx, status int, candidate *domain.Candidate, form validation.CandidateForm, errs map[string]string) error {
	meta := h.candidates.Meta()
	return h.render(c, status, "edit", pageData{
		Title:      "Editar Candidato",
		Candidate:  candidate,
		Areas:      meta.Areas,
		Statuses:   meta.Statuses,
		Form:       form,
		Errors:     errs,
		Notices:    h.notices.Drain(),
		FormAction: "/candidates/" + candidate.ID,
		SubmitText: "Atualizar Candidato",
	})
}

func (h *PageHandler) render(c *fiber.Ctx, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("render page", zap.String("template", name), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// failAndReturn turns a failed mutation into a failure notice on the main page.
func (h *PageHandler) failAndReturn(c *fiber.Ctx, err error) error {
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus >= http.StatusInternalServerError {
		return err
	}
	msg := de.Message
	if de.Code == apperrors.CodeNotFound {
		msg = service.NoticeNotFound
	}
	h.notices.Failure(msg)
	return c.Redirect("/", http.StatusSeeOther)
}

var today = func() string {
	return time.Now().Format(domain.DateLayout)
}

func newForm() validation.CandidateForm {
	return validation.CandidateForm{RegistrationDate: today()}
}

// withQuery appends the encoded selection to path so it survives a form round trip.
func withQuery(path string, state view.State) string {
	if q := state.Query().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

func sortColumns(state view.State) []sortColumn {
	cols := make([]sortColumn, 0, len(columnLabels))
	for _, col := range columnLabels {
		lv := view.NewListViewFrom(state)
		lv.ToggleSort(col.field)
		next := lv.State()
		indicator := ""
		if state.SortField == col.field {
			indicator = "▲"
			if state.SortDir == view.SortDesc {
				indicator = "▼"
			}
		}
		cols = append(cols, sortColumn{
			Label:     col.label,
			Href:      withQuery("/", next),
			Indicator: indicator,
		})
	}
	return cols
}
