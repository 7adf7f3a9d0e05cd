package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parcerias-admin/internal/application/audit"
	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// PartnershipHandler maneja el listado, alta, toggle de estado, relatorio y bitácora.
type PartnershipHandler struct {
	list    partnership.ListDeps
	forms   *partnership.FormRegistry
	reports partnership.ReportGenerator
	audit   *audit.UseCase
	now     func() time.Time
}

// NewPartnershipHandler construye el handler.
func NewPartnershipHandler(
	list partnership.ListDeps,
	forms *partnership.FormRegistry,
	reports partnership.ReportGenerator,
	auditUC *audit.UseCase,
) *PartnershipHandler {
	return &PartnershipHandler{list: list, forms: forms, reports: reports, audit: auditUC, now: time.Now}
}

// loadView arma un controlador para la request, aplica filtros y trae la colección.
func (h *PartnershipHandler) loadView(c *fiber.Ctx) (*partnership.ListController, error) {
	ctrl := partnership.NewListController(h.list)
	ctrl.SetSearchTerm(c.Query("search"))
	if status := c.Query("status"); status != "" {
		ctrl.SetStatusFilter(status)
	}
	if err := ctrl.Fetch(c.UserContext()); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func validStatusFilter(status string) bool {
	if status == "" || strings.EqualFold(status, partnership.StatusFilterAll) {
		return true
	}
	_, err := entity.ParsePartnershipStatus(status)
	return err == nil
}

func fetchFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
		Code:    "FETCH_FAILED",
		Message: "Erro ao carregar parcerias: " + err.Error(),
	})
}

// List godoc
// @Summary      Listar parcerias
// @Description  Vista filtrada de la colección completa y contadores por estado.
// @Tags         partnerships
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "subcadena del nombre de OSC o loja"
// @Param        status  query  string  false  "all | ativa | inativa | pendente"
// @Success      200     {object}  dto.PartnershipListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/partnerships [get]
func (h *PartnershipHandler) List(c *fiber.Ctx) error {
	if !validStatusFilter(c.Query("status")) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido", Field: "status"})
	}
	ctrl, err := h.loadView(c)
	if err != nil {
		return fetchFailed(c, err)
	}
	return c.JSON(partnership.ToListResponse(ctrl.Snapshot()))
}

// Create godoc
// @Summary      Crear parceria
// @Description  Resuelve CNPJ de la OSC, código de loja e ID de campanha y crea la parceria en estado pendente.
// @Tags         partnerships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePartnershipRequest  true  "osc_cnpj, store_code, campaign_id"
// @Success      201   {object}  dto.CreatePartnershipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/partnerships [post]
func (h *PartnershipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnershipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := GetActor(c)
	res, err := h.forms.For(actor).Submit(c.UserContext(), actor, in)
	if err != nil {
		if errors.Is(err, partnership.ErrSubmitInFlight) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SUBMIT_IN_FLIGHT", Message: err.Error()})
		}
		var ve *partnership.ValidationError
		if errors.As(err, &ve) {
			status := fiber.StatusUnprocessableEntity
			if ve.Kind == partnership.KindNetworkOrServer || ve.Kind == partnership.KindMalformedRecord {
				status = fiber.StatusBadGateway
			}
			return c.Status(status).JSON(dto.ErrorResponse{Code: string(ve.Kind), Message: ve.Message, Field: ve.Field})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: partnership.UserMessage(err)})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatePartnershipResponse{
		Partnership: partnership.ToResponse(*res.Partnership),
		RedirectTo:  res.RedirectTo,
	})
}

// ToggleStatus godoc
// @Summary      Alternar estado de la parceria
// @Description  ativa ⇄ inativa. pendente no cambia (changed=false). Devuelve la colección actualizada.
// @Tags         partnerships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la parceria"
// @Success      200  {object}  dto.ToggleStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/partnerships/{id}/toggle [post]
func (h *PartnershipHandler) ToggleStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	ctrl := partnership.NewListController(h.list)
	if err := ctrl.Fetch(c.UserContext()); err != nil {
		return fetchFailed(c, err)
	}
	p, ok := ctrl.Find(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "parceria não encontrada"})
	}
	changed, err := ctrl.ToggleStatus(c.UserContext(), GetActor(c), p)
	if err != nil {
		switch {
		case errors.Is(err, partnership.ErrToggleInFlight):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TOGGLE_IN_FLIGHT", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			// eliminada entre la carga y la relectura bajo el candado
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "parceria não encontrada"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPDATE_FAILED", Message: "Erro ao atualizar status da parceria."})
	}
	return c.JSON(dto.ToggleStatusResponse{
		Changed:      changed,
		Partnerships: partnership.ToResponses(ctrl.Snapshot().Partnerships),
	})
}

// Report godoc
// @Summary      Relatorio PDF de parcerias
// @Tags         partnerships
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        search  query  string  false  "subcadena del nombre de OSC o loja"
// @Param        status  query  string  false  "all | ativa | inativa | pendente"
// @Success      200     {file}    binary
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/partnerships/report.pdf [get]
func (h *PartnershipHandler) Report(c *fiber.Ctx) error {
	if !validStatusFilter(c.Query("status")) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido", Field: "status"})
	}
	ctrl, err := h.loadView(c)
	if err != nil {
		return fetchFailed(c, err)
	}
	doc, err := h.reports.GenerateReport(c.UserContext(), partnership.NewReport(ctrl.Snapshot(), h.now()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="parcerias.pdf"`)
	return c.Send(doc)
}

// Audit godoc
// @Summary      Bitácora de acciones
// @Tags         partnerships
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200     {object}  dto.AuditListResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/partnerships/audit [get]
func (h *PartnershipHandler) Audit(c *fiber.Ctx) error {
	out, err := h.audit.List(c.UserContext(), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
