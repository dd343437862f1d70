package handler

import (
	"net/http"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/apierror"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/middleware"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RelatorioHandler struct{ svc service.RelatorioService }

func NewRelatorioHandler(svc service.RelatorioService) *RelatorioHandler {
	return &RelatorioHandler{svc: svc}
}

// Resumo godoc
// @Summary Resumo diário: totais por comanda e recebimentos por método
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param data query string false "Data do resumo (YYYY-MM-DD)"
// @Success 200 {object} dto.ResumoDiarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/relatorios/resumo [get]
func (h *RelatorioHandler) Resumo(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	var data *time.Time
	if q := c.Query("data"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("data inválida: use YYYY-MM-DD"))
			return
		}
		data = &d
	}

	resp, err := h.svc.Resumo(c.Request.Context(), usuarioID, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Enviar godoc
// @Summary Enfileira o envio do resumo diário em PDF por email
// @Tags relatorios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EnviarRelatorioRequest true "Data e destinatário"
// @Success 202
// @Failure 400 {object} apierror.APIError
// @Router /v1/relatorios/enviar [post]
func (h *RelatorioHandler) Enviar(c *gin.Context) {
	var req dto.EnviarRelatorioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Enviar(c.Request.Context(), usuarioID, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusAccepted)
}
