package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/apierror"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/middleware"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComandaHandler struct{ svc service.ComandaService }

func NewComandaHandler(svc service.ComandaService) *ComandaHandler {
	return &ComandaHandler{svc: svc}
}

// statusFor maps service sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrComandaNaoEncontrada),
		errors.Is(err, service.ErrLinhaNaoEncontrada):
		return http.StatusNotFound
	case errors.Is(err, service.ErrComandaFechada):
		return http.StatusConflict
	case errors.Is(err, service.ErrValorInvalido),
		errors.Is(err, service.ErrTaxaInvalida):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// Abrir godoc
// @Summary Abre a comanda do dia para o operador
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirComandaRequest true "Dados de abertura"
// @Success 201 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas [post]
func (h *ComandaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}

	resp, err := h.svc.Abrir(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(statusFor(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obter godoc
// @Summary Obtém a comanda com linhas, pagamentos e conciliação
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 200 {object} dto.ComandaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/comandas/{id} [get]
func (h *ComandaHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Obter(c.Request.Context(), usuarioID, id)
	if err != nil {
		c.JSON(statusFor(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista as comandas do operador, opcionalmente por data
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param data query string false "Filtro de data (YYYY-MM-DD)"
// @Success 200 {array} dto.ComandaResumo
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas [get]
func (h *ComandaHandler) Listar(c *gin.Context) {
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

	resp, err := h.svc.Listar(c.Request.Context(), usuarioID, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdicionarCliente godoc
// @Summary Adiciona uma linha de cliente à comanda
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param body body dto.AdicionarClienteRequest true "Dados da linha"
// @Success 201 {object} dto.ComandaClienteResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/comandas/{id}/clientes [post]
func (h *ComandaHandler) AdicionarCliente(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AdicionarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.AdicionarCliente(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		c.JSON(statusFor(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarPagamento godoc
// @Summary Registra um pagamento em uma linha da comanda
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param body body dto.RegistrarPagamentoRequest true "Dados do pagamento"
// @Success 201 {object} dto.ComandaClienteResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/comandas/{id}/pagamentos [post]
func (h *ComandaHandler) RegistrarPagamento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarPagamento(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		c.JSON(statusFor(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha a comanda (linhas pendentes são permitidas)
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param body body dto.FecharComandaRequest false "Valor de fechamento"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/comandas/{id}/fechar [post]
func (h *ComandaHandler) Fechar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.FecharComandaRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Fechar(c.Request.Context(), usuarioID, id, req); err != nil {
		c.JSON(statusFor(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Reabrir godoc
// @Summary Reabre uma comanda fechada para correções
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/comandas/{id}/reabrir [post]
func (h *ComandaHandler) Reabrir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Reabrir(c.Request.Context(), usuarioID, id); err != nil {
		c.JSON(statusFor(err), apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
