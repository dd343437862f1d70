package handler

import (
	"net/http"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/apierror"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/middleware"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaxasHandler struct{ svc service.TaxasService }

func NewTaxasHandler(svc service.TaxasService) *TaxasHandler { return &TaxasHandler{svc: svc} }

// Obter godoc
// @Summary Obtém as taxas efetivas do operador (defaults aplicados)
// @Tags taxas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ConfigTaxasResponse
// @Router /v1/taxas [get]
func (h *TaxasHandler) Obter(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Salvar godoc
// @Summary Grava a configuração de taxas do operador
// @Tags taxas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ConfigTaxasRequest true "Taxas em percentual [0,100)"
// @Success 200 {object} dto.ConfigTaxasResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/taxas [put]
func (h *TaxasHandler) Salvar(c *gin.Context) {
	var req dto.ConfigTaxasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuário inválido"))
		return
	}
	resp, err := h.svc.Salvar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
