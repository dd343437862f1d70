package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/dto"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/model"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Built-in fallback rates (percent), applied when the operator has no
// ConfigTaxas row or left the field unset. Dinheiro and pix default to 0%.
var (
	taxaPadraoCreditoVista     = decimal.NewFromFloat(3.5)
	taxaPadraoCreditoParcelado = decimal.NewFromFloat(4.5)
	taxaPadraoDebito           = decimal.NewFromFloat(2.5)
)

var cem = decimal.NewFromInt(100)

// ResolverTaxa returns the processor fee percentage for a payment method.
// Total: it never fails and always returns a value >= 0. parcelas is only
// consulted for credito-parcelado; for every other method it is ignored.
//
// Fallback chain for credito-parcelado: installment-specific entry →
// configured generic installment rate → built-in default.
func ResolverTaxa(metodo string, parcelas int, cfg *model.ConfigTaxas) decimal.Decimal {
	switch metodo {
	case model.MetodoCreditoVista:
		if cfg != nil && cfg.TaxaCreditoVista != nil {
			return *cfg.TaxaCreditoVista
		}
		return taxaPadraoCreditoVista
	case model.MetodoCreditoParcelado:
		if cfg != nil {
			if t, ok := cfg.ParcelasTaxas.Data()[strconv.Itoa(parcelas)]; ok {
				return t
			}
			if cfg.TaxaCreditoParcelado != nil {
				return *cfg.TaxaCreditoParcelado
			}
		}
		return taxaPadraoCreditoParcelado
	case model.MetodoDebito:
		if cfg != nil && cfg.TaxaDebito != nil {
			return *cfg.TaxaDebito
		}
		return taxaPadraoDebito
	case model.MetodoPix:
		if cfg != nil && cfg.TaxaPix != nil {
			return *cfg.TaxaPix
		}
		return decimal.Zero
	default:
		// dinheiro and anything unrecognized carry no processor fee
		return decimal.Zero
	}
}

type TaxasService interface {
	Obter(ctx context.Context, usuarioID uuid.UUID) (*dto.ConfigTaxasResponse, error)
	Salvar(ctx context.Context, usuarioID uuid.UUID, req dto.ConfigTaxasRequest) (*dto.ConfigTaxasResponse, error)
	// ConfigDoOperador is called by ComandaService before every fee
	// computation. Returns nil when the operator has no configuration —
	// resolution then falls back to the built-in defaults.
	ConfigDoOperador(ctx context.Context, usuarioID uuid.UUID) *model.ConfigTaxas
}

type taxasService struct {
	repo repository.TaxasRepository
	rdb  *redis.Client
}

func NewTaxasService(repo repository.TaxasRepository, rdb *redis.Client) TaxasService {
	return &taxasService{repo: repo, rdb: rdb}
}

const taxasCacheTTL = 10 * time.Minute

func taxasCacheKey(usuarioID uuid.UUID) string { return "taxas:" + usuarioID.String() }

func (s *taxasService) Obter(ctx context.Context, usuarioID uuid.UUID) (*dto.ConfigTaxasResponse, error) {
	cfg := s.ConfigDoOperador(ctx, usuarioID)
	return configToResponse(cfg), nil
}

func (s *taxasService) Salvar(ctx context.Context, usuarioID uuid.UUID, req dto.ConfigTaxasRequest) (*dto.ConfigTaxasResponse, error) {
	for campo, t := range map[string]*decimal.Decimal{
		"taxa_credito_vista":     req.TaxaCreditoVista,
		"taxa_credito_parcelado": req.TaxaCreditoParcelado,
		"taxa_debito":            req.TaxaDebito,
		"taxa_pix":               req.TaxaPix,
	} {
		if err := validarTaxa(campo, t); err != nil {
			return nil, err
		}
	}
	for parcelas, t := range req.ParcelasTaxas {
		n, err := strconv.Atoi(parcelas)
		if err != nil || n < 2 || n > 12 {
			return nil, fmt.Errorf("parcelas_taxas: parcela %q fora do intervalo 2–12", parcelas)
		}
		taxa := t
		if err := validarTaxa("parcelas_taxas."+parcelas, &taxa); err != nil {
			return nil, err
		}
	}

	cfg := &model.ConfigTaxas{
		UsuarioID:            usuarioID,
		TaxaCreditoVista:     req.TaxaCreditoVista,
		TaxaCreditoParcelado: req.TaxaCreditoParcelado,
		TaxaDebito:           req.TaxaDebito,
		TaxaPix:              req.TaxaPix,
	}
	if req.ParcelasTaxas != nil {
		cfg.ParcelasTaxas = datatypes.NewJSONType(req.ParcelasTaxas)
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, taxasCacheKey(usuarioID)).Err(); err != nil {
			log.Warn().Err(err).Msg("taxas: falha ao invalidar cache")
		}
	}
	return configToResponse(cfg), nil
}

// validarTaxa enforces [0,100). 100% would make the payer-pays-fee gross-up
// divide by zero, so it is rejected here instead of at payment time.
func validarTaxa(campo string, t *decimal.Decimal) error {
	if t == nil {
		return nil
	}
	if t.IsNegative() || t.GreaterThanOrEqual(cem) {
		return fmt.Errorf("%s: taxa deve estar entre 0 e 100 (exclusivo)", campo)
	}
	return nil
}

func (s *taxasService) ConfigDoOperador(ctx context.Context, usuarioID uuid.UUID) *model.ConfigTaxas {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, taxasCacheKey(usuarioID)).Bytes(); err == nil {
			var cfg model.ConfigTaxas
			if json.Unmarshal(raw, &cfg) == nil {
				return &cfg
			}
		}
	}

	cfg, err := s.repo.FindByUsuario(ctx, usuarioID)
	if err != nil {
		// Absent or unreadable configuration degrades to the defaults.
		return nil
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(cfg); err == nil {
			if err := s.rdb.Set(ctx, taxasCacheKey(usuarioID), raw, taxasCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("taxas: falha ao gravar cache")
			}
		}
	}
	return cfg
}

func configToResponse(cfg *model.ConfigTaxas) *dto.ConfigTaxasResponse {
	resp := &dto.ConfigTaxasResponse{
		TaxaCreditoVista:     ResolverTaxa(model.MetodoCreditoVista, 0, cfg),
		TaxaCreditoParcelado: taxaPadraoCreditoParcelado,
		TaxaDebito:           ResolverTaxa(model.MetodoDebito, 0, cfg),
		TaxaPix:              ResolverTaxa(model.MetodoPix, 0, cfg),
		ParcelasTaxas:        map[string]decimal.Decimal{},
	}
	if cfg != nil {
		if cfg.TaxaCreditoParcelado != nil {
			resp.TaxaCreditoParcelado = *cfg.TaxaCreditoParcelado
		}
		for parcelas, t := range cfg.ParcelasTaxas.Data() {
			resp.ParcelasTaxas[parcelas] = t
		}
	}
	return resp
}
