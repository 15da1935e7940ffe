package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wontivero/POS-2025-sub000/internal/dto"
	"github.com/wontivero/POS-2025-sub000/internal/model"
	"github.com/wontivero/POS-2025-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	settingsCacheKey = "settings:app"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsService serves the global configuration the sale pipeline reads on
// every commit. Backed by the single app_settings row with a short Redis
// cache; updates invalidate the cache so cashier terminals converge fast.
type SettingsService interface {
	Get(ctx context.Context) (*model.AppSettings, error)
	Actualizar(ctx context.Context, req dto.ActualizarSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
	rdb  *redis.Client
}

func NewSettingsService(repo repository.SettingsRepository, rdb *redis.Client) SettingsService {
	return &settingsService{repo: repo, rdb: rdb}
}

func (s *settingsService) Get(ctx context.Context) (*model.AppSettings, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, settingsCacheKey).Bytes(); err == nil {
			var cfg model.AppSettings
			if jsonErr := json.Unmarshal(cached, &cfg); jsonErr == nil {
				return &cfg, nil
			}
		}
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(cfg); jsonErr == nil {
			_ = s.rdb.Set(ctx, settingsCacheKey, b, settingsCacheTTL).Err()
		}
	}
	return cfg, nil
}

func (s *settingsService) Actualizar(ctx context.Context, req dto.ActualizarSettingsRequest) (*dto.SettingsResponse, error) {
	cfg := &model.AppSettings{
		RecargoCreditoPct:       req.RecargoCreditoPct,
		LoyaltyHabilitado:       req.LoyaltyHabilitado,
		LoyaltyPorcentaje:       req.LoyaltyPorcentaje,
		LoyaltyImprimir:         req.LoyaltyImprimir,
		LoyaltyExpira:           req.LoyaltyExpira,
		LoyaltyExpiraDias:       req.LoyaltyExpiraDias,
		LoyaltyRevertirAlAnular: req.LoyaltyRevertirAlAnular,
		PermitirStockNegativo:   req.PermitirStockNegativo,
		NombreComercio:          req.NombreComercio,
		DireccionComercio:       req.DireccionComercio,
		CUITComercio:            req.CUITComercio,
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, settingsCacheKey).Err()
	}
	resp := settingsToResponse(cfg)
	return &resp, nil
}

func settingsToResponse(cfg *model.AppSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		RecargoCreditoPct:       cfg.RecargoCreditoPct,
		LoyaltyHabilitado:       cfg.LoyaltyHabilitado,
		LoyaltyPorcentaje:       cfg.LoyaltyPorcentaje,
		LoyaltyImprimir:         cfg.LoyaltyImprimir,
		LoyaltyExpira:           cfg.LoyaltyExpira,
		LoyaltyExpiraDias:       cfg.LoyaltyExpiraDias,
		LoyaltyRevertirAlAnular: cfg.LoyaltyRevertirAlAnular,
		PermitirStockNegativo:   cfg.PermitirStockNegativo,
		NombreComercio:          cfg.NombreComercio,
		DireccionComercio:       cfg.DireccionComercio,
		CUITComercio:            cfg.CUITComercio,
	}
}
