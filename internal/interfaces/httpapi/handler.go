package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fulbito-league/internal/platform/logging"
	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	leagueService   *usecase.LeagueService
	playerService   *usecase.PlayerService
	matchService    *usecase.MatchService
	matchupService  *usecase.MatchupService
	standingService *usecase.StandingService
	warmupService   *usecase.StandingWarmupService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	matchupService *usecase.MatchupService,
	standingService *usecase.StandingService,
	warmupService *usecase.StandingWarmupService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:   leagueService,
		playerService:   playerService,
		matchService:    matchService,
		matchupService:  matchupService,
		standingService: standingService,
		warmupService:   warmupService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, target); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
