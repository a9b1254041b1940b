package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

func (h *Handler) RunWarmStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunWarmStandingsJob")
	defer span.End()

	if h.warmupService == nil {
		writeError(ctx, w, fmt.Errorf("%w: standings warm-up is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.warmupService.Warm(ctx)
	if err != nil {
		// Partial failures still report counts.
		h.logger.WarnContext(ctx, "warm standings job failed",
			"league_count", result.LeagueCount,
			"failed_count", result.FailedCount,
			"error", err,
		)
		if result.LeagueCount == 0 {
			writeError(ctx, w, err)
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, warmupResultDTO{
		LeagueCount: result.LeagueCount,
		WarmedCount: result.WarmedCount,
		FailedCount: result.FailedCount,
		WorkerCount: result.WorkerCount,
		DurationMS:  result.Duration.Milliseconds(),
	})
}
