package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

func (h *Handler) ListMatchHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListMatchHistory")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("slug"))
	matches, err := h.matchService.HistoryBySlug(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list match history failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(ctx, matches))
}

func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RecordMatch")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req recordMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	playedAt, err := parseMatchDate(req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.matchService.Record(ctx, principal, usecase.RecordMatchInput{
		LeagueID:    leagueID,
		PlayedAt:    playedAt,
		Team1:       rosterEntriesFromRequest(req.Team1Players),
		Team2:       rosterEntriesFromRequest(req.Team2Players),
		Team1Score:  req.Team1Score,
		Team2Score:  req.Team2Score,
		MVPPlayerID: req.MvpPlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recordMatchResponse{
		MatchID:   stored.ID,
		MatchDate: formatTime(stored.PlayedAt),
	})
}
