package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListPlayers")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("slug"))
	players, err := h.playerService.ListBySlug(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "AddPlayer")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req newPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Add(ctx, principal, usecase.AddPlayerInput{
		LeagueID:  leagueID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, item))
}

func (h *Handler) EditPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "EditPlayer")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req newPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Edit(ctx, principal, usecase.EditPlayerInput{
		LeagueID:  leagueID,
		PlayerID:  playerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "edit player failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeletePlayer")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.playerService.Delete(ctx, principal, leagueID, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"playerId": playerID})
}

func (h *Handler) SetPlayerImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SetPlayerImage")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req setPlayerImageRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.SetImage(ctx, principal, usecase.SetPlayerImageInput{
		LeagueID: leagueID,
		PlayerID: playerID,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set player image failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item))
}
