package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fulbito-league/internal/usecase"
)

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateLeague")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	players := make([]usecase.NewPlayerInput, 0, len(req.Players))
	for _, p := range req.Players {
		players = append(players, usecase.NewPlayerInput{FirstName: p.FirstName, LastName: p.LastName})
	}

	item, err := h.leagueService.Create(ctx, principal, usecase.CreateLeagueInput{
		Name:           req.Name,
		PlayersPerTeam: req.PlayersPerTeam,
		Scoring:        scoringFromDTO(req.scoringDTO),
		Players:        players,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, createLeagueResponse{LeagueID: item.ID, Slug: item.Slug})
}

func (h *Handler) GetLeagueBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetLeagueBySlug")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("slug"))
	view, err := h.leagueService.GetBySlug(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get league by slug failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueViewToDTO(ctx, view))
}

func (h *Handler) GetAdminLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetAdminLeague")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	view, err := h.leagueService.GetAdmin(ctx, principal, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get admin league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueViewToDTO(ctx, view))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListMyLeagues")
	defer span.End()

	principal, err := principalOrError(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summaries, err := h.leagueService.ListMine(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list my leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, leagueSummaryToDTO(ctx, s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListStandings")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("slug"))
	board, err := h.standingService.BoardBySlug(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, board.League.Scoring, board.Standings))
}

func (h *Handler) GetMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatchups")
	defer span.End()

	slug := strings.TrimSpace(r.PathValue("slug"))
	query := r.URL.Query()
	player1ID := query.Get("player1Id")
	player2ID := query.Get("player2Id")

	report, err := h.matchupService.Get(ctx, slug, player1ID, player2ID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchups failed", "slug", slug, "player1_id", player1ID, "player2_id", player2ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupToDTO(ctx, report))
}
