package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/draft-assistant-api/internal/usecase"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Health reports the active league without calling the upstream.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, healthToDTO(h.leagueService.Status()))
}

func (h *Handler) ConnectLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConnectLeague")
	defer span.End()

	var req connectLeagueRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.leagueService.Connect(ctx, req.toInput())
	if err != nil {
		writeConnectError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, connectLeagueResponse{
		Success: true,
		League:  summary,
	})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	lc, err := h.leagueService.Session().Require()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := parseSeasonID(r.PathValue("seasonId"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.playerService.FetchPlayerPool(ctx, lc, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "fetch player pool failed",
			"league_id", lc.LeagueID,
			"season_id", seasonID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, players)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	lc, err := h.leagueService.Session().Require()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := parseSeasonID(r.PathValue("seasonId"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.leagueService.ListTeams(ctx, lc, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", lc.LeagueID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teams)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	lc, err := h.leagueService.Session().Require()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := parseSeasonID(r.PathValue("seasonId"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	draft, err := h.leagueService.GetDraft(ctx, lc, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft failed", "league_id", lc.LeagueID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, draft)
}
