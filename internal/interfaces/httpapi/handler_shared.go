package httpapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
	"github.com/riskibarqy/draft-assistant-api/internal/usecase"
)

type Handler struct {
	leagueService *usecase.LeagueService
	playerService *usecase.PlayerService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	playerService *usecase.PlayerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService: leagueService,
		playerService: playerService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// parseSeasonID reads the {seasonId} path segment.
func parseSeasonID(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	seasonID, err := strconv.Atoi(value)
	if err != nil || seasonID <= 0 {
		return 0, fmt.Errorf("%w: season id must be a positive integer, got %q", usecase.ErrInvalidInput, value)
	}
	return seasonID, nil
}

type connectLeagueRequest struct {
	LeagueID   int64              `json:"leagueId" validate:"required,gt=0"`
	SeasonID   int                `json:"seasonId" validate:"required,gte=2000,lte=2100"`
	Credential *credentialRequest `json:"credential"`
}

type credentialRequest struct {
	ESPNS2 string `json:"espnS2" validate:"required_with=SWID"`
	SWID   string `json:"swid" validate:"required_with=ESPNS2"`
}

type connectLeagueResponse struct {
	Success bool           `json:"success"`
	League  league.Summary `json:"league"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Connected bool              `json:"connected"`
	League    *leagueContextDTO `json:"league"`
	APIURL    string            `json:"apiUrl"`
}

type leagueContextDTO struct {
	LeagueID    int64  `json:"leagueId"`
	SeasonID    int    `json:"seasonId"`
	Name        string `json:"name"`
	Private     bool   `json:"private"`
	ConnectedAt string `json:"connectedAt"`
}

func (r connectLeagueRequest) toInput() usecase.ConnectInput {
	in := usecase.ConnectInput{
		LeagueID: r.LeagueID,
		SeasonID: r.SeasonID,
	}
	if r.Credential != nil {
		in.Credential = league.Credential{
			ESPNS2: r.Credential.ESPNS2,
			SWID:   r.Credential.SWID,
		}
	}
	return in
}

func healthToDTO(status usecase.LeagueStatus) healthResponse {
	out := healthResponse{
		Status:    "ok",
		Connected: status.Connected,
		APIURL:    status.APIURL,
	}
	if status.Connected {
		out.League = &leagueContextDTO{
			LeagueID:    status.League.LeagueID,
			SeasonID:    status.League.SeasonID,
			Name:        status.League.Name,
			Private:     status.League.Credential.HasCredential(),
			ConnectedAt: status.League.ConnectedAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}
