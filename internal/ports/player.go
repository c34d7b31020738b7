package ports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Amund211/brawltools/internal/app"
	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/logging"
)

const defaultHistoryLimit = 100

type playerResponse struct {
	Player domain.Player `json:"player"`
}

func MakeGetPlayerHandler(getPlayer app.GetPlayer, middleware Middleware) http.HandlerFunc {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		playerID, err := parsePlayerID(r.PathValue("playerId"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}

		player, err := getPlayer(ctx, playerID)
		if err != nil {
			writeError(w, err)
			return
		}
		if player == nil {
			writeNotFound(w)
			return
		}

		ctx = logging.AddMetaToContext(ctx, slog.String("playerName", player.Name))
		writeSuccess(ctx, w, playerResponse{Player: *player})
	}

	return middleware(handler)
}

type playerPRResponse struct {
	PlayerID int             `json:"playerId"`
	GameMode domain.GameMode `json:"gameMode"`
	PR       domain.PlayerPR `json:"pr"`
}

func MakeGetPlayerPRHandler(getPlayerPR app.GetPlayerPR, middleware Middleware) http.HandlerFunc {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		playerID, err := parsePlayerID(r.PathValue("playerId"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}
		gameMode, err := parseGameMode(r.URL.Query().Get("gameMode"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}

		pr, err := getPlayerPR(ctx, playerID, gameMode)
		if err != nil {
			writeError(w, err)
			return
		}
		if pr == nil {
			writeNotFound(w)
			return
		}

		writeSuccess(ctx, w, playerPRResponse{
			PlayerID: playerID,
			GameMode: gameMode,
			PR:       *pr,
		})
	}

	return middleware(handler)
}

type prSnapshotResponse struct {
	QueriedAt time.Time            `json:"queriedAt"`
	Earnings  float64              `json:"earnings"`
	PR        domain.PRInformation `json:"pr"`
}

type prHistoryResponse struct {
	PlayerID int                  `json:"playerId"`
	GameMode domain.GameMode      `json:"gameMode"`
	History  []prSnapshotResponse `json:"history"`
}

func MakeGetPRHistoryHandler(getPRHistory app.GetPRHistory, middleware Middleware) http.HandlerFunc {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		playerID, err := parsePlayerID(r.PathValue("playerId"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}
		gameMode, err := parseGameMode(r.URL.Query().Get("gameMode"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}
		limit, err := parsePositiveInt(r.URL.Query().Get("limit"), defaultHistoryLimit)
		if err != nil {
			writeInvalidInput(w, "invalid limit")
			return
		}

		history, err := getPRHistory(ctx, playerID, gameMode, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		response := prHistoryResponse{
			PlayerID: playerID,
			GameMode: gameMode,
			History:  make([]prSnapshotResponse, 0, len(history)),
		}
		for _, snapshot := range history {
			response.History = append(response.History, prSnapshotResponse{
				QueriedAt: snapshot.QueriedAt,
				Earnings:  snapshot.PR.Earnings,
				PR:        snapshot.PR.PR,
			})
		}

		ctx = logging.AddMetaToContext(ctx, slog.String("historyLength", strconv.Itoa(len(history))))
		writeSuccess(ctx, w, response)
	}

	return middleware(handler)
}

func MakeGetPlayerPlacementsHandler(getPlayerPlacements app.GetPlayerPlacements, middleware Middleware) http.HandlerFunc {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		playerID, err := parsePlayerID(r.PathValue("playerId"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}
		gameMode, err := parseGameMode(r.URL.Query().Get("gameMode"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}

		placements, err := getPlayerPlacements(ctx, playerID, gameMode, r.URL.Query().Get("nextToken"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(ctx, w, placements)
	}

	return middleware(handler)
}
