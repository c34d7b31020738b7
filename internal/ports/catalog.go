package ports

import (
	"log/slog"
	"net/http"

	"github.com/Amund211/brawltools/internal/app"
	"github.com/Amund211/brawltools/internal/logging"
)

func MakeSearchPlayersHandler(searchPlayers app.SearchPlayers, middleware Middleware) http.HandlerFunc {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		searchTerm := r.URL.Query().Get("query")
		if searchTerm == "" {
			writeInvalidInput(w, "missing query")
			return
		}
		if len(searchTerm) > 100 {
			writeInvalidInput(w, "query too long")
			return
		}
		ctx = logging.AddMetaToContext(ctx, slog.String("searchTerm", searchTerm))

		results, err := searchPlayers(ctx, searchTerm, r.URL.Query().Get("nextToken"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(ctx, w, results)
	}

	return middleware(handler)
}

func MakeGetMatchupHandler(getMatchup app.GetMatchup, middleware Middleware) http.HandlerFunc {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		entrant1, err := parsePlayerIDs(r.URL.Query().Get("entrant1"))
		if err != nil {
			writeInvalidInput(w, "entrant1: "+err.Error())
			return
		}
		entrant2, err := parsePlayerIDs(r.URL.Query().Get("entrant2"))
		if err != nil {
			writeInvalidInput(w, "entrant2: "+err.Error())
			return
		}
		gameMode, err := parseGameMode(r.URL.Query().Get("gameMode"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}

		matchups, err := getMatchup(ctx, entrant1, entrant2, gameMode, r.URL.Query().Get("nextToken"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(ctx, w, matchups)
	}

	return middleware(handler)
}

func MakeListPRHandler(listPR app.ListPR, middleware Middleware) http.HandlerFunc {
	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		gameMode, err := parseGameMode(r.URL.Query().Get("gameMode"))
		if err != nil {
			writeInvalidInput(w, err.Error())
			return
		}
		region := r.URL.Query().Get("region")
		if region == "" {
			writeInvalidInput(w, "missing region")
			return
		}
		page, err := parsePositiveInt(r.URL.Query().Get("page"), 1)
		if err != nil {
			writeInvalidInput(w, "invalid page")
			return
		}

		list, err := listPR(ctx, gameMode, region, page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(ctx, w, list)
	}

	return middleware(handler)
}
