package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Amund211/brawltools/internal/adapters/statsprovider"
	"github.com/Amund211/brawltools/internal/constants"
	"github.com/Amund211/brawltools/internal/logging"
	"github.com/Amund211/brawltools/internal/query"
)

func main() {
	apiURL := flag.String("api-url", constants.DEFAULT_API_URL, "address of the brawltools API")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-api-url URL] <playerId>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fail := func(msg string, args ...any) {
		logger.Error(msg, args...)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	playerID, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		fail("Invalid player id", "playerId", flag.Arg(0))
	}

	executor := query.NewExecutor(&http.Client{Timeout: 10 * time.Second}, strings.TrimSuffix(*apiURL, "/"))
	brawlTools, err := statsprovider.New(executor)
	if err != nil {
		fail("Failed to initialize statistics provider", "error", err.Error())
	}

	ctx := logging.AddToContext(context.Background(), logger)
	player, err := brawlTools.GetPlayer(ctx, playerID)
	if err != nil {
		fail("Failed to get player", "error", err.Error())
	}

	// Prints null when the player does not exist
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(player); err != nil {
		fail("Failed to encode player", "error", err.Error())
	}
}
