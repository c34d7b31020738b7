package ports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/query"
	"github.com/Amund211/brawltools/internal/reporting"
)

// errorResponse always has "success": false
type errorResponse struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause"`
	// Message is the upstream failure message, if any
	Message string `json:"message,omitempty"`
}

// successResponse flattens data next to "success": true
func successResponse(data any) ([]byte, error) {
	marshalled, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(marshalled, &fields); err != nil {
		return nil, fmt.Errorf("response data is not an object: %w", err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	fields["success"] = json.RawMessage("true")

	return json.Marshal(fields)
}

func writeJSON(w http.ResponseWriter, statusCode int, response any) {
	body, err := json.Marshal(response)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"cause":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, data any) {
	body, err := successResponse(data)
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to create success response: %w", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Cause: "internal server error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Cause: "not found"})
}

func writeInvalidInput(w http.ResponseWriter, cause string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Cause: cause})
}

// writeError maps errors from the use cases to a response
//
// NOTE: The use cases and adapters handle their own error reporting
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Cause: "invalid input"})
	case errors.Is(err, domain.ErrTemporarilyUnavailable), errors.Is(err, query.ErrTimeout):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Cause: "temporarily unavailable"})
	default:
		response := errorResponse{Cause: "upstream failure"}
		var queryErr *query.Error
		if errors.As(err, &queryErr) {
			response.Message = queryErr.Message
		}
		writeJSON(w, http.StatusBadGateway, response)
	}
}

func parsePlayerID(raw string) (int, error) {
	playerID, err := strconv.Atoi(raw)
	if err != nil || playerID <= 0 {
		return 0, errors.New("invalid player id")
	}
	return playerID, nil
}

// parseGameMode defaults to singles when the parameter is missing
func parseGameMode(raw string) (domain.GameMode, error) {
	switch strings.ToLower(raw) {
	case "", "1", "singles", "1v1":
		return domain.GameModeSingles, nil
	case "2", "doubles", "2v2":
		return domain.GameModeDoubles, nil
	}
	return 0, errors.New("invalid game mode")
}

func parsePlayerIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, errors.New("missing player ids")
	}

	parts := strings.Split(raw, ",")
	playerIDs := make([]int, 0, len(parts))
	for _, part := range parts {
		playerID, err := parsePlayerID(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		playerIDs = append(playerIDs, playerID)
	}
	return playerIDs, nil
}

// parsePositiveInt returns fallback when raw is empty
func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%q is not a positive integer", raw)
	}
	return value, nil
}
