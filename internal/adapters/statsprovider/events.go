package statsprovider

import (
	"context"
	"fmt"

	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/query"
)

func (b *BrawlTools) ListEvents(ctx context.Context, params ListEventsParams) (domain.Events, error) {
	if err := requireGameMode(params.GameMode); err != nil {
		return domain.Events{}, err
	}

	events, _, err := get[domain.Events](ctx, b, endpoint{
		name:           "ListEvents",
		path:           "/event",
		failureMessage: "Error when fetching events.",
	}, query.Params{
		{Key: "gameMode", Value: params.GameMode},
		{Key: "nextToken", Value: params.NextToken},
		{Key: "maxResults", Value: params.MaxResults},
		{Key: "isOfficial", Value: params.IsOfficial},
		{Key: "year", Value: params.Year},
	})
	if err != nil {
		return domain.Events{}, err
	}
	events.Tournaments = orEmpty(events.Tournaments)
	return events, nil
}

// ListPR returns one page of the power rankings for a game mode and region
func (b *BrawlTools) ListPR(ctx context.Context, params ListPRParams) (domain.PRList, error) {
	if err := requireGameMode(params.GameMode); err != nil {
		return domain.PRList{}, err
	}
	if params.Region == "" {
		return domain.PRList{}, fmt.Errorf("%w: region is required", domain.ErrInvalidInput)
	}

	list, _, err := get[domain.PRList](ctx, b, endpoint{
		name:           "ListPR",
		path:           "/pr",
		failureMessage: "Error when fetching power rankings.",
	}, query.Params{
		{Key: "page", Value: params.Page},
		{Key: "maxResults", Value: params.MaxResults},
		{Key: "gameMode", Value: params.GameMode},
		{Key: "region", Value: params.Region},
		{Key: "orderBy", Value: params.OrderBy},
	})
	if err != nil {
		return domain.PRList{}, err
	}
	list.Players = orEmpty(list.Players)
	return list, nil
}
