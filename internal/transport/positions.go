package transport

import (
	"context"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// RemotePosition is a job position as published by the backend.
type RemotePosition struct {
	Key           string
	Name          string   `mapstructure:"name"`
	NameVI        string   `mapstructure:"name_vi"`
	Description   string   `mapstructure:"description"`
	MustHave      []string `mapstructure:"must_have_skills"`
	NiceToHave    []string `mapstructure:"nice_to_have_skills"`
	MinExperience string   `mapstructure:"min_experience"`
}

type positionsResponse struct {
	Positions map[string]any `json:"positions"`
}

// JobPositions returns the positions the backend can evaluate against, sorted
// by key. Results are cached for a few minutes.
func (c *Client) JobPositions(ctx context.Context) ([]RemotePosition, error) {
	if cached, found := c.cache.Get(positionsCacheKey); found {
		c.logger.Debug("job positions served from cache")
		return cached.([]RemotePosition), nil
	}

	var resp positionsResponse
	if err := c.getJSON(ctx, c.APIURL+positionsPath, &resp); err != nil {
		return nil, err
	}

	positions, err := decodePositions(resp.Positions)
	if err != nil {
		return nil, &Error{Op: "GET " + positionsPath, Err: err}
	}

	c.logger.Debug("got job positions from backend", zap.Int("count", len(positions)))
	c.cache.Set(positionsCacheKey, positions, cache.DefaultExpiration)

	return positions, nil
}

func decodePositions(raw map[string]any) ([]RemotePosition, error) {
	var byKey map[string]RemotePosition
	if err := mapstructure.Decode(raw, &byKey); err != nil {
		return nil, fmt.Errorf("decode job positions: %w", err)
	}

	positions := make([]RemotePosition, 0, len(byKey))
	for key, p := range byKey {
		p.Key = key
		positions = append(positions, p)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Key < positions[j].Key
	})

	return positions, nil
}
