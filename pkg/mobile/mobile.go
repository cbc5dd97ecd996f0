// Package mobile wraps the Stock Mentor core for gomobile bindings. Every
// method speaks JSON strings because gomobile cannot express slices of
// structs across the boundary.
package mobile

import (
	"context"
	"encoding/json"

	"stockmentor/pkg/stockmentor"
)

// Core wraps the Stock Mentor core for gomobile bindings.
type Core struct {
	core *stockmentor.Core
}

// Open initializes the core with a database path and market-data API key.
func Open(dbPath, marketAPIKey string) (*Core, error) {
	core, err := stockmentor.OpenWithOptions(stockmentor.Options{
		DBPath:       dbPath,
		MarketAPIKey: marketAPIKey,
	})
	if err != nil {
		return nil, err
	}
	return &Core{core: core}, nil
}

// Close releases resources.
func (c *Core) Close() error {
	if c == nil || c.core == nil {
		return nil
	}
	return c.core.Close()
}

// RoadmapJSON returns the learning roadmap as JSON.
func (c *Core) RoadmapJSON() (string, error) {
	steps, err := c.core.GetRoadmap()
	if err != nil {
		return "", err
	}
	return marshalJSON(steps)
}

// TopTickersJSON returns the popular ticker summaries as JSON.
func (c *Core) TopTickersJSON() (string, error) {
	return marshalJSON(c.core.TopTickers(context.Background()))
}

// TickerDetailJSON returns a symbol's snapshot over the given period as JSON.
func (c *Core) TickerDetailJSON(symbol, period string) (string, error) {
	snap, err := c.core.TickerDetail(context.Background(), symbol, period)
	if err != nil {
		return "", err
	}
	return marshalJSON(snap)
}

// ExplainJSON explains a symbol using preferences given as a JSON object
// with experienceLevel and riskTolerance keys. An empty string means no
// preferences.
func (c *Core) ExplainJSON(symbol, preferencesJSON string) (string, error) {
	var prefs *stockmentor.ExplainPreferences
	if preferencesJSON != "" {
		prefs = &stockmentor.ExplainPreferences{}
		if err := json.Unmarshal([]byte(preferencesJSON), prefs); err != nil {
			return "", err
		}
	}
	result, err := c.core.ExplainStock(context.Background(), symbol, nil, prefs)
	if err != nil {
		return "", err
	}
	return marshalJSON(result)
}

func marshalJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
