package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the tunables for the match handler and the signal feed.
// Tick multiples are relative to the match tick rate declared by the handler.
type GameConfig struct {
	SeatCount          int    `json:"seat_count"`
	StartHandSize      int    `json:"start_hand_size"`
	ReadyPollTicks     int    `json:"ready_poll_ticks"`
	SelectionPollTicks int    `json:"selection_poll_ticks"`
	RoundCloseSeconds  int    `json:"round_close_seconds"`
	FeedListenAddr     string `json:"feed_listen_addr"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to parse game config: %w", err)
			return
		}
		applyDefaults(&c)
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or defaults when no file
// was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		c := &GameConfig{}
		applyDefaults(c)
		return c
	}
	return cfg
}

func applyDefaults(c *GameConfig) {
	if c.SeatCount <= 0 {
		c.SeatCount = 2
	}
	if c.StartHandSize <= 0 {
		c.StartHandSize = 7
	}
	if c.ReadyPollTicks <= 0 {
		c.ReadyPollTicks = 2
	}
	if c.SelectionPollTicks <= 0 {
		c.SelectionPollTicks = 5
	}
	if c.RoundCloseSeconds <= 0 {
		c.RoundCloseSeconds = 60
	}
}
