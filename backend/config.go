package main

import "sync"

type Config struct {
	AiLogSearchStats bool            `json:"ai_log_search_stats"`
	AiTtMaxEntries   int             `json:"ai_tt_max_entries"`
	Heuristics       HeuristicConfig `json:"heuristics"`
}

// HeuristicConfig names every evaluation weight. The defaults are the
// observed constants; nothing in the engine hardcodes them.
type HeuristicConfig struct {
	ManValue           int `json:"man_value"`
	KingValue          int `json:"king_value"`
	AdvanceWeight      int `json:"advance_weight"`
	NearPromotionBonus int `json:"near_promotion_bonus"`
	BackRowBonus       int `json:"back_row_bonus"`
	CenterWeight       int `json:"center_weight"`
	CaptureBonus       int `json:"capture_bonus"`
	EdgePenalty        int `json:"edge_penalty"`
	WinScore           int `json:"win_score"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiLogSearchStats: false,
		AiTtMaxEntries:   1 << 16,
		Heuristics: HeuristicConfig{
			ManValue:           100,
			KingValue:          150,
			AdvanceWeight:      2,
			NearPromotionBonus: 10,
			BackRowBonus:       5,
			CenterWeight:       1,
			CaptureBonus:       100,
			EdgePenalty:        3,
			WinScore:           100000,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
