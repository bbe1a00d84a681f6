package dtos

import "time"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// CacheStatsResponse is returned by the admin cache endpoints
type CacheStatsResponse struct {
	Reference CacheCounters `json:"airport_reference"`
	Solar     CacheCounters `json:"solar_events"`
	Backend   string        `json:"backend"`
	Algorithm string        `json:"algorithm"`
}

type CacheCounters struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// AirportSyncResult describes one run of the airport import
type AirportSyncResult struct {
	TriggeredBy string         `json:"triggered_by"`
	Source      string         `json:"source"`
	Imported    int            `json:"imported"`
	StartedAt   time.Time      `json:"started_at"`
	DurationMs  int64          `json:"duration_ms"`
	Stats       map[string]any `json:"stats,omitempty"`
}
