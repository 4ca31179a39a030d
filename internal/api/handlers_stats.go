package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"conversions":       s.orchestrator.Stats(),
		"queue_depth":       s.orchestrator.QueueDepth(),
		"jobs":              s.orchestrator.JobCount(),
		"workers":           s.cfg.WorkerCount,
		"table_parallelism": s.cfg.TableParallelism,
		"stats_window_secs": int64(s.cfg.StatsWindow.Seconds()),
	})
}
