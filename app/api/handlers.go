package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/database"
	"github.com/erdmkk/football-gossip-bot/app/tasks"
	"github.com/gin-gonic/gin"
)

const maxChangesLimit = 100

func NewHandler(changeRepo database.ChangeRepository, postRepo database.PostRepository,
	scheduler tasks.SchedulerInterface, version string) *Handler {
	return &Handler{
		changeRepo: changeRepo,
		postRepo:   postRepo,
		scheduler:  scheduler,
		version:    version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if postCount, err := h.postRepo.PostCount(); err == nil {
		health["posts"] = postCount
	}

	if h.scheduler != nil {
		health["tasks"] = h.scheduler.Statuses()
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.changeRepo.Stats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	topAthletes := make([]map[string]interface{}, 0, len(stats.TopAthletes))
	for _, a := range stats.TopAthletes {
		topAthletes = append(topAthletes, map[string]interface{}{
			"athlete": a.Athlete,
			"changes": a.Changes,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"total_changes": stats.TotalChanges,
		"follows":       stats.Follows,
		"unfollows":     stats.Unfollows,
		"total_posts":   stats.TotalPosts,
		"top_athletes":  topAthletes,
	})
}

func (h *Handler) APIGetChanges(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}
	if limit > maxChangesLimit {
		limit = maxChangesLimit
	}

	changes, err := h.changeRepo.RecentChanges(limit)
	if err != nil {
		slog.Error("Database error", "operation", "recent_changes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]map[string]interface{}, 0, len(changes))
	for _, change := range changes {
		out = append(out, map[string]interface{}{
			"kind":             change.Kind,
			"athlete":          change.Athlete,
			"athlete_handle":   change.AthleteHandle,
			"target_name":      change.TargetName,
			"target_handle":    change.TargetHandle,
			"target_followers": change.TargetFollowers,
			"drama_score":      change.DramaScore,
			"occurred_at":      change.OccurredAt.Format(time.RFC3339),
			"posted":           change.Posted,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"changes": out,
		"total":   len(out),
	})
}
