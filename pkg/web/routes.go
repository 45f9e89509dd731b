package web

import (
	"net/http"
	"strconv"

	"github.com/PancyStudios/PancyGuardGo/pkg/engine"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/gin-gonic/gin"
)

const defaultLeaderboardSize = 10

// BotStatus is the part of the Discord client the API reports on
type BotStatus interface {
	IsReady() bool
	GuildCount() int
}

// DBStatus reports the database connection
type DBStatus interface {
	GetStatus() (string, bool)
}

type api struct {
	engine *engine.Engine
	bot    BotStatus
	db     DBStatus
}

// SetupAPIRoutes mounts the /api routes. bot and db may be nil.
func SetupAPIRoutes(s *Server, eng *engine.Engine, bot BotStatus, db DBStatus) {
	a := &api{engine: eng, bot: bot, db: db}

	r := s.Group("/api")
	{
		r.GET("/health", a.health)
		r.GET("/status", a.status)
		r.GET("/bans", a.bans)

		g := r.Group("/guilds/:guild")
		g.GET("/leaderboard", a.leaderboard)
		g.GET("/members/:member/warnings", a.warnings)
		g.GET("/members/:member/level", a.level)
	}
}

func (a *api) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard Go is running",
	})
}

func (a *api) status(c *gin.Context) {
	body := gin.H{"status": "ok", "watchMode": a.engine.WatchMode()}

	if a.db != nil {
		dbStatus, dbOnline := a.db.GetStatus()
		body["database"] = gin.H{"status": dbStatus, "isOnline": dbOnline}
	}
	if a.bot != nil {
		body["bot"] = gin.H{"isOnline": a.bot.IsReady(), "guilds": a.bot.GuildCount()}
	}

	c.JSON(http.StatusOK, body)
}

func (a *api) leaderboard(c *gin.Context) {
	top := defaultLeaderboardSize
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top debe ser un entero positivo"})
			return
		}
		top = n
	}

	c.JSON(http.StatusOK, gin.H{
		"guild":       c.Param("guild"),
		"leaderboard": a.engine.Levels.Leaderboard(c.Param("guild"), top),
	})
}

func (a *api) warnings(c *gin.Context) {
	entries := a.engine.Warnings.List(c.Param("guild"), c.Param("member"))
	c.JSON(http.StatusOK, gin.H{
		"member":   c.Param("member"),
		"count":    len(entries),
		"warnings": entries,
	})
}

func (a *api) level(c *gin.Context) {
	c.JSON(http.StatusOK, a.engine.Levels.Progress(c.Param("guild"), c.Param("member")))
}

type banView struct {
	Identifier string `json:"identifier"`
	models.BanRecord
}

func (a *api) bans(c *gin.Context) {
	list := a.engine.Bans.List()
	out := make([]banView, 0, len(list))
	for _, b := range list {
		out = append(out, banView{Identifier: b.Identifier, BanRecord: b.Record})
	}
	c.JSON(http.StatusOK, gin.H{"bans": out})
}
