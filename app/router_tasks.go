package app

import (
	"fmt"
	"time"

	"taskhub/collab-api/app/board"
	"taskhub/collab-api/app/project"
	"taskhub/collab-api/app/root"
	"taskhub/collab-api/app/task"
	"taskhub/collab-api/config"
	"taskhub/collab-api/db"
	"taskhub/collab-api/internal"
	"taskhub/collab-api/internal/service"
	"taskhub/collab-api/pkg/middleware"
	"taskhub/collab-api/pkg/security"
	"taskhub/collab-api/pkg/validators"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// NewTasksRouter builds the tasks service: projects, boards and tasks
// as plain CRUD resources behind the shared JWT middleware
func NewTasksRouter(cfg *config.Config) (*gin.Engine, error) {
	d := &internal.Deps{Cfg: cfg}

	database, err := db.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	d.Tokens = security.NewTokenIssuer(cfg, database)
	d.Mail = service.NewDispatcher(cfg)

	validators.RegisterTaskBindings()

	router := newEngine(cfg)

	jwt := middleware.NewJWTMiddleware(database, d.Tokens)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit,
		Burst:             cfg.RateLimit * 2,
	})

	store := newCacheStore(cfg)

	m := router.Group("/api", rateLimiter, middleware.BodySizeLimiter(maxBodySize))
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	p := m.Group("/projects", jwt)
	{
		// GET /api/projects		-> Lists projects by owner
		p.GET("", cacheFor(store, 15), func(c *gin.Context) { project.ProjectList(c, d) })

		// GET /api/projects/:id	-> Returns a single project
		p.GET("/:id", func(c *gin.Context) { project.ProjectFetch(c, d) })

		// POST /api/projects		-> Creates a project
		p.POST("", func(c *gin.Context) { project.ProjectCreate(c, d) })

		// PUT /api/projects/:id	-> Updates a project
		p.PUT("/:id", func(c *gin.Context) { project.ProjectUpdate(c, d) })

		// DELETE /api/projects/:id	-> Deletes a project
		p.DELETE("/:id", func(c *gin.Context) { project.ProjectDelete(c, d) })
	}

	b := m.Group("/boards", jwt)
	{
		// GET /api/boards		-> Lists boards by project
		b.GET("", cacheFor(store, 15), func(c *gin.Context) { board.BoardList(c, d) })

		// GET /api/boards/:id		-> Returns a single board
		b.GET("/:id", func(c *gin.Context) { board.BoardFetch(c, d) })

		// POST /api/boards		-> Creates a board under a project
		b.POST("", func(c *gin.Context) { board.BoardCreate(c, d) })

		// PUT /api/boards/:id		-> Updates a board
		b.PUT("/:id", func(c *gin.Context) { board.BoardUpdate(c, d) })

		// DELETE /api/boards/:id	-> Deletes a board
		b.DELETE("/:id", func(c *gin.Context) { board.BoardDelete(c, d) })
	}

	t := m.Group("/tasks", jwt)
	{
		// GET /api/tasks		-> Lists tasks by board with filters
		t.GET("", cacheFor(store, 15), func(c *gin.Context) { task.TaskList(c, d) })

		// GET /api/tasks/:id		-> Returns a single task
		t.GET("/:id", func(c *gin.Context) { task.TaskFetch(c, d) })

		// POST /api/tasks		-> Creates a task on a board
		t.POST("", func(c *gin.Context) { task.TaskCreate(c, d) })

		// PUT /api/tasks/:id		-> Updates a task
		t.PUT("/:id", func(c *gin.Context) { task.TaskUpdate(c, d) })

		// DELETE /api/tasks/:id	-> Deletes a task
		t.DELETE("/:id", func(c *gin.Context) { task.TaskDelete(c, d) })
	}

	return router, nil
}

// newCacheStore prefers redis when it's configured so multiple
// replicas share one cache, and falls back to an in-memory store
func newCacheStore(cfg *config.Config) persist.CacheStore {
	if cfg.RedisAddr != "" {
		return persist.NewRedisStore(redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		}))
	}

	return persist.NewMemoryStore(time.Minute)
}

func cacheFor(store persist.CacheStore, sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
