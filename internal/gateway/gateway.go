package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hollowdrift/claudegate/internal/backend"
	"github.com/hollowdrift/claudegate/internal/config"
	"github.com/hollowdrift/claudegate/internal/logger"
	"github.com/hollowdrift/claudegate/internal/store"
)

const adminPrefix = "/v1/admin"

// Gateway wires the stores and backend driver into the HTTP surface.
type Gateway struct {
	cfg     *config.Config
	keys    *store.APIKeyStore
	history *store.HistoryStore
	driver  backend.Driver
	locks   *convLocks
	log     *logger.Logger
}

// New creates a gateway on top of an already-dialed KV handle and a backend
// driver selected at startup.
func New(cfg *config.Config, kv store.KV, driver backend.Driver) *Gateway {
	return &Gateway{
		cfg:     cfg,
		keys:    store.NewAPIKeyStore(kv),
		history: store.NewHistoryStore(kv),
		driver:  driver,
		locks:   newConvLocks(),
		log:     logger.GetLogger().WithComponent("gateway"),
	}
}

// Router builds the gin engine with all endpoints and middleware.
func (g *Gateway) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(g.limitBody)

	r.GET("/health", g.handleHealth)

	v1 := r.Group("/v1")
	v1.Use(g.requireAPIKey)
	v1.POST("/chat/completions", g.handleChatCompletions)
	v1.POST("/edits", g.handleEdits)
	v1.POST("/embeddings", g.handleEmbeddings)
	v1.POST("/admin/generate_key", g.handleGenerateKey)

	return r
}

// limitBody caps request body size.
func (g *Gateway) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, g.cfg.Limits.MaxBodyBytes)
	c.Next()
}

// requireAPIKey checks the bearer token against the valid-key set. Admin
// paths are exempt: they authenticate against the master key inside their
// own handlers, not against the key store.
func (g *Gateway) requireAPIKey(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, adminPrefix) {
		c.Next()
		return
	}

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		writeError(c, errUnauthenticated("missing API key"))
		c.Abort()
		return
	}

	valid, err := g.keys.IsValid(c.Request.Context(), token)
	if err != nil {
		g.log.Error("API key lookup failed: %v", err)
		writeError(c, errInternal("key store unavailable"))
		c.Abort()
		return
	}
	if !valid {
		writeError(c, errForbidden("invalid API key"))
		c.Abort()
		return
	}
	c.Next()
}
