package gateway

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hollowdrift/claudegate/internal/backend"
	"github.com/hollowdrift/claudegate/internal/models"
	"github.com/hollowdrift/claudegate/internal/translate"
)

func (g *Gateway) handleChatCompletions(c *gin.Context) {
	var req models.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errBadRequest(err.Error()))
		return
	}
	if req.ConversationID == "" {
		writeError(c, errBadRequest("conversation_id required"))
		return
	}
	if req.Model == "" {
		req.Model = g.cfg.Backend.DefaultModel
	}
	if req.Temperature == 0 {
		req.Temperature = 1.0
	}

	// Hold the per-conversation lock across load, completion and save so
	// concurrent turns against the same id cannot drop each other.
	unlock := g.locks.lock(req.ConversationID)
	defer unlock()

	history, err := g.history.Load(c.Request.Context(), req.ConversationID)
	if err != nil {
		g.log.Error("History load failed for %s: %v", req.ConversationID, err)
		writeError(c, errInternal("conversation history unavailable"))
		return
	}

	full := make([]models.ChatMessage, 0, len(history)+len(req.Messages))
	full = append(full, history...)
	full = append(full, req.Messages...)

	breq := &backend.Request{
		Service:     backend.RouteModel(req.Model),
		Model:       req.Model,
		Messages:    full,
		Temperature: req.Temperature,
		Functions:   req.Functions,
	}

	if req.Stream {
		g.streamCompletion(c, &req, breq, full)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), g.cfg.Backend.Timeout.Std())
	defer cancel()

	text, err := g.driver.Complete(ctx, breq)
	if err != nil {
		g.log.Error("Backend completion failed: %v", err)
		writeError(c, err)
		return
	}

	saved := append(full, models.ChatMessage{Role: "assistant", Content: text})
	if err := g.history.Save(c.Request.Context(), req.ConversationID, saved); err != nil {
		g.log.Error("History save failed for %s: %v", req.ConversationID, err)
		writeError(c, errInternal("failed to persist conversation"))
		return
	}

	c.JSON(http.StatusOK, translate.NewCompletion(req.Model, text, req.Functions))
}

func (g *Gateway) handleEdits(c *gin.Context) {
	var req models.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errBadRequest(err.Error()))
		return
	}
	if req.Model == "" {
		req.Model = g.cfg.Backend.DefaultModel
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), g.cfg.Backend.Timeout.Std())
	defer cancel()

	text, err := g.driver.Complete(ctx, &backend.Request{
		Service: backend.RouteModel(req.Model),
		Model:   req.Model,
		Messages: []models.ChatMessage{
			{Role: "user", Content: translate.EditPrompt(req.Input, req.Instruction)},
		},
		Temperature: 1.0,
	})
	if err != nil {
		g.log.Error("Backend edit failed: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, translate.NewEdit(text))
}

func (g *Gateway) handleEmbeddings(c *gin.Context) {
	// 501 is the contract; the text approximation below is opt-in and
	// explicitly unreliable.
	if !g.cfg.Backend.EmbeddingsHack {
		writeError(c, errUnsupported("embeddings are not supported by the configured backend"))
		return
	}

	var req models.EmbeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errBadRequest(err.Error()))
		return
	}
	if req.Model == "" {
		req.Model = g.cfg.Backend.DefaultModel
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), g.cfg.Backend.Timeout.Std())
	defer cancel()

	text, err := g.driver.Complete(ctx, &backend.Request{
		Service: backend.RouteModel(req.Model),
		Model:   req.Model,
		Messages: []models.ChatMessage{
			{Role: "user", Content: translate.EmbeddingPrompt(req.Input)},
		},
		Temperature: 0,
	})
	if err != nil {
		g.log.Error("Backend embedding call failed: %v", err)
		writeError(c, err)
		return
	}

	vec, err := translate.ParseVector(text)
	if err != nil {
		g.log.Warn("Embedding approximation produced unparsable output: %v", err)
		writeError(c, errUnsupported("embedding approximation failed: backend did not return a numeric vector"))
		return
	}

	c.JSON(http.StatusOK, translate.NewEmbedding(req.Model, vec))
}

func (g *Gateway) handleGenerateKey(c *gin.Context) {
	master := c.GetHeader("X-Master-Key")
	if subtle.ConstantTimeCompare([]byte(master), []byte(g.cfg.MasterKey)) != 1 {
		writeError(c, errForbidden("invalid master key"))
		return
	}

	key, err := g.keys.Issue(c.Request.Context())
	if err != nil {
		g.log.Error("Key issuance failed: %v", err)
		writeError(c, errInternal("failed to issue key"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"api_key": key})
}

func (g *Gateway) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"backend_endpoint": g.cfg.Backend.Origin,
	})
}
