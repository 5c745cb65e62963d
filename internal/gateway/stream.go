package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hollowdrift/claudegate/internal/backend"
	"github.com/hollowdrift/claudegate/internal/models"
	"github.com/hollowdrift/claudegate/internal/translate"
)

// saveTimeout bounds the history write performed after a streamed reply,
// when the request context may already be cancelled.
const saveTimeout = 5 * time.Second

// streamCompletion transcodes the backend's fragment sequence into SSE delta
// frames. Each fragment becomes one chat.completion.chunk; the stream ends
// with an empty delta carrying finish_reason "stop" and no sentinel line.
// Client disconnect cancels the backend stream and skips persistence;
// a normally finished stream is persisted like the non-streaming path.
func (g *Gateway) streamCompletion(c *gin.Context, req *models.ChatCompletionRequest, breq *backend.Request, full []models.ChatMessage) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), g.cfg.Backend.Timeout.Std())
	defer cancel()

	fragments, err := g.driver.CompleteStream(ctx, breq)
	if err != nil {
		g.log.Error("Backend stream failed to start: %v", err)
		writeError(c, err)
		return
	}

	id := translate.NewCompletionID()

	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	var reply strings.Builder
	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			g.log.Info("Client disconnected during stream for %s", req.ConversationID)
			return
		case frag, ok := <-fragments:
			if !ok {
				// The producer also stops on cancellation; only persist a
				// stream that ran to completion for a live client.
				g.writeChunk(c, translate.FinalChunk(id, req.Model))
				if c.Request.Context().Err() == nil {
					g.persistStreamedReply(req.ConversationID, full, reply.String())
				}
				return
			}
			reply.WriteString(frag)
			g.writeChunk(c, translate.NewChunk(id, req.Model, frag))
		}
	}
}

func (g *Gateway) writeChunk(c *gin.Context, chunk *models.ChatCompletionChunk) {
	data, err := json.Marshal(chunk)
	if err != nil {
		g.log.Error("Chunk encode failed: %v", err)
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", data)
	c.Writer.Flush()
}

func (g *Gateway) persistStreamedReply(conversationID string, full []models.ChatMessage, reply string) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	saved := append(full, models.ChatMessage{Role: "assistant", Content: reply})
	if err := g.history.Save(ctx, conversationID, saved); err != nil {
		g.log.Error("History save failed for %s after stream: %v", conversationID, err)
	}
}
