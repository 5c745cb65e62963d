package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type driverCallRequest struct {
	Interface string `json:"interface"`
	Service   string `json:"service"`
	Method    string `json:"method"`
	Args      struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Model string `json:"model"`
	} `json:"args"`
}

// mockserver emulates the remote driver-call API for local development.
// Replies are deterministic and echo the conversation length, which makes
// history accumulation visible across turns.
func main() {
	port := flag.String("port", "8001", "Port to run the server on")
	flag.Parse()

	r := gin.Default()

	r.POST("/drivers/call", func(c *gin.Context) {
		var req driverCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   gin.H{"message": err.Error()},
			})
			return
		}

		last := ""
		if n := len(req.Args.Messages); n > 0 {
			last = req.Args.Messages[n-1].Content
		}
		content := fmt.Sprintf("[%s/%s] reply to %q (%d messages in context)",
			req.Service, req.Args.Model, last, len(req.Args.Messages))

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"result": gin.H{
				"message": gin.H{"content": content},
			},
		})
	})

	if err := r.Run(":" + *port); err != nil {
		log.Fatal(err)
	}
}
