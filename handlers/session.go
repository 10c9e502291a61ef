package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kerubo0/Rafiki/services/dialogue"
	"github.com/Kerubo0/Rafiki/services/session"
)

// CreateSessionHandler mints a new conversation session.
func CreateSessionHandler(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Create(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"session_id": sess.SessionID,
			"context":    sess.Context,
			"created_at": sess.CreatedAt,
		})
	}
}

// GetSessionHandler returns the session along with the derived booking
// progress.
func GetSessionHandler(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c.Request.Context(), c.Param("id"))
		if err == session.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"session_id":         sess.SessionID,
			"context":            sess.Context,
			"entities":           sess.Entities,
			"history":            sess.History,
			"last_intent":        sess.LastIntent,
			"last_activity":      sess.LastActivity,
			"conversation_state": dialogue.ConversationState(sess.Context, sess.Entities),
		})
	}
}

// DeleteSessionHandler ends a conversation and discards its state.
func DeleteSessionHandler(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.Delete(c.Request.Context(), c.Param("id"))
		if err == session.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
	}
}
