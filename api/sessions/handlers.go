package sessions

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
	"github.com/killallgit/book-search/internal/services/searchform"
	"github.com/killallgit/book-search/internal/services/sessions"
)

// HeartbeatInterval is how often an idle event stream sends a ping.
var HeartbeatInterval = 15 * time.Second

// Create opens a session seeded from the request's query string
// @Summary      Create a search session
// @Description  Opens a session whose state starts from the configured default page size, overridden by searchText, pageSize and page
// @Tags         sessions
// @Produce      json
// @Param        searchText query string false "Search text"
// @Param        pageSize   query int    false "Page size"
// @Param        page       query int    false "1-based page"
// @Success      201 {object} types.SessionResponse
// @Failure      503 {object} types.ErrorResponse
// @Router       /api/v1/sessions [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := deps.Sessions.Create(c.Request.URL.Query())
		c.JSON(http.StatusCreated, sessionResponse(s, "Session created"))
	}
}

// Get returns a session's current state
// @Summary      Get a search session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} types.SessionResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.Sessions.Get(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionResponse(s, "Session retrieved successfully"))
	}
}

// PutSearch submits the search form
// @Summary      Submit a search
// @Description  Starts a new search at page 1 keeping the current page size. Results arrive on the event stream.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Session ID"
// @Param        request body types.SubmitRequest true "Search text"
// @Success      202 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id}/search [put]
func PutSearch(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.Sessions.Get(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		var req types.SubmitRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := searchform.Submit(s.Holder(), req.SearchText); err != nil {
			types.SendError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, sessionResponse(s, "Search submitted"))
	}
}

// PutPage changes the page or page size
// @Summary      Change page
// @Description  Keeps the current search text and replaces page and page size
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Session ID"
// @Param        request body types.PageRequest true "Pagination"
// @Success      202 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id}/page [put]
func PutPage(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.Sessions.Get(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		var req types.PageRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		if err := searchform.ChangePage(s.Holder(), req.Page, req.PageSize); err != nil {
			types.SendError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, sessionResponse(s, "Page changed"))
	}
}

// Delete closes a session
// @Summary      Close a search session
// @Tags         sessions
// @Param        id path string true "Session ID"
// @Success      204
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Sessions.Close(c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// Events streams session events
// @Summary      Session event stream
// @Description  Server-Sent Events: state (address-bar state), results (a fetched page) and alert (fetch failure message)
// @Tags         sessions
// @Produce      text/event-stream
// @Param        id path string true "Session ID"
// @Success      200 {string} string "event stream"
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id}/events [get]
func Events(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.Sessions.Get(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		events, cancel := s.Subscribe()
		defer cancel()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
		c.Writer.Flush()

		heartbeat := time.NewTicker(HeartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				c.SSEvent(ev.Type, ev.Data)
			case <-heartbeat.C:
				c.SSEvent("ping", gin.H{"time": time.Now().Unix()})
			case <-c.Request.Context().Done():
				return
			}
			c.Writer.Flush()
		}
	}
}

func sessionResponse(s *sessions.Session, message string) types.SessionResponse {
	state := s.State()
	url := "/"
	if state.Query != "" {
		url += "?" + state.Query
	}
	return types.SessionResponse{
		BaseResponse: types.BaseResponse{
			Status:  types.StatusOK,
			Message: message,
		},
		ID:     s.ID,
		Search: state.Search,
		Query:  state.Query,
		URL:    url,
		Events: "/api/v1/sessions/" + s.ID + "/events",
	}
}
