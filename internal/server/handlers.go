package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/calendar"
	"github.com/pfrederiksen/advent-wins/internal/filter"
	"github.com/pfrederiksen/advent-wins/internal/logger"
	"github.com/pfrederiksen/advent-wins/internal/tracker"
)

// Handler holds the dependencies of the HTTP handlers
type Handler struct {
	tracker      *tracker.Tracker
	calendarYear int
}

// NewHandler creates a Handler. calendarYear dates the entries of the ICS export.
func NewHandler(t *tracker.Tracker, calendarYear int) *Handler {
	return &Handler{tracker: t, calendarYear: calendarYear}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.GET("/status", h.Status)
	api.POST("/check", h.Check)
	api.GET("/days", h.Days)
	api.GET("/wins", h.Wins)
	api.GET("/wins.ics", h.WinsCalendar)
	api.GET("/groups", h.Groups)
	api.POST("/groups/:groupID/members", h.AddMember)
	api.PUT("/groups/:groupID/members/:memberID", h.EditMember)
	api.DELETE("/groups/:groupID/members/:memberID", h.RemoveMember)
	api.PUT("/groups/:groupID", h.RenameGroup)
	api.GET("/groups/:groupID/share", h.Share)
	api.POST("/import", h.Import)
}

type memberRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Avatar string `json:"avatar"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type importRequest struct {
	Data string `json:"data" binding:"required"`
}

// Health reports that the server is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status returns the data source and freshness of the stored data
func (h *Handler) Status(c *gin.Context) {
	status, err := h.tracker.Status()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Check runs one acquisition
func (h *Handler) Check(c *gin.Context) {
	simulate, err := strconv.ParseBool(c.DefaultQuery("simulate", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid simulate value: " + c.Query("simulate")})
		return
	}

	res, err := h.tracker.Check(c.Request.Context(), simulate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Days returns the stored day data prepared for display
func (h *Handler) Days(c *gin.Context) {
	days, err := h.tracker.Days()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// Wins returns matched wins, narrowed by the optional ?filter query
func (h *Handler) Wins(c *gin.Context) {
	f, err := filter.Parse(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wins, err := h.tracker.Wins()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f.Apply(wins))
}

// WinsCalendar returns all matched wins as an iCalendar file
func (h *Handler) WinsCalendar(c *gin.Context) {
	wins, err := h.tracker.Wins()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="advent-wins.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.GenerateICS(wins, h.calendarYear, time.Now())))
}

// Groups returns the registered groups
func (h *Handler) Groups(c *gin.Context) {
	groups, err := h.tracker.Groups()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// AddMember registers a ticket
func (h *Handler) AddMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.tracker.AddMember(c.Param("groupID"), req.Name, req.Number, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// EditMember updates a ticket
func (h *Handler) EditMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groups, err := h.tracker.EditMember(c.Param("groupID"), c.Param("memberID"), req.Name, req.Number, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// RemoveMember deletes a ticket
func (h *Handler) RemoveMember(c *gin.Context) {
	groups, err := h.tracker.RemoveMember(c.Param("groupID"), c.Param("memberID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// RenameGroup changes a group's name
func (h *Handler) RenameGroup(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groups, err := h.tracker.RenameGroup(c.Param("groupID"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Share returns the share link of a group. Without ?base the link points at
// this server.
func (h *Handler) Share(c *gin.Context) {
	base := c.Query("base")
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host + "/"
	}

	link, err := h.tracker.ShareURL(c.Param("groupID"), base)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

// Import replaces the groups with the ones from a share fragment
func (h *Handler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	groups, err := h.tracker.Import(req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// respondError maps domain errors to status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, advent.ErrGroupNotFound), errors.Is(err, advent.ErrMemberNotFound):
		status = http.StatusNotFound
	case errors.Is(err, advent.ErrDuplicateNumber), errors.Is(err, tracker.ErrCheckInProgress):
		status = http.StatusConflict
	case errors.Is(err, advent.ErrMissingName), errors.Is(err, advent.ErrMissingNumber), errors.Is(err, tracker.ErrInvalidShare):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", logger.Fields{"path": c.FullPath()}, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
