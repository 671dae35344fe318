package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateParamLayout = "2006-01-02"

func (h *APIHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.DailyReport()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CloseDay exports and resets the business day, replying with the
// spreadsheet as an attachment.
func (h *APIHandler) CloseDay(c *gin.Context) {
	artifact, err := h.reportService.CloseDay()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// ListClosings accepts optional from/to dates (YYYY-MM-DD, both inclusive).
func (h *APIHandler) ListClosings(c *gin.Context) {
	from, err := h.parseDate(c.Query("from"), false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, use YYYY-MM-DD"})
		return
	}
	to, err := h.parseDate(c.Query("to"), true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, use YYYY-MM-DD"})
		return
	}

	closings, err := h.reportService.Closings(from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"closings": closings, "count": len(closings)})
}

func (h *APIHandler) GetClosing(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid closing ID"})
		return
	}

	closing, err := h.reportService.Closing(uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, closing)
}

func (h *APIHandler) parseDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateParamLayout, value, h.location)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}
