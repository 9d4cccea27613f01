package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/service"
	"github.com/rustyeddy/tradejournal/shots"
)

// TradesHandler serves the journal over HTTP.
type TradesHandler struct {
	Journal *service.Journal
}

func (h *TradesHandler) Register(r *gin.Engine) {
	r.GET("/health", h.health)

	g := r.Group("/api/v1")
	g.GET("/trades", h.list)
	g.POST("/trades", h.create)
	g.GET("/trades/:id", h.get)
	g.DELETE("/trades/:id", h.remove)
	g.DELETE("/trades", h.clear)
	g.GET("/dashboard", h.dashboard)
	g.GET("/export", h.export)
}

func (h *TradesHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// list handles GET /api/v1/trades
func (h *TradesHandler) list(c *gin.Context) {
	var q analytics.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "INVALID_QUERY", err)
		return
	}
	trades, err := h.Journal.Trades(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	view := analytics.View(trades, q)
	c.JSON(http.StatusOK, TradesResponse{Trades: view, Count: len(view)})
}

// create handles POST /api/v1/trades
func (h *TradesHandler) create(c *gin.Context) {
	var req CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	images := make([][]byte, 0, len(req.Shots))
	for i, s := range req.Shots {
		b, err := decodeShot(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: ErrorDetail{
					Code:    "INVALID_SHOT",
					Message: err.Error(),
					Details: map[string]any{"index": i},
				},
			})
			return
		}
		images = append(images, b)
	}

	rec, err := h.Journal.AddTrade(c.Request.Context(), req.TradeInput, images...)
	if err != nil {
		if code, ok := validationCode(err); ok {
			badRequest(c, code, err)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// get handles GET /api/v1/trades/:id
func (h *TradesHandler) get(c *gin.Context) {
	rec, err := h.Journal.Trade(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		notFound(c, err)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// remove handles DELETE /api/v1/trades/:id
func (h *TradesHandler) remove(c *gin.Context) {
	err := h.Journal.DeleteTrade(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		notFound(c, err)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// clear handles DELETE /api/v1/trades?confirm=true
func (h *TradesHandler) clear(c *gin.Context) {
	if ok, _ := strconv.ParseBool(c.Query("confirm")); !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "CONFIRMATION_REQUIRED",
				Message: "clearing the journal requires confirm=true",
			},
		})
		return
	}
	if err := h.Journal.Clear(c.Request.Context()); err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// dashboard handles GET /api/v1/dashboard
func (h *TradesHandler) dashboard(c *gin.Context) {
	var q analytics.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "INVALID_QUERY", err)
		return
	}
	year := intQuery(c, "year", 0)
	month := time.Month(intQuery(c, "month", 0))

	d, err := h.Journal.Dashboard(c.Request.Context(), q, year, month)
	if errors.Is(err, service.ErrInvalidPeriod) {
		badRequest(c, "INVALID_QUERY", err)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// export handles GET /api/v1/export
func (h *TradesHandler) export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", service.FormatJSON))
	contentType := "application/json"
	switch format {
	case service.FormatJSON:
	case service.FormatCSV:
		contentType = "text/csv"
	case service.FormatOrg:
		contentType = "text/plain; charset=utf-8"
	default:
		badRequest(c, "INVALID_FORMAT", service.ErrUnknownFormat)
		return
	}

	var buf strings.Builder
	if err := h.Journal.Export(c.Request.Context(), &buf, format); err != nil {
		internalError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFileName(format)+`"`)
	c.Data(http.StatusOK, contentType, []byte(buf.String()))
}

func decodeShot(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(s)
}

func validationCode(err error) (string, bool) {
	switch {
	case errors.Is(err, journal.ErrEmptyTicker),
		errors.Is(err, journal.ErrBadDate),
		errors.Is(err, journal.ErrBadTime),
		errors.Is(err, journal.ErrTimeOutsideSession),
		errors.Is(err, journal.ErrBadCP):
		return "INVALID_TRADE", true
	case errors.Is(err, journal.ErrTooManyShots),
		errors.Is(err, shots.ErrNotImage),
		errors.Is(err, shots.ErrDecode):
		return "INVALID_SHOT", true
	}
	return "", false
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: err.Error()},
	})
}

func notFound(c *gin.Context, err error) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: ErrorDetail{Code: "NOT_FOUND", Message: err.Error()},
	})
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
	})
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}
