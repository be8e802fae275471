package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
	"github.com/guttosm/marketpulse/internal/middleware"
	"github.com/guttosm/marketpulse/internal/service"
)

const dateLayout = "2006-01-02"

// Handler exposes the daily report engine over HTTP.
//
// Responsibilities:
//   - Validate query parameters
//   - Call the report service with the request context
//   - Map domain reports onto response DTOs
type Handler struct {
	svc service.ReportService
}

// NewHandler constructs a Handler backed by svc.
func NewHandler(svc service.ReportService) *Handler {
	return &Handler{svc: svc}
}

// GetDailyReports handles GET /api/v1/reports.
//
// Every call replays the stored trades in range with a fresh running index,
// so the first day of the range has no fallback value to borrow.
//
// GetDailyReports godoc
// @Summary      Daily reports
// @Description  Per-ticker open/close/high/low/traded value and the weighted index for each trading day in range
// @Tags         reports
// @Produce      json
// @Param        start  query     string  false  "First day (inclusive), YYYY-MM-DD" example(2025-02-14)
// @Param        end    query     string  false  "Last day (inclusive), YYYY-MM-DD"  example(2025-02-17)
// @Success      200    {array}   dto.DailyReportResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse        "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/reports [get]
func (h *Handler) GetDailyReports(c *gin.Context) {
	startDate, err := optionalDate(c, "start")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD", err)
		return
	}
	endDate, err := optionalDate(c, "end")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD", err)
		return
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		middleware.AbortWithError(c, http.StatusBadRequest, "end must not be before start", nil)
		return
	}

	reports, err := h.svc.DailyReports(c.Request.Context(), startDate, endDate)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to compute reports", err)
		return
	}

	resp := make([]dto.DailyReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, dto.NewDailyReportResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// GetLastIndex handles GET /api/v1/index/last.
//
// GetLastIndex godoc
// @Summary      Last known index
// @Description  Index value saved by the last report run with --save-index
// @Tags         index
// @Produce      json
// @Success      200  {object}  dto.LastIndexResponse  "Success"
// @Failure      404  {object}  dto.ErrorResponse      "Not Found"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/index/last [get]
func (h *Handler) GetLastIndex(c *gin.Context) {
	v, ok, err := h.svc.LastIndex(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to load last index", err)
		return
	}
	if !ok {
		middleware.AbortWithError(c, http.StatusNotFound, "no index saved yet", nil)
		return
	}
	c.JSON(http.StatusOK, dto.LastIndexResponse{Value: v})
}

// optionalDate parses query param key as a UTC day; absent means nil.
func optionalDate(c *gin.Context, key string) (*time.Time, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
