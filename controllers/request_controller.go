package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobplatform/interview_backend/config"
	"github.com/jobplatform/interview_backend/database"
	"github.com/jobplatform/interview_backend/middleware"
	"github.com/jobplatform/interview_backend/models"
	"github.com/jobplatform/interview_backend/utils"
	"github.com/jobplatform/interview_backend/websocket"
)

type RejectRequestInput struct {
	Reason string `json:"reason" example:"Position has been filled"`
}

var cfg *config.Config

// Init provides the handlers with application configuration
func Init(c *config.Config) {
	cfg = c
}

// internalError logs err and responds with the generic 500 envelope. The
// underlying failure message is exposed outside production only.
func internalError(c *gin.Context, fallback string, err error) {
	log.Printf("%s: %v", fallback, err)

	message := fallback
	if err != nil && (cfg == nil || !cfg.IsProduction()) {
		message = err.Error()
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Internal Server Error",
		"message": message,
	})
}

// invalidID responds with the 400 envelope for a malformed identifier.
// The check runs before any store lookup.
func invalidID(c *gin.Context) bool {
	if utils.IsValidObjectID(c.Param("id")) {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Invalid ID",
		"message": "Invalid interview request ID format",
	})
	return true
}

// findRequest loads a request by id, writing the 404 or 500 envelope on
// failure. The second return value reports whether the record was found.
func findRequest(c *gin.Context, id string) (models.InterviewRequest, bool) {
	var request models.InterviewRequest
	if err := database.DB.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Not Found",
				"message": "Interview request not found",
			})
		} else {
			internalError(c, "Failed to fetch interview request", err)
		}
		return request, false
	}
	return request, true
}

// GetRequests godoc
// @Summary List interview requests
// @Description Returns all interview requests, newest first, optionally filtered by status
// @Tags interview-requests
// @Accept json
// @Produce json
// @Param status query string false "Status filter" Enums(pending, accepted)
// @Success 200 {object} map[string]interface{} "List of interview requests"
// @Failure 400 {object} map[string]interface{} "Invalid query parameter"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/interview-requests [get]
func GetRequests(c *gin.Context) {
	query := database.DB.Model(&models.InterviewRequest{})
	if status := c.Query("status"); status == models.StatusPending || status == models.StatusAccepted {
		query = query.Where("status = ?", status)
	}

	requests := []models.InterviewRequest{}
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		internalError(c, "Failed to fetch interview requests", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
		"count":   len(requests),
	})
}

// GetStats godoc
// @Summary Get interview request statistics
// @Description Returns per-status counts, requests created in the trailing 7 days and the top 5 job titles
// @Tags interview-requests
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Aggregate counts"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/interview-requests/stats [get]
func GetStats(c *gin.Context) {
	stats := models.RequestStats{PopularJobTitles: []models.JobTitleCount{}}

	counts := []struct {
		status string
		dest   *int64
	}{
		{"", &stats.Total},
		{models.StatusPending, &stats.Pending},
		{models.StatusAccepted, &stats.Accepted},
		{models.StatusRejected, &stats.Rejected},
	}
	for _, count := range counts {
		query := database.DB.Model(&models.InterviewRequest{})
		if count.status != "" {
			query = query.Where("status = ?", count.status)
		}
		if err := query.Count(count.dest).Error; err != nil {
			internalError(c, "Failed to fetch statistics", err)
			return
		}
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	if err := database.DB.Model(&models.InterviewRequest{}).
		Where("created_at >= ?", sevenDaysAgo).
		Count(&stats.RecentRequests).Error; err != nil {
		internalError(c, "Failed to fetch statistics", err)
		return
	}

	if err := database.DB.Model(&models.InterviewRequest{}).
		Select("job_title, count(*) as count").
		Group("job_title").
		Order("count DESC").
		Limit(5).
		Scan(&stats.PopularJobTitles).Error; err != nil {
		internalError(c, "Failed to fetch statistics", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// GetRequestByID godoc
// @Summary Get a single interview request
// @Description Returns one interview request by its identifier
// @Tags interview-requests
// @Accept json
// @Produce json
// @Param id path string true "Interview request ID (24 hex characters)"
// @Success 200 {object} map[string]interface{} "Interview request"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/interview-requests/{id} [get]
func GetRequestByID(c *gin.Context) {
	if invalidID(c) {
		return
	}

	request, ok := findRequest(c, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// CreateRequest godoc
// @Summary Submit an interview request
// @Description Creates a new interview request unless a pending one already exists for the same email and job title
// @Tags interview-requests
// @Accept json
// @Produce json
// @Param request body middleware.CreateRequestInput true "Interview request submission"
// @Success 201 {object} map[string]interface{} "Interview request submitted"
// @Failure 400 {object} map[string]interface{} "Validation error or duplicate request"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/interview-requests [post]
func CreateRequest(c *gin.Context) {
	input := c.MustGet(middleware.CreateInputKey).(middleware.CreateRequestInput)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	jobTitle := strings.TrimSpace(input.JobTitle)

	// Check for an existing pending request for the same email and job title.
	// Read-then-write: two concurrent creates can both pass this check.
	var existing models.InterviewRequest
	err := database.DB.Where("email = ? AND job_title = ? AND status = ?",
		email, jobTitle, models.StatusPending).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Duplicate Request",
			"message": "You have already submitted a request for this position. Please wait for a response.",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, "Failed to submit interview request", err)
		return
	}

	request := models.InterviewRequest{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		JobTitle: jobTitle,
		Status:   models.StatusPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		internalError(c, "Failed to submit interview request", err)
		return
	}

	websocket.BroadcastToRoom(websocket.RecruiterRoom, websocket.EventNewRequest, request)

	log.Printf("New interview request submitted: %s for %s", request.Name, request.JobTitle)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Interview request submitted successfully",
		"data":    request,
	})
}

// AcceptRequest godoc
// @Summary Accept an interview request
// @Description Transitions a request to accepted; a second accept fails
// @Tags interview-requests
// @Accept json
// @Produce json
// @Param id path string true "Interview request ID (24 hex characters)"
// @Success 200 {object} map[string]interface{} "Interview request accepted"
// @Failure 400 {object} map[string]interface{} "Invalid ID or already accepted"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/interview-requests/{id}/accept [put]
func AcceptRequest(c *gin.Context) {
	if invalidID(c) {
		return
	}

	request, ok := findRequest(c, c.Param("id"))
	if !ok {
		return
	}

	if request.Status == models.StatusAccepted {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Already Accepted",
			"message": "This interview request has already been accepted",
		})
		return
	}

	request.Status = models.StatusAccepted
	if err := database.DB.Save(&request).Error; err != nil {
		internalError(c, "Failed to accept interview request", err)
		return
	}

	websocket.BroadcastToRoom(websocket.RecruiterRoom, websocket.EventStatusUpdate, request)

	log.Printf("Interview request accepted: %s for %s", request.Name, request.JobTitle)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Interview request accepted successfully",
		"data":    request,
	})
}

// RejectRequest godoc
// @Summary Reject an interview request
// @Description Transitions a pending request to rejected, optionally recording a reason
// @Tags interview-requests
// @Accept json
// @Produce json
// @Param id path string true "Interview request ID (24 hex characters)"
// @Param response body RejectRequestInput false "Optional rejection reason"
// @Success 200 {object} map[string]interface{} "Interview request rejected"
// @Failure 400 {object} map[string]interface{} "Invalid ID or request not pending"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/interview-requests/{id}/reject [put]
func RejectRequest(c *gin.Context) {
	if invalidID(c) {
		return
	}

	// The body is optional; an empty body means no reason
	var input RejectRequestInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation Error",
			"message": "Request body must be a JSON object",
		})
		return
	}

	request, ok := findRequest(c, c.Param("id"))
	if !ok {
		return
	}

	if request.Status != models.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid Status",
			"message": "Only pending requests can be rejected",
		})
		return
	}

	request.Status = models.StatusRejected
	if input.Reason != "" {
		request.RejectionReason = input.Reason
	}
	if err := database.DB.Save(&request).Error; err != nil {
		internalError(c, "Failed to reject interview request", err)
		return
	}

	websocket.BroadcastToRoom(websocket.RecruiterRoom, websocket.EventStatusUpdate, request)

	log.Printf("Interview request rejected: %s for %s", request.Name, request.JobTitle)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Interview request rejected successfully",
		"data":    request,
	})
}

// DeleteRequest godoc
// @Summary Delete an interview request
// @Description Permanently removes an interview request
// @Tags interview-requests
// @Accept json
// @Produce json
// @Param id path string true "Interview request ID (24 hex characters)"
// @Success 200 {object} map[string]interface{} "Interview request deleted"
// @Failure 400 {object} map[string]interface{} "Invalid ID format"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/interview-requests/{id} [delete]
func DeleteRequest(c *gin.Context) {
	if invalidID(c) {
		return
	}

	request, ok := findRequest(c, c.Param("id"))
	if !ok {
		return
	}

	if err := database.DB.Delete(&request).Error; err != nil {
		internalError(c, "Failed to delete interview request", err)
		return
	}

	websocket.BroadcastToRoom(websocket.RecruiterRoom, websocket.EventRequestDeleted, gin.H{"id": request.ID})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Interview request deleted successfully",
	})
}
