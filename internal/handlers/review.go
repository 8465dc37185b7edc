package handlers

import (
	"net/http"

	"github.com/Georges999/Car-Parts-Marketplace/internal/logger"
	"github.com/Georges999/Car-Parts-Marketplace/internal/middleware"
	"github.com/Georges999/Car-Parts-Marketplace/internal/services"
	"github.com/Georges999/Car-Parts-Marketplace/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	log logger.ILogger
}

func NewReviewHandler(log logger.ILogger) *ReviewHandler {
	return &ReviewHandler{log: log}
}

type reviewRequest struct {
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Title     string `json:"title" binding:"required,max=100"`
	Comment   string `json:"comment" binding:"required"`
	VehicleID *uint  `json:"vehicleId"`
}

// ListForPart - GET /api/parts/:partId/reviews
func (h *ReviewHandler) ListForPart(c *gin.Context) {
	partID := utils.StringToInt(c.Param("id"))
	if partID <= 0 {
		Fail(c, http.StatusNotFound, "Part not found")
		return
	}

	reviews, err := services.ListReviews(uint(partID))
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{
		"count": len(reviews),
		"data":  reviews,
	})
}

// Add - POST /api/parts/:partId/reviews
// 每个用户对每个配件只能评一次
func (h *ReviewHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)

	partID := utils.StringToInt(c.Param("id"))
	if partID <= 0 {
		Fail(c, http.StatusNotFound, "Part not found")
		return
	}

	var req reviewRequest
	if !BindJSON(c, &req) {
		return
	}

	review, err := services.AddReview(user.ID, uint(partID), services.ReviewInput{
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		VehicleID: req.VehicleID,
	})
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusCreated, gin.H{"data": review})
}

// Update - PUT /api/reviews/:id 仅作者本人
func (h *ReviewHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req reviewRequest
	if !BindJSON(c, &req) {
		return
	}

	review, err := services.UpdateReview(user.ID, uint(utils.StringToInt(c.Param("id"))), services.ReviewInput{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{"data": review})
}

// Delete - DELETE /api/reviews/:id 仅作者本人
func (h *ReviewHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := services.DeleteReview(user.ID, uint(utils.StringToInt(c.Param("id")))); err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{"data": gin.H{}})
}

// ToggleHelpful - PUT /api/reviews/:id/helpful
// 幂等开关：同一用户再点一次即取消
func (h *ReviewHandler) ToggleHelpful(c *gin.Context) {
	user := middleware.CurrentUser(c)

	count, marked, err := services.ToggleHelpful(user.ID, uint(utils.StringToInt(c.Param("id"))))
	if err != nil {
		MapError(c, h.log, err)
		return
	}

	Respond(c, http.StatusOK, gin.H{
		"data": gin.H{
			"helpfulCount":  count,
			"markedHelpful": marked,
		},
	})
}
