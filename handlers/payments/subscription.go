package payments

import (
	"errors"
	"net/http"
	"time"

	"github.com/Zozodoank/idcashier-sub002/db"
	"github.com/Zozodoank/idcashier-sub002/models"
	"github.com/Zozodoank/idcashier-sub002/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMySubscription returns the authenticated tenant's subscription window
// @Summary Current subscription
// @Description Return the authenticated tenant's subscription window and whether it is active today
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: No subscription"
// @Router /subscriptions/me [get]
func (h *Handler) GetMySubscription(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated dans GetMySubscription")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var sub models.Subscription
	if err := db.DB.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "No subscription for this account")
			return
		}
		utils.LogErrorWithUser(userID, err, "Error fetching subscription dans GetMySubscription")
		utils.SendError(c, http.StatusInternalServerError, "Error fetching subscription")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Subscription retrieved successfully", gin.H{
		"subscription": sub,
		"active":       sub.IsActiveAt(time.Now()),
	})
}
