package payments

import (
	"net/http"

	"github.com/Zozodoank/idcashier-sub002/db"
	"github.com/Zozodoank/idcashier-sub002/models"
	"github.com/Zozodoank/idcashier-sub002/utils"

	"github.com/gin-gonic/gin"
)

// Plan est une durée d'abonnement achetable. Le montant est déterminé côté
// serveur à partir de la durée demandée, jamais fourni par le client.
type Plan struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Months int    `json:"months"`
	Amount int    `json:"amount"`
}

var plans = []Plan{
	{Code: "monthly", Label: "Langganan 1 Bulan", Months: 1, Amount: 75000},
	{Code: "quarterly", Label: "Langganan 3 Bulan", Months: 3, Amount: 210000},
	{Code: "semiannual", Label: "Langganan 6 Bulan", Months: 6, Amount: 399000},
	{Code: "annual", Label: "Langganan 12 Bulan", Months: 12, Amount: 750000},
}

func planByMonths(months int) (Plan, bool) {
	for _, p := range plans {
		if p.Months == months {
			return p, true
		}
	}
	return Plan{}, false
}

// GetPlans returns the purchasable subscription durations and their prices
// @Summary List subscription plans
// @Description Return the purchasable subscription durations and their prices
// @Tags subscriptions
// @Produce json
// @Success 200 {object} utils.Response
// @Router /subscriptions/plans [get]
func (h *Handler) GetPlans(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, "Plans retrieved successfully", plans)
}

// ListPaymentOrders returns payment orders for reconciliation and audit
// @Summary List payment orders (admin)
// @Description Return payment orders, optionally filtered by status, for reconciliation and audit
// @Tags payments
// @Produce json
// @Param status query string false "Filter by status (PENDING, COMPLETED, EXPIRED, FAILED)"
// @Security BearerAuth
// @Success 200 {array} models.PaymentOrder
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error fetching payment orders"
// @Router /payments [get]
func (h *Handler) ListPaymentOrders(c *gin.Context) {
	query := db.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PaymentOrder
	if err := query.Find(&orders).Error; err != nil {
		utils.LogError(err, "Error fetching payment orders dans ListPaymentOrders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching payment orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
