package payments

import (
	"errors"
	"net/http"
	"time"

	"github.com/Zozodoank/idcashier-sub002/db"
	"github.com/Zozodoank/idcashier-sub002/duitku"
	"github.com/Zozodoank/idcashier-sub002/models"
	"github.com/Zozodoank/idcashier-sub002/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentCallback applies an asynchronous payment notification from the gateway
// @Summary Payment gateway callback
// @Description Verify and apply an asynchronous payment notification. Idempotent: re-deliveries of an already applied result are acknowledged without any state change.
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response "error: Malformed payload"
// @Failure 401 {object} utils.Response "error: Invalid signature"
// @Failure 404 {object} utils.Response "error: Unknown order"
// @Router /payments/callback [post]
func (h *Handler) PaymentCallback(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(1<<16))

	n, err := duitku.ParseNotification(c.Request)
	if err != nil {
		utils.SendErrorWithCode(c, http.StatusBadRequest, err.Error(), duitku.CodeValidation)
		return
	}

	cfg := h.gateway.Config()

	// La signature est vérifiée avant toute lecture en base: tant qu'elle
	// n'est pas validée, le contenu du payload est traité comme hostile.
	if n.MerchantCode != cfg.MerchantCode ||
		!duitku.VerifySignature(cfg.MerchantCode, n.MerchantOrderID, n.Amount, cfg.APIKey, n.Signature) {
		utils.LogSecurity("Payment callback rejected: signature mismatch", map[string]interface{}{
			"merchant_order_id": n.MerchantOrderID,
			"remote_addr":       c.ClientIP(),
		})
		utils.SendErrorWithCode(c, http.StatusUnauthorized, "Invalid signature", duitku.CodeAuthentication)
		return
	}

	var order models.PaymentOrder
	if err := db.DB.First(&order, "merchant_order_id = ?", n.MerchantOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendErrorWithCode(c, http.StatusNotFound, "Unknown merchant order id", duitku.CodeConflict)
			return
		}
		utils.LogError(err, "Error loading payment order dans PaymentCallback")
		utils.SendError(c, http.StatusInternalServerError, "Error loading payment order")
		return
	}

	if n.Amount != order.Amount {
		// Signature valide mais montant différent de l'ordre: incohérence
		// prestataire, on ne touche à rien.
		utils.LogSecurity("Payment callback rejected: amount mismatch", map[string]interface{}{
			"merchant_order_id": n.MerchantOrderID,
			"expected":          order.Amount,
			"received":          n.Amount,
		})
		utils.SendErrorWithCode(c, http.StatusBadRequest, "Amount does not match the order", duitku.CodeValidation)
		return
	}

	// Relivraison d'un résultat déjà appliqué: acquittement sans mutation.
	if order.Status.IsTerminal() {
		utils.SendSuccess(c, http.StatusOK, "Notification already processed", gin.H{
			"merchantOrderId": order.MerchantOrderID,
			"status":          order.Status,
		})
		return
	}

	target, ok := statusForResultCode(n.ResultCode)
	if !ok {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "Unknown result code", duitku.CodeValidation)
		return
	}

	// Transition gardée (compare-and-swap): seule la livraison qui voit
	// encore PENDING applique le résultat. Les livraisons concurrentes du
	// même callback perdent la course et acquittent sans mutation.
	updates := map[string]interface{}{
		"status":    target,
		"reference": n.Reference,
	}
	if target == models.PaymentOrderCompleted {
		updates["paid_at"] = time.Now()
	}
	res := db.DB.Model(&models.PaymentOrder{}).
		Where("merchant_order_id = ? AND status = ?", order.MerchantOrderID, models.PaymentOrderPending).
		Updates(updates)
	if res.Error != nil {
		utils.LogError(res.Error, "Error updating payment order status dans PaymentCallback")
		utils.SendError(c, http.StatusInternalServerError, "Error updating payment order")
		return
	}
	if res.RowsAffected == 0 {
		utils.SendSuccess(c, http.StatusOK, "Notification already processed", gin.H{
			"merchantOrderId": order.MerchantOrderID,
		})
		return
	}

	if target != models.PaymentOrderCompleted {
		utils.SendSuccess(c, http.StatusOK, "Payment result recorded", gin.H{
			"merchantOrderId": order.MerchantOrderID,
			"status":          target,
		})
		return
	}

	// La transition gardée garantit un seul passage ici par ordre; chaque
	// sous-opération reste malgré tout re-vérifiée pour survivre à un crash
	// entre la transition et l'application.
	if err := h.applyCompletedPayment(&order); err != nil {
		utils.LogError(err, "Payment applied but subscription update failed dans PaymentCallback")
		utils.SendError(c, http.StatusInternalServerError, "Payment recorded but subscription update failed")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Payment applied", gin.H{
		"merchantOrderId": order.MerchantOrderID,
		"status":          models.PaymentOrderCompleted,
	})
}

func statusForResultCode(code string) (models.PaymentOrderStatus, bool) {
	switch code {
	case duitku.ResultSuccess:
		return models.PaymentOrderCompleted, true
	case duitku.ResultFailed:
		return models.PaymentOrderFailed, true
	case duitku.ResultExpired:
		return models.PaymentOrderExpired, true
	default:
		return "", false
	}
}

// applyCompletedPayment matérialise l'effet métier d'un paiement confirmé:
// création du tenant pour une inscription, extension de fenêtre pour un
// renouvellement.
func (h *Handler) applyCompletedPayment(order *models.PaymentOrder) error {
	if order.UserID == nil {
		return h.completeRegistration(order)
	}
	return h.extendSubscription(*order.UserID, order.Months)
}

func (h *Handler) completeRegistration(order *models.PaymentOrder) error {
	var signup models.PendingSignup
	if err := db.DB.First(&signup, "merchant_order_id = ?", order.MerchantOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Déjà consommé par une application précédente interrompue après
			// la suppression: rien à refaire.
			utils.LogInfo("Pending signup already consumed for order " + order.MerchantOrderID)
			return nil
		}
		return err
	}

	// Reprise après crash possible: le user peut déjà exister.
	var user models.User
	err := db.DB.Where("email = ?", signup.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:       signup.Email,
			Password:    signup.Password,
			CompanyName: signup.CompanyName,
			PhoneNumber: signup.PhoneNumber,
			Role:        models.OwnerRole,
			Enable:      true,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	// Rattacher l'ordre au tenant créé, pour l'audit et les relivraisons.
	if err := db.DB.Model(&models.PaymentOrder{}).
		Where("merchant_order_id = ?", order.MerchantOrderID).
		Update("user_id", user.ID).Error; err != nil {
		return err
	}

	var existing models.Subscription
	err = db.DB.Where("user_id = ?", user.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		start, end := models.ComputeWindow(nil, time.Now(), signup.Months)
		sub := models.Subscription{
			UserID:    user.ID,
			StartDate: start,
			EndDate:   end,
		}
		if err := db.DB.Create(&sub).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	// Un abonnement déjà présent signifie une reprise: la fenêtre a déjà été
	// créditée, on ne l'étend pas une seconde fois.

	return db.DB.Delete(&signup).Error
}

func (h *Handler) extendSubscription(userID string, months int) error {
	var sub models.Subscription
	err := db.DB.Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		start, end := models.ComputeWindow(nil, time.Now(), months)
		return db.DB.Create(&models.Subscription{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		}).Error
	}
	if err != nil {
		return err
	}

	start, end := models.ComputeWindow(&sub.EndDate, time.Now(), months)
	return db.DB.Model(&sub).Updates(map[string]interface{}{
		"start_date": start,
		"end_date":   end,
	}).Error
}
