package payments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Zozodoank/idcashier-sub002/db"
	"github.com/Zozodoank/idcashier-sub002/duitku"
	"github.com/Zozodoank/idcashier-sub002/models"
	"github.com/Zozodoank/idcashier-sub002/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CompanyName   string `json:"companyName"`
	PhoneNumber   string `json:"phoneNumber"`
	Months        int    `json:"months"`
	PaymentMethod string `json:"paymentMethod"`
}

type RenewRequest struct {
	Months        int    `json:"months"`
	PaymentMethod string `json:"paymentMethod"`
}

// newMerchantOrderID génère un identifiant de corrélation unique. UUID plutôt
// que timestamp: deux requêtes dans la même milliseconde ne peuvent pas
// entrer en collision.
func newMerchantOrderID() string {
	return "INV-" + uuid.NewString()
}

// Register starts a paid signup: the tenant account is only created once the gateway confirms the payment
// @Summary Register a new tenant with payment
// @Description Start a paid signup. The pending signup is held server-side and materialized by the payment callback; the response carries the gateway redirect URL.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Registration information"
// @Success 200 {object} utils.Response "data: paymentUrl, merchantOrderId"
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 409 {object} utils.Response "error: Email already used"
// @Failure 502 {object} utils.Response "error: Payment gateway unavailable"
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "Invalid input: "+err.Error(), duitku.CodeValidation)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "The email cannot be empty", duitku.CodeValidation)
		return
	}
	if !utils.ValidateEmail(req.Email) {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "Invalid email format", duitku.CodeValidation)
		return
	}

	if req.Password == "" {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "The password cannot be empty", duitku.CodeValidation)
		return
	}
	if len(req.Password) < 6 {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "The password must contain at least 6 characters", duitku.CodeValidation)
		return
	}

	plan, ok := planByMonths(req.Months)
	if !ok {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "Unknown subscription duration", duitku.CodeValidation)
		return
	}
	if req.PaymentMethod == "" {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "The payment method cannot be empty", duitku.CodeValidation)
		return
	}

	// L'email ne doit pas déjà appartenir à un tenant
	var existingUser models.User
	if err := db.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.SendErrorWithCode(c, http.StatusConflict, "This email is already used", duitku.CodeConflict)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(err, "Error when checking the email existence dans Register")
		utils.SendError(c, http.StatusInternalServerError, "Error when checking the email existence")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusUnprocessableEntity, "Error while hashing the password")
		return
	}

	merchantOrderID := newMerchantOrderID()

	// L'ordre est persisté en PENDING avant tout appel réseau: un crash après
	// l'appel laisse une ligne traçable et réconciliable.
	order := models.PaymentOrder{
		MerchantOrderID: merchantOrderID,
		UserID:          nil,
		Amount:          plan.Amount,
		Months:          plan.Months,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.PaymentOrderPending,
	}
	if err := db.DB.Create(&order).Error; err != nil {
		utils.LogError(err, "Error creating payment order dans Register")
		utils.SendError(c, http.StatusInternalServerError, "Error creating payment order")
		return
	}

	signup := models.PendingSignup{
		MerchantOrderID: merchantOrderID,
		Email:           req.Email,
		Password:        string(passwordHash),
		CompanyName:     req.CompanyName,
		PhoneNumber:     req.PhoneNumber,
		Months:          plan.Months,
	}
	if err := db.DB.Create(&signup).Error; err != nil {
		utils.LogError(err, "Error creating pending signup dans Register")
		utils.SendError(c, http.StatusInternalServerError, "Error creating pending signup")
		return
	}

	result, err := h.gateway.CreateTransaction(c.Request.Context(), duitku.CreateTransactionRequest{
		MerchantOrderID: merchantOrderID,
		Amount:          plan.Amount,
		PaymentMethod:   req.PaymentMethod,
		ProductDetails:  plan.Label,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		sendGatewayError(c, err, "Register")
		return
	}

	utils.LogSuccess("Registration payment created dans Register")
	utils.SendSuccess(c, http.StatusOK, "Payment created, complete it to activate your account", gin.H{
		"paymentUrl":      result.PaymentURL,
		"merchantOrderId": merchantOrderID,
	})
}

// Renew starts a subscription renewal payment for the authenticated tenant
// @Summary Renew the current tenant's subscription
// @Description Start a renewal payment. The subscription window is extended by the payment callback once the gateway confirms.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param renewal body RenewRequest true "Renewal information"
// @Security BearerAuth
// @Success 200 {object} utils.Response "data: paymentUrl, merchantOrderId"
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} utils.Response "error: User not found"
// @Failure 502 {object} utils.Response "error: Payment gateway unavailable"
// @Router /subscriptions/renew [post]
func (h *Handler) Renew(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated dans Renew")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "Invalid input: "+err.Error(), duitku.CodeValidation)
		return
	}

	plan, ok := planByMonths(req.Months)
	if !ok {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "Unknown subscription duration", duitku.CodeValidation)
		return
	}
	if req.PaymentMethod == "" {
		utils.SendErrorWithCode(c, http.StatusBadRequest, "The payment method cannot be empty", duitku.CodeValidation)
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found dans Renew")
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	merchantOrderID := newMerchantOrderID()

	order := models.PaymentOrder{
		MerchantOrderID: merchantOrderID,
		UserID:          &user.ID,
		Amount:          plan.Amount,
		Months:          plan.Months,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.PaymentOrderPending,
	}
	if err := db.DB.Create(&order).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating payment order dans Renew")
		utils.SendError(c, http.StatusInternalServerError, "Error creating payment order")
		return
	}

	result, err := h.gateway.CreateTransaction(c.Request.Context(), duitku.CreateTransactionRequest{
		MerchantOrderID: merchantOrderID,
		Amount:          plan.Amount,
		PaymentMethod:   req.PaymentMethod,
		ProductDetails:  plan.Label,
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
	})
	if err != nil {
		sendGatewayError(c, err, "Renew")
		return
	}

	utils.LogSuccessWithUser(userID, "Renewal payment created dans Renew")
	utils.SendSuccess(c, http.StatusOK, "Payment created, complete it to extend your subscription", gin.H{
		"paymentUrl":      result.PaymentURL,
		"merchantOrderId": merchantOrderID,
	})
}

// sendGatewayError traduit la taxonomie d'erreurs passerelle en réponse HTTP.
// Le détail prestataire part dans les logs, pas dans la réponse.
func sendGatewayError(c *gin.Context, err error, where string) {
	var validationErr *duitku.ValidationError
	var upstreamErr *duitku.UpstreamError
	var businessErr *duitku.BusinessError

	switch {
	case errors.As(err, &validationErr):
		utils.SendErrorWithCode(c, http.StatusBadRequest, validationErr.Message, duitku.CodeValidation)
	case errors.As(err, &upstreamErr):
		utils.LogError(err, "Payment gateway unavailable dans "+where)
		utils.SendErrorWithCode(c, http.StatusBadGateway, "Payment gateway unavailable, please retry later", duitku.CodeUpstream)
	case errors.As(err, &businessErr):
		utils.LogError(err, "Payment gateway rejected the request dans "+where)
		utils.SendErrorWithCode(c, http.StatusInternalServerError, "Payment gateway rejected the request", duitku.CodeBusiness)
	default:
		utils.LogError(err, "Unexpected payment gateway error dans "+where)
		utils.SendError(c, http.StatusInternalServerError, "Unexpected payment gateway error")
	}
}
