package duitku

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const inquiryPath = "/api/merchant/v2/inquiry"

// statusOK est le code "succès" du prestataire dans le corps 2xx.
const statusOK = "00"

// CreateTransactionRequest décrit un ordre de paiement à ouvrir côté
// passerelle. Le montant est en unité minimale (rupiah).
type CreateTransactionRequest struct {
	MerchantOrderID string
	Amount          int
	PaymentMethod   string
	ProductDetails  string
	Email           string
	PhoneNumber     string
}

// CreateTransactionResult est la réponse normalisée de la passerelle.
type CreateTransactionResult struct {
	PaymentURL string
	Reference  string
}

type inquiryPayload struct {
	MerchantCode    string `json:"merchantCode"`
	PaymentAmount   int    `json:"paymentAmount"`
	PaymentMethod   string `json:"paymentMethod"`
	MerchantOrderID string `json:"merchantOrderId"`
	ProductDetails  string `json:"productDetails"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	CallbackURL     string `json:"callbackUrl"`
	ReturnURL       string `json:"returnUrl"`
	Signature       string `json:"signature"`
	ExpiryPeriod    int    `json:"expiryPeriod"`
}

type inquiryResponse struct {
	Reference     string `json:"reference"`
	PaymentURL    string `json:"paymentUrl"`
	StatusCode    string `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
}

// Client parle à la passerelle de paiement. Une seule instance est partagée
// par tous les handlers.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) Config() Config {
	return c.cfg
}

// CreateTransaction ouvre une transaction chez le prestataire et retourne
// l'URL de redirection. La validation du montant se fait en local, avant tout
// appel réseau. L'ordre de paiement doit déjà être persisté en PENDING par
// l'appelant: un crash après cet appel laisse une ligne réconciliable.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*CreateTransactionResult, error) {
	if req.MerchantOrderID == "" {
		return nil, &ValidationError{Message: "merchant order id is required"}
	}
	if req.Amount < c.cfg.MinAmount {
		return nil, &ValidationError{Message: fmt.Sprintf("amount must be at least %d", c.cfg.MinAmount)}
	}
	if req.PaymentMethod == "" {
		return nil, &ValidationError{Message: "payment method is required"}
	}

	payload := inquiryPayload{
		MerchantCode:    c.cfg.MerchantCode,
		PaymentAmount:   req.Amount,
		PaymentMethod:   req.PaymentMethod,
		MerchantOrderID: req.MerchantOrderID,
		ProductDetails:  req.ProductDetails,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		CallbackURL:     c.cfg.CallbackURL,
		ReturnURL:       c.cfg.ReturnURL,
		Signature:       Sign(c.cfg.MerchantCode, req.MerchantOrderID, req.Amount, c.cfg.APIKey),
		ExpiryPeriod:    c.cfg.ExpiryMinutes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ValidationError{Message: "cannot encode payment request: " + err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+inquiryPath, bytes.NewReader(body))
	if err != nil {
		return nil, &ValidationError{Message: "cannot build payment request: " + err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Message: "payment gateway unreachable", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, &UpstreamError{Message: "cannot read payment gateway response", Err: err}
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, &UpstreamError{Message: fmt.Sprintf("payment gateway returned %d", resp.StatusCode)}
	case resp.StatusCode >= 400:
		return nil, &ValidationError{Message: fmt.Sprintf("payment gateway rejected the request (%d)", resp.StatusCode)}
	}

	var out inquiryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &UpstreamError{Message: "cannot decode payment gateway response", Err: err}
	}

	if out.StatusCode != statusOK {
		return nil, &BusinessError{ProviderCode: out.StatusCode, Message: out.StatusMessage}
	}
	if out.PaymentURL == "" {
		return nil, &UpstreamError{Message: "payment gateway response has no payment url"}
	}

	return &CreateTransactionResult{
		PaymentURL: out.PaymentURL,
		Reference:  out.Reference,
	}, nil
}
