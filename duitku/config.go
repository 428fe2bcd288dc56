package duitku

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultExpiryMinutes = 60
	defaultMinAmount     = 10000
	defaultTimeout       = 15 * time.Second
)

// Config porte tout le paramétrage de la passerelle. Rien n'est lu depuis
// l'environnement ailleurs que dans ConfigFromEnv: le client et les handlers
// reçoivent la config explicitement.
type Config struct {
	BaseURL       string
	MerchantCode  string
	APIKey        string
	CallbackURL   string
	ReturnURL     string
	ExpiryMinutes int
	MinAmount     int
	Timeout       time.Duration
}

// ConfigFromEnv charge la configuration depuis les variables DUITKU_*.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		BaseURL:       os.Getenv("DUITKU_BASE_URL"),
		MerchantCode:  os.Getenv("DUITKU_MERCHANT_CODE"),
		APIKey:        os.Getenv("DUITKU_API_KEY"),
		CallbackURL:   os.Getenv("DUITKU_CALLBACK_URL"),
		ReturnURL:     os.Getenv("DUITKU_RETURN_URL"),
		ExpiryMinutes: defaultExpiryMinutes,
		MinAmount:     defaultMinAmount,
		Timeout:       defaultTimeout,
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("DUITKU_BASE_URL is not set")
	}
	if cfg.MerchantCode == "" {
		return Config{}, fmt.Errorf("DUITKU_MERCHANT_CODE is not set")
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("DUITKU_API_KEY is not set")
	}
	if cfg.CallbackURL == "" {
		return Config{}, fmt.Errorf("DUITKU_CALLBACK_URL is not set")
	}

	if v := os.Getenv("DUITKU_EXPIRY_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("DUITKU_EXPIRY_MINUTES is invalid: %q", v)
		}
		cfg.ExpiryMinutes = n
	}
	if v := os.Getenv("DUITKU_MIN_AMOUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("DUITKU_MIN_AMOUNT is invalid: %q", v)
		}
		cfg.MinAmount = n
	}

	return cfg, nil
}
