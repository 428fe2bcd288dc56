package duitku

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
)

// Sign calcule la signature exigée par la passerelle:
// MD5(merchantCode + merchantOrderId + amount + apiKey), en hexadécimal
// minuscule. L'algorithme et l'ordre des champs sont imposés par le protocole
// du prestataire; la même signature couvre la requête sortante et le callback.
func Sign(merchantCode, merchantOrderID string, amount int, apiKey string) string {
	payload := merchantCode + merchantOrderID + strconv.Itoa(amount) + apiKey
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// VerifySignature recalcule la signature attendue et la compare en temps
// constant. Le endpoint de callback n'a aucune autre authentification: cette
// comparaison est la frontière de sécurité.
func VerifySignature(merchantCode, merchantOrderID string, amount int, apiKey, candidate string) bool {
	expected := Sign(merchantCode, merchantOrderID, amount, apiKey)
	got := strings.ToLower(strings.TrimSpace(candidate))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}
