package duitku

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Codes résultat envoyés par la passerelle dans le callback.
const (
	ResultSuccess = "00"
	ResultFailed  = "01"
	ResultExpired = "02"
)

// Notification est le contenu validé d'un callback de paiement.
type Notification struct {
	MerchantCode    string
	MerchantOrderID string
	Amount          int
	ResultCode      string
	Reference       string
	Signature       string
}

// La passerelle ne garantit pas l'encodage de livraison: suivant le canal, le
// même callback arrive en JSON, en formulaire ou en paramètres d'URL, avec
// une casse de champs variable. Chaque parseur retourne ok=false quand le
// format ne le concerne pas; ils sont essayés dans un ordre fixe.
type notificationParser func(r *http.Request, body []byte) (map[string]string, bool)

var notificationParsers = []notificationParser{
	parseJSONBody,
	parseFormBody,
	parseQueryParams,
}

func parseJSONBody(r *http.Request, body []byte) (map[string]string, bool) {
	if len(body) == 0 {
		return nil, false
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			fields[strings.ToLower(k)] = val
		case float64:
			fields[strings.ToLower(k)] = strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return fields, len(fields) > 0
}

func parseFormBody(r *http.Request, body []byte) (map[string]string, bool) {
	ct := r.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/x-www-form-urlencoded") {
		return nil, false
	}
	if err := r.ParseForm(); err != nil {
		return nil, false
	}
	fields := make(map[string]string, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			fields[strings.ToLower(k)] = vs[0]
		}
	}
	return fields, len(fields) > 0
}

func parseQueryParams(r *http.Request, body []byte) (map[string]string, bool) {
	q := r.URL.Query()
	fields := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			fields[strings.ToLower(k)] = vs[0]
		}
	}
	return fields, len(fields) > 0
}

// lookup essaie plusieurs noms de champ (déjà en minuscules).
func lookup(fields map[string]string, names ...string) string {
	for _, n := range names {
		if v, ok := fields[n]; ok && v != "" {
			return v
		}
	}
	return ""
}

// ParseNotification décode un callback entrant en essayant chaque stratégie
// de parsing dans l'ordre, puis valide les champs requis. Tout champ
// manquant est une erreur: on ne touche jamais l'état sur un payload partiel.
func ParseNotification(r *http.Request) (*Notification, error) {
	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
		if err != nil {
			return nil, &ValidationError{Message: "cannot read callback body"}
		}
		body = b
		// ParseForm doit relire le corps
		r.Body = io.NopCloser(strings.NewReader(string(b)))
	}

	var fields map[string]string
	for _, parse := range notificationParsers {
		if f, ok := parse(r, body); ok {
			fields = f
			break
		}
	}
	if fields == nil {
		return nil, &ValidationError{Message: "callback payload is empty or unreadable"}
	}

	n := &Notification{
		MerchantCode:    lookup(fields, "merchantcode", "merchant_code"),
		MerchantOrderID: lookup(fields, "merchantorderid", "merchant_order_id"),
		ResultCode:      lookup(fields, "resultcode", "result_code"),
		Reference:       lookup(fields, "reference"),
		Signature:       lookup(fields, "signature"),
	}

	rawAmount := lookup(fields, "amount", "paymentamount", "payment_amount")
	if rawAmount == "" {
		return nil, &ValidationError{Message: "callback is missing amount"}
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, &ValidationError{Message: "callback amount is invalid: " + rawAmount}
	}
	n.Amount = amount

	if n.MerchantCode == "" {
		return nil, &ValidationError{Message: "callback is missing merchantCode"}
	}
	if n.MerchantOrderID == "" {
		return nil, &ValidationError{Message: "callback is missing merchantOrderId"}
	}
	if n.ResultCode == "" {
		return nil, &ValidationError{Message: "callback is missing resultCode"}
	}
	if n.Signature == "" {
		return nil, &ValidationError{Message: "callback is missing signature"}
	}

	return n, nil
}

// parseAmount tolère les montants envoyés en décimal ("150000.00").
func parseAmount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		frac := raw[i+1:]
		if strings.Trim(frac, "0") != "" {
			return 0, fmt.Errorf("non-integer amount %q", raw)
		}
		raw = raw[:i]
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("non-positive amount %d", n)
	}
	return n, nil
}
