package duitku

import "fmt"

// Codes machine retournés aux appelants en plus du message lisible.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeUpstream       = "UPSTREAM_ERROR"
	CodeBusiness       = "BUSINESS_ERROR"
	CodeConflict       = "CONFLICT_ERROR"
)

// ValidationError : entrée malformée ou hors bornes, jamais retentée.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthenticationError : signature invalide sur un callback entrant.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// UpstreamError : échec réseau ou 5xx du prestataire, retentable côté appelant.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// BusinessError : requête acceptée en forme mais refusée par le prestataire
// (identifiants marchands invalides, compte suspendu). Non retentable. Le
// détail prestataire part dans les logs, jamais dans la réponse.
type BusinessError struct {
	ProviderCode string
	Message      string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s (provider code %s)", e.Message, e.ProviderCode)
}

// ConflictError : ordre introuvable pour un callback.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
