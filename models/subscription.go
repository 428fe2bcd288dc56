package models

import (
	"time"
)

type Subscription struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	StartDate time.Time `json:"startDate" gorm:"type:date;not null"`
	EndDate   time.Time `json:"endDate" gorm:"type:date;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TruncateToDay normalise une date à minuit UTC. Toutes les comparaisons de
// fenêtres d'abonnement se font à cette granularité.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsActiveAt : un abonnement est actif tant que sa date de fin n'est pas
// passée (borne incluse, au jour près).
func (s *Subscription) IsActiveAt(now time.Time) bool {
	return !s.EndDate.Before(TruncateToDay(now))
}

// ComputeWindow calcule la nouvelle fenêtre d'abonnement pour un achat de
// `months` mois. requestedStart est la date de l'achat (le "aujourd'hui" de
// la décision). Si l'abonnement courant est encore actif à cette date, la
// fenêtre repart de sa date de fin (borne incluse); sinon elle repart de
// requestedStart. Fonction pure, addition en mois calendaires.
func ComputeWindow(currentEnd *time.Time, requestedStart time.Time, months int) (start, end time.Time) {
	today := TruncateToDay(requestedStart)
	if currentEnd != nil {
		ce := TruncateToDay(*currentEnd)
		if !ce.Before(today) {
			return ce, ce.AddDate(0, months, 0)
		}
	}
	return today, today.AddDate(0, months, 0)
}
