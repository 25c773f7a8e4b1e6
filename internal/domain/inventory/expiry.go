package inventory

import (
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ExpiryStatus clasificación de un lote según los días que faltan para su vencimiento.
type ExpiryStatus string

const (
	ExpiryExpired  ExpiryStatus = "expired"
	ExpiryCritical ExpiryStatus = "critical"
	ExpiryWarning  ExpiryStatus = "warning"
	ExpirySafe     ExpiryStatus = "safe"
)

// Umbrales por defecto (días).
const (
	DefaultCriticalDays = 30
	DefaultWarningDays  = 90
)

// DaysUntil días calendario entre now y expiry (negativo si ya venció).
func DaysUntil(expiry, now time.Time) int {
	return int(entity.DateOf(expiry).Sub(entity.DateOf(now)).Hours() / 24)
}

// ClassifyExpiry: expired si ya venció, critical hasta criticalDays, warning hasta warningDays, safe después.
func ClassifyExpiry(expiry, now time.Time, criticalDays, warningDays int) ExpiryStatus {
	days := DaysUntil(expiry, now)
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= criticalDays:
		return ExpiryCritical
	case days <= warningDays:
		return ExpiryWarning
	default:
		return ExpirySafe
	}
}
