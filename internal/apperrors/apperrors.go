package apperrors

import (
	"errors"
	"fmt"
)

// Wire messages stay in the API's historical French vocabulary.
var (
	ErrNotAuthenticated     = errors.New("Non authentifié")
	ErrInvalidCredentials   = errors.New("Identifiants invalides")
	ErrEmailTaken           = errors.New("Email déjà utilisé")
	ErrRideNotFound         = errors.New("Covoiturage non trouvé")
	ErrReservationNotFound  = errors.New("Réservation non trouvée")
	ErrVehicleNotFound      = errors.New("Véhicule non trouvé")
	ErrUserNotFound         = errors.New("Utilisateur non trouvé")
	ErrInsufficientCapacity = errors.New("Places insuffisantes")
	ErrInvalidScore         = errors.New("Note doit être entre 1 et 5")
	ErrDuplicateReservation = errors.New("Réservation déjà en cours pour ce covoiturage")
	ErrDuplicateReview      = errors.New("Avis déjà déposé pour ce trajet")
	ErrVehicleInUse         = errors.New("Véhicule utilisé par un covoiturage")
)

// ValidationError carries a request-specific message naming the offending
// field set.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StatusOf maps a domain error to its HTTP status. Anything unrecognized is
// an internal error and must not leak detail to the caller.
func StatusOf(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInsufficientCapacity),
		errors.Is(err, ErrInvalidScore),
		errors.Is(err, ErrDuplicateReservation),
		errors.Is(err, ErrDuplicateReview),
		errors.Is(err, ErrVehicleInUse):
		return 400
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrInvalidCredentials):
		return 401
	case errors.Is(err, ErrRideNotFound),
		errors.Is(err, ErrReservationNotFound),
		errors.Is(err, ErrVehicleNotFound),
		errors.Is(err, ErrUserNotFound):
		return 404
	}
	return 500
}
