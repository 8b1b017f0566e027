package dto

import "github.com/fittrack/gym_backoffice/internal/core/domain"

// CheckInRequest is what the kiosk sends: the member's DNI.
type CheckInRequest struct {
	NationalID string `json:"nationalID" binding:"required"`
}

// CheckInResponse is what the kiosk displays after a check-in.
type CheckInResponse struct {
	MemberName    string                  `json:"memberName"`
	Phone         string                  `json:"phone,omitempty"`
	Status        domain.MembershipStatus `json:"status"`
	DaysRemaining int                     `json:"daysRemaining,omitempty"`
	HasCoverage   bool                    `json:"hasCoverage"`
	Message       string                  `json:"message"`
}

// ToCheckInResponse converts a domain.CheckInResult to its DTO, attaching the
// kiosk banner message for the status.
func ToCheckInResponse(r *domain.CheckInResult) CheckInResponse {
	var message string
	switch {
	case r.Status == domain.StatusExpired:
		message = "ALERTA: Cuota vencida / suspendida."
	case r.Status == domain.StatusWarning:
		message = "ALERTA: Cuota por vencer."
	case r.Status == domain.StatusActive && !r.HasCoverage:
		message = "Socio activo (período de pago 1-10)."
	default:
		message = "Socio activo (cuota al día)."
	}
	return CheckInResponse{
		MemberName:    r.MemberName,
		Phone:         r.Phone,
		Status:        r.Status,
		DaysRemaining: r.DaysRemaining,
		HasCoverage:   r.HasCoverage,
		Message:       message,
	}
}
