package mapping

import (
	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/fittrack/gym_backoffice/internal/models"
)

// ToDomainMember converts a db row to a domain Member.
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:   m.MemberID,
		NationalID: m.NationalID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Phone:      m.Phone,
		IsActive:   m.IsActive,
	}
}

// ToDomainSubscription converts a db row to a domain Subscription.
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID: m.SubscriptionID,
		MemberID:       m.MemberID,
		PlanID:         m.PlanID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		IsActive:       m.IsActive,
	}
}

// ToModelPayment converts a domain Payment to its db row.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		SubscriptionID: d.SubscriptionID,
		Amount:         d.Amount,
		Method:         string(d.Method),
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
	}
}

// ToModelAttendance converts a domain AttendanceRecord to its db row.
func ToModelAttendance(d domain.AttendanceRecord) models.Attendance {
	return models.Attendance{
		AttendanceID: d.AttendanceID,
		MemberID:     d.MemberID,
		CheckedInAt:  d.CheckedInAt,
	}
}
