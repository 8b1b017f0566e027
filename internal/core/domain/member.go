package domain

// Member is a gym member. Member administration lives outside this core;
// only the fields the ledger and the check-in flow read are modeled here.
type Member struct {
	MemberID   string `json:"memberID"`
	NationalID string `json:"nationalID"` // DNI, unique natural identifier
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"` // optional, empty when unknown
	IsActive   bool   `json:"isActive"`
}

// DisplayName returns the member's name as shown on the kiosk screen.
func (m Member) DisplayName() string {
	return m.FirstName + " " + m.LastName
}
