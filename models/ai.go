package models

// AIRequest is the payload coming from the frontend into /api/ai/respond.
type AIRequest struct {
	Message string `json:"message" binding:"required"` // user's message (typed or voice->text)
	UserID  string `json:"userId"`                     // optional; "anonymous" when absent
}

// AIResponse is what the receptionist returns to the frontend.
type AIResponse struct {
	Reply      string `json:"reply"`
	Action     string `json:"action"`
	BookingID  string `json:"bookingId,omitempty"`
	PaymentURL string `json:"paymentUrl,omitempty"`
}

// Actions the language model may request. Anything else is treated as NONE.
const (
	ActionNone          = "NONE"
	ActionCreateBooking = "CREATE_BOOKING_AND_PAYMENT"
	ActionCancelBooking = "CANCEL_BOOKING"
)

// IntentData carries the booking fields extracted from a single turn.
// Empty string means the model did not mention the field this turn.
type IntentData struct {
	ServiceID   string `json:"serviceId,omitempty"`
	ClientName  string `json:"clientName,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty"`
	StartAt     string `json:"startAt,omitempty"`
	BookingID   string `json:"bookingId,omitempty"`
}

// ResolvedIntent is the structured reply required from the language model.
// It lives for one turn and is never persisted.
type ResolvedIntent struct {
	Reply  string     `json:"reply"`
	Action string     `json:"action"`
	Data   IntentData `json:"data"`
}

// MemoryState is the per-user conversational memory carried across turns.
// Fields hold the last explicitly mentioned value; empty means never set.
type MemoryState struct {
	LastServiceID   string `json:"lastServiceId,omitempty"`
	LastClientName  string `json:"lastClientName,omitempty"`
	LastClientPhone string `json:"lastClientPhone,omitempty"`
	LastStartAt     string `json:"lastStartAt,omitempty"`
	LastBookingID   string `json:"lastBookingId,omitempty"`
}

// Merge folds one turn's extracted data into memory. An explicit new value
// wins; absence falls back to whatever memory already held.
func (m MemoryState) Merge(data IntentData) MemoryState {
	out := m
	if data.ServiceID != "" {
		out.LastServiceID = data.ServiceID
	}
	if data.ClientName != "" {
		out.LastClientName = data.ClientName
	}
	if data.ClientPhone != "" {
		out.LastClientPhone = data.ClientPhone
	}
	if data.StartAt != "" {
		out.LastStartAt = data.StartAt
	}
	if data.BookingID != "" {
		out.LastBookingID = data.BookingID
	}
	return out
}
