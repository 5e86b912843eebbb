package calcom

// Slot — один доступный интервал в расписании.
type Slot struct {
	Start string `json:"start"`
}

// Ответ Cal.com на запрос доступных слотов: дни с их интервалами.
type slotsResponse struct {
	Data map[string][]Slot `json:"data"`
}

// Attendee — участник создаваемого бронирования.
type Attendee struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	TimeZone string `json:"timeZone"`
}

// Запрос на создание бронирования
type createBookingRequest struct {
	Start         string            `json:"start"`
	EventTypeSlug string            `json:"eventTypeSlug"`
	Username      string            `json:"username"`
	Attendee      Attendee          `json:"attendee"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Booking — созданное бронирование.
type Booking struct {
	ID    int    `json:"id"`
	UID   string `json:"uid"`
	Start string `json:"start"`
}

type bookingResponse struct {
	Data Booking `json:"data"`
}
