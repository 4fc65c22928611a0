package dto

type BookingListDTO struct {
	ID          uint     `json:"id"`
	Reference   string   `json:"reference"`
	BarberID    uint     `json:"barber_id"`
	BarberName  string   `json:"barber_name"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	Slot        string   `json:"slot"`
	Status      string   `json:"status"`
	ClientName  string   `json:"client_name"`
	ClientPhone string   `json:"client_phone"`
	Services    []string `json:"services"`
	TotalPrice  float64  `json:"total_price"`
	DurationMin int      `json:"duration_min"`
}
