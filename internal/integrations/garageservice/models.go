package garageservice

// Vehicle модель автомобиля из GarageService
type Vehicle struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate"`
	VIN          string `json:"vin"`
	OdoReading   int    `json:"odo_reading"`
}

// ErrorResponse модель ошибки от GarageService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
