package domain

// Параметры сетки слотов
const (
	// SlotStepMinutes шаг, с которым генерируются времена начала записи
	// Не зависит от длительности услуги
	SlotStepMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 720 // 12 hours
	MaxServiceNameLength      = 100
	MaxNotesLength            = 500
	MaxBlackoutReasonLength   = 255
	MinClientNameLength       = 2
	MaxTestimonialNameLength  = 100
	MaxTestimonialQuoteLength = 1000
)

// DefaultClientLastName фамилия по умолчанию для клиентов, записавшихся через сайт без фамилии
const DefaultClientLastName = "ClienteWeb"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
