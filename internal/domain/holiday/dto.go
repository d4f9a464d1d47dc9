package holiday

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		Name:      h.Name,
		Date:      h.Date.Format("2006-01-02"),
		CreatedAt: h.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: h.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
