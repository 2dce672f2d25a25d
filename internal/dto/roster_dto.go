package dto

// RosterListRequest filters the admin roster listing.
type RosterListRequest struct {
	Search   string
	Category string
	Status   string
	Page     int
	PageSize int
}

// RosterListResponse wraps a paginated roster page.
type RosterListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// StudentUpdateRequest carries a partial admin edit; nil fields are untouched.
type StudentUpdateRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=2,max=128"`
	LastName    *string `json:"last_name" validate:"omitempty,min=2,max=128"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	ParentName  *string `json:"parent_name" validate:"omitempty,max=128"`
	ParentPhone *string `json:"parent_phone" validate:"omitempty,max=32"`
	ParentEmail *string `json:"parent_email" validate:"omitempty,email,max=160"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	ScheduleID  *string `json:"schedule_id" validate:"omitempty,max=64"`
}

// PaymentCreateRequest appends a payment to a student's history.
type PaymentCreateRequest struct {
	Amount int    `json:"amount" validate:"required,gt=0"`
	Method string `json:"method" validate:"required,oneof=cash transfer wallet card"`
	PaidAt string `json:"paid_at" validate:"omitempty,datetime=2006-01-02"`
}

// AttendanceCreateRequest marks presence for a training date.
type AttendanceCreateRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Present bool   `json:"present"`
}
