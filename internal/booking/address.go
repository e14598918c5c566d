package booking

import (
	"context"

	"clinic-booking-api/internal/model"
)

type AddressRequest struct {
	DoorNo   *string `json:"doorNo"`
	Street   string  `json:"street"`
	Landmark *string `json:"landmark"`
	Area     string  `json:"area"`
	City     string  `json:"city"`
}

// SaveAddress stores a new address; it becomes the one LatestAddress returns.
func (s *Service) SaveAddress(ctx context.Context, req AddressRequest) (*model.Address, error) {
	var missing []string
	if blank(req.Street) {
		missing = append(missing, "street")
	}
	if blank(req.Area) {
		missing = append(missing, "area")
	}
	if blank(req.City) {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	// stored verbatim so LatestAddress gives back exactly what was sent
	a := &model.Address{
		DoorNo:   req.DoorNo,
		Street:   req.Street,
		Landmark: req.Landmark,
		Area:     req.Area,
		City:     req.City,
	}
	if err := s.gw.InsertAddress(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) LatestAddress(ctx context.Context) (*model.Address, error) {
	return s.gw.LatestAddress(ctx)
}
