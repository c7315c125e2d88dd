package models

// Store is a physical retail location. The id comes from the upstream store
// directory and never changes.
type Store struct {
	ID        string  `json:"id"        validate:"required"`
	Name      string  `json:"name"      validate:"required"`
	State     string  `json:"state"     validate:"required,usstate"`
	Latitude  float64 `json:"latitude"  validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}
