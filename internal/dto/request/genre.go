package request

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type ActorRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  string `json:"last_name" validate:"required,min=1,max=255"`
}
