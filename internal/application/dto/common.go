package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse listado servido desde la proyección en vivo.
// Loading es true mientras la suscripción del propietario no ha entregado su primera instantánea.
type ListResponse[T any] struct {
	Loading bool `json:"loading"`
	Items   []T  `json:"items"`
}

// DeleteResponse resultado de un borrado: Deleted=false significa que no había nada que borrar.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// LiveEvent evento del flujo SSE: una vista del propietario cambió.
type LiveEvent struct {
	View  string `json:"view"`
	Error string `json:"error,omitempty"`
}
