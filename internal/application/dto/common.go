package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LimitRequest límite para listados.
type LimitRequest struct {
	Limit int `query:"limit"`
}

// DefaultLimit aplica el valor por defecto y el máximo.
func (p *LimitRequest) DefaultLimit() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
}
