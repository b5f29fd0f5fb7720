package domain

import "time"

// Variant é um título candidato dentro de um teste. O texto é imutável
// após a criação; apenas ativação/desativação mudam.
type Variant struct {
	ID          string     `json:"id"`
	TestID      string     `json:"test_id"`
	Title       string     `json:"title"`
	Order       int        `json:"order"`
	IsActive    bool       `json:"is_active"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
