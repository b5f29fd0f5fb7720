package domain

import "time"

// RotationLog é a trilha de auditoria das rotações. Append-only: para um
// teste completado, o número de registros é igual ao número de variantes
// efetivamente ativadas.
type RotationLog struct {
	ID        string    `json:"id"`
	TestID    string    `json:"test_id"`
	VariantID string    `json:"variant_id"`
	RotatedAt time.Time `json:"rotated_at"`
	// RotationOrder é o order da variante que entrou nesta rotação
	RotationOrder int `json:"rotation_order"`
	// DurationMinutes é o tempo que a variante ANTERIOR ficou ativa.
	// Zero na primeira ativação.
	DurationMinutes int     `json:"duration_minutes"`
	ViewsAtRotation int64   `json:"views_at_rotation"`
	CTRAtRotation   float64 `json:"ctr_at_rotation"`
}
