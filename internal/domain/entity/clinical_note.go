package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalNote (historia) records a completed consultation for a pet.
// Diagnostico is mandatory. ProximaVisita is a forward reminder carried on the
// note itself, never promoted to a separate record. Edits replace fields in
// place; entries are never appended to an existing note.
type ClinicalNote struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MascotaID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"mascota_id"`
	FechaAtencion time.Time  `gorm:"type:date;not null" json:"fecha_atencion"`
	Motivo        string     `gorm:"type:text" json:"motivo"`
	Diagnostico   string     `gorm:"type:text;not null" json:"diagnostico"`
	Tratamiento   string     `gorm:"type:text" json:"tratamiento"`
	Observaciones string     `gorm:"type:text" json:"observaciones"`
	ProximaVisita *time.Time `gorm:"type:date" json:"proxima_visita,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ClinicalNote) TableName() string {
	return "historias"
}
