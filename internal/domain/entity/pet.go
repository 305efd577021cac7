package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pet species with mandatory vaccine selection on vacunacion visits
const (
	SpeciesPerro = "perro"
	SpeciesGato  = "gato"
)

// Pet belongs to exactly one client for its lifetime. Older appointment
// records may reference it only by snapshot name (see Appointment.MascotaID).
type Pet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClienteID uuid.UUID `gorm:"type:uuid;not null;index" json:"cliente_id"`
	Nombre    string    `gorm:"type:varchar(100);not null" json:"nombre"`
	Tipo      string    `gorm:"type:varchar(50)" json:"tipo"`
	Raza      string    `gorm:"type:varchar(100)" json:"raza"`
	Edad      int       `json:"edad"`
	Peso      float64   `json:"peso"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Cliente  *Client        `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	Historia []ClinicalNote `gorm:"foreignKey:MascotaID" json:"historia,omitempty"`
}

func (Pet) TableName() string {
	return "mascotas"
}
