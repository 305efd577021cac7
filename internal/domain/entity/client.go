package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Client represents a pet owner. DNI is the natural uniqueness key: it is
// optional, but when present there is at most one client per DNI (enforced
// by a partial unique index).
type Client struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DNI       string        `gorm:"type:varchar(20);index" json:"dni"`
	Nombre    string        `gorm:"type:varchar(150);not null" json:"nombre"`
	Telefono  string        `gorm:"type:varchar(30)" json:"telefono"`
	Email     string        `gorm:"type:varchar(150)" json:"email"`
	Domicilio string        `gorm:"type:text" json:"domicilio"`
	Cambios   ChangeHistory `gorm:"type:jsonb" json:"cambios,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Mascotas []Pet `gorm:"foreignKey:ClienteID" json:"mascotas,omitempty"`
}

func (Client) TableName() string {
	return "clientes"
}

// FieldChange records one mutation of a client contact field.
type FieldChange struct {
	Campo         string    `json:"campo"`
	ValorAnterior string    `json:"valor_anterior"`
	ValorNuevo    string    `json:"valor_nuevo"`
	FechaCambio   time.Time `json:"fecha_cambio"`
}

// ChangeHistory is the ordered list of field changes, stored as JSONB.
type ChangeHistory []FieldChange

// Value implements driver.Valuer for JSONB storage
func (h ChangeHistory) Value() (driver.Value, error) {
	if len(h) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner
func (h *ChangeHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := ChangeHistory{}
	err := json.Unmarshal(bytes, &result)
	*h = result
	return err
}

// Client fields tracked by the change history.
const (
	FieldNombre    = "nombre"
	FieldTelefono  = "telefono"
	FieldEmail     = "email"
	FieldDomicilio = "domicilio"
)

// ApplyContactFields diffs the mutable contact fields against incoming values,
// updates the client in place and appends one change-history entry per changed
// field. Empty incoming values are treated as "not provided" and skipped.
// Returns the changes that were applied.
func (c *Client) ApplyContactFields(nombre, telefono, email, domicilio string, changedAt time.Time) []FieldChange {
	type candidate struct {
		campo string
		old   *string
		nuevo string
	}

	candidates := []candidate{
		{FieldNombre, &c.Nombre, nombre},
		{FieldTelefono, &c.Telefono, telefono},
		{FieldEmail, &c.Email, email},
		{FieldDomicilio, &c.Domicilio, domicilio},
	}

	var applied []FieldChange
	for _, cand := range candidates {
		if cand.nuevo == "" || cand.nuevo == *cand.old {
			continue
		}
		change := FieldChange{
			Campo:         cand.campo,
			ValorAnterior: *cand.old,
			ValorNuevo:    cand.nuevo,
			FechaCambio:   changedAt,
		}
		*cand.old = cand.nuevo
		applied = append(applied, change)
	}

	c.Cambios = append(c.Cambios, applied...)
	return applied
}
