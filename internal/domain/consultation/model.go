package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Record is one saved consultation outcome: the symptoms the user reported
// and the analysis sections produced for them. Sections beyond the diagnosis
// are optional; a record may be saved before every section has completed.
type Record struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"userId"`
	Symptoms     []string  `db:"symptoms" json:"symptoms"`
	Diagnosis    string    `db:"diagnosis" json:"diagnosis"`
	Treatment    *string   `db:"treatment" json:"treatment,omitempty"`
	Medications  *string   `db:"medications" json:"medications,omitempty"`
	HomeRemedies *string   `db:"home_remedies" json:"homeRemedies,omitempty"`
	FileAnalysis *string   `db:"file_analysis" json:"fileAnalysis,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
