package domain

import "time"

// Attachment is the metadata of a file supporting a tracking record. The
// content itself lives in blob storage under StoredName.
type Attachment struct {
	ID           string    `json:"id"              bson:"_id"`
	IndicatorID  int64     `json:"id_indicador"    bson:"indicator_id"`
	Year         int       `json:"gestion"         bson:"year"`
	OriginalName string    `json:"nombre_original" bson:"original_name"`
	StoredName   string    `json:"-"               bson:"stored_name"`
	Description  string    `json:"descripcion"     bson:"description"`
	Size         int64     `json:"tamano"          bson:"size"`
	UploadedAt   time.Time `json:"fecha_carga"     bson:"uploaded_at"`
}
