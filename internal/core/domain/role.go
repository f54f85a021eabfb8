package domain

// Role is a named permission group. What a role can see is decided by its
// access entries, one per menu item.
type Role struct {
	ID     int64  `json:"id_rol" bson:"_id"`
	Name   string `json:"rol"    bson:"name"`
	Status Status `json:"estado" bson:"status"`
}
