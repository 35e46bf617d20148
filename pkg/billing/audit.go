package billing

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// AppendAudit writes an audit row inside the caller's transaction. A
// failed insert aborts the surrounding transaction like any other write;
// a detail that cannot be marshaled is downgraded to an empty payload
// rather than blocking the business operation.
func AppendAudit(tx *gorm.DB, action string, actorID uuid.UUID, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Printf("⚠️  audit details for %s not serializable: %v", action, err)
		payload = []byte("{}")
	}
	entry := models.AuditLog{
		Action:  action,
		ActorID: actorID,
		Details: datatypes.JSON(payload),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return transientf("append audit "+action, err)
	}
	return nil
}
