// services/stylist_resolver.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"salonsync-backend/models"

	"gorm.io/gorm"
)

// ResolveStylist maps an external scheduling staff id to the local stylist
// record, creating one at the default rate when unseen. Matching covers
// disabled stylists too; callers must check Enabled and skip sync for
// disabled ones. Re-synchronization never re-enables or re-rates a stylist
// an administrator has configured: only placeholder names get refreshed.
func ResolveStylist(db *gorm.DB, staffID, candidateName, candidateRole string) (*models.Stylist, error) {
	if staffID == "" {
		return nil, errors.New("stylist resolution requires a staff id")
	}

	var stylist models.Stylist
	err := db.Where("booking_staff_id = ?", staffID).First(&stylist).Error
	if err == nil {
		if strings.HasPrefix(stylist.Name, models.UnknownStylistPrefix) && candidateName != "" {
			stylist.Name = candidateName
			if candidateRole != "" {
				stylist.Role = candidateRole
			}
			if err := db.Model(&stylist).Updates(map[string]interface{}{
				"name": stylist.Name,
				"role": stylist.Role,
			}).Error; err != nil {
				return nil, err
			}
		}
		return &stylist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := candidateName
	if name == "" {
		name = fmt.Sprintf("%s %s", models.UnknownStylistPrefix, staffID)
	}
	stylist = models.Stylist{
		BookingStaffID: staffID,
		Name:           name,
		Role:           candidateRole,
		CommissionRate: models.DefaultCommissionRate,
		Enabled:        true,
	}
	if err := db.Create(&stylist).Error; err != nil {
		// Concurrent webhook created the same stylist first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("booking_staff_id = ?", staffID).First(&stylist).Error; err != nil {
				return nil, err
			}
			return &stylist, nil
		}
		return nil, err
	}
	return &stylist, nil
}
