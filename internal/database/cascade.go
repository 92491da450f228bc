package database

import (
	"gorm.io/gorm"

	"jobboard-backend/internal/model"
)

// DeleteJobCascade removes a job and every application referencing it inside a
// single transaction, children first, so a concurrent reader never observes an
// application pointing at a missing job. Returns gorm.ErrRecordNotFound when
// the job is already gone.
func (d *DBinstanceStruct) DeleteJobCascade(jobID uint) error {
	return d.Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
}

// DeleteUserCascade removes a user and every application they submitted inside
// a single transaction, children first. Returns gorm.ErrRecordNotFound when
// the user is already gone.
func (d *DBinstanceStruct) DeleteUserCascade(userID uint) error {
	return d.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
