package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquireLedgerPostingLock serializes stock posting across instances using a
// MySQL advisory lock.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB that will do the posting transaction.
func AcquireLedgerPostingLock(tx *gorm.DB) error {
	var ok int
	if err := tx.Raw("SELECT GET_LOCK('stockroom:posting', 30)").Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire stock posting lock")
	}
	return nil
}

func ReleaseLedgerPostingLock(tx *gorm.DB) {
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK('stockroom:posting')").Scan(&_ok).Error
}
