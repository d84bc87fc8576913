package bootstrap

import (
	"medscan_gateway/platform/database"
	"medscan_gateway/repository"
)

type Repositories struct {
	ScanRepository repository.ScanRepository
}

func NewRepositories(db *database.DB) *Repositories {
	sqlDB := db.GetDatabase()
	return &Repositories{
		ScanRepository: repository.NewScanRepository(sqlDB),
	}
}
