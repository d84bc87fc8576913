package bootstrap

import (
	"medscan_gateway/config"
	"medscan_gateway/services"
)

type Services struct {
	IngestService  *services.IngestService
	ScanService    *services.ScanService
	ChatService    *services.ChatService
	DoctorService  *services.DoctorService
	ConsentService *services.ConsentService
}

func NewServices(cfg *config.Config, repos *Repositories, infra *Infrastructure) *Services {
	res := &Services{}

	ingestService := services.NewIngestService(cfg.StagingTTL)
	res.IngestService = ingestService

	res.ScanService = services.NewScanService(
		ingestService,
		infra.Inference,
		infra.EventPublisher,
		infra.Redis,
		infra.Storage,
		repos.ScanRepository,
	)

	res.ChatService = services.NewChatService(infra.Inference, infra.Redis)

	res.DoctorService = services.NewDoctorService(
		infra.Inference,
		infra.Geocoder,
		infra.Cache,
		infra.Queue,
	)

	res.ConsentService = services.NewConsentService(infra.Redis, cfg.ConsentTTL)

	return res
}
