package bootstrap

import "medscan_gateway/handlers"

type Handlers struct {
	ScanHandler    *handlers.ScanHandler
	ChatHandler    *handlers.ChatHandler
	DoctorHandler  *handlers.DoctorHandler
	ConsentHandler *handlers.ConsentHandler
	WSHandler      *handlers.WSHandler
}

func NewHandlers(services *Services, infra *Infrastructure) *Handlers {
	res := &Handlers{}
	res.ScanHandler = handlers.NewScanHandler(services.IngestService, services.ScanService)
	res.ChatHandler = handlers.NewChatHandler(services.ChatService)
	res.DoctorHandler = handlers.NewDoctorHandler(services.DoctorService)
	res.ConsentHandler = handlers.NewConsentHandler(services.ConsentService)
	res.WSHandler = handlers.NewWSHandler(infra.EventPublisher)
	return res
}
