package bootstrap

import (
	"medscan_gateway/config"
	"medscan_gateway/pkg/logging"
	"medscan_gateway/platform/cache"
	"medscan_gateway/platform/database"
	"medscan_gateway/platform/events"
	"medscan_gateway/platform/geocode"
	"medscan_gateway/platform/inference"
	"medscan_gateway/platform/queue"
	"medscan_gateway/platform/redis"
	"medscan_gateway/platform/storage"
)

type Infrastructure struct {
	DB             *database.DB
	Redis          *redis.Service
	Storage        *storage.Service
	Queue          cache.MessageQueue
	L1Cache        *cache.L1CacheService
	Cache          cache.CacheService
	EventPublisher *events.EventPublisher
	Inference      *inference.Client
	Geocoder       *geocode.Client
}

func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{}

	// database
	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, err
	}
	infra.DB = db
	if err := infra.DB.AutoMigrate(); err != nil {
		return nil, err
	}

	// redis services
	redisService, err := redis.InitRedis(cfg)
	if err != nil {
		logging.Logger.Error("fail Initializing Redis", "error", err)
		return nil, err
	}
	infra.Redis = redisService

	// storage services
	storageService, err := storage.InitStorageService(cfg)
	if err != nil {
		logging.Logger.Error("fail Initializing Bucket", "error", err)
		return nil, err
	}
	infra.Storage = storageService

	// message queue
	infra.Queue = queue.NewMessageService(redisService)

	// cache
	l1CacheService := cache.InitL1Cache()
	infra.L1Cache = l1CacheService
	infra.Cache = cache.NewCacheService(l1CacheService, redisService)

	// event publisher
	infra.EventPublisher = events.NewEventPublisher(redisService.Rdb)

	// external collaborators
	infra.Inference = inference.NewClient(cfg.InferenceBaseURL, cfg.UploadTimeout)
	infra.Geocoder = geocode.NewClient(cfg.GeocodeBaseURL, cfg.GeocodeRegion)

	return infra, nil
}

func (infra *Infrastructure) Shutdown() error {
	if err := infra.DB.Close(); err != nil {
		logging.Logger.Error("fail closing database", "error", err)
		return err
	}
	if err := infra.Redis.Rdb.Close(); err != nil {
		logging.Logger.Error("fail closing redis", "error", err)
		return err
	}
	return nil
}
