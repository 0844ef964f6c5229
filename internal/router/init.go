package router

import (
	"github.com/zagroshq/cmms-api/internal/application/asset"
	"github.com/zagroshq/cmms-api/internal/application/inventory"
	"github.com/zagroshq/cmms-api/internal/application/maintenance"
	"github.com/zagroshq/cmms-api/internal/application/reference"
	"github.com/zagroshq/cmms-api/internal/application/stats"
	"github.com/zagroshq/cmms-api/internal/application/user"
	"github.com/zagroshq/cmms-api/internal/application/workorder"
	"github.com/zagroshq/cmms-api/internal/container"
	pginfra "github.com/zagroshq/cmms-api/internal/infrastructure/postgres"
	"github.com/zagroshq/cmms-api/internal/infrastructure/search"
	handlers "github.com/zagroshq/cmms-api/internal/interface/http"
	"github.com/zagroshq/cmms-api/internal/router/modules"
	"github.com/zagroshq/cmms-api/pkg/helpers"
)

// InitModules constructs repositories, application handlers and HTTP handlers
// from the container singletons and registers every feature module.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	users := pginfra.NewUserRepository(pool)
	assets := pginfra.NewAssetRepository(pool)
	orders := pginfra.NewWorkOrderRepository(pool)
	schedules := pginfra.NewMaintenanceScheduleRepository(pool)
	parts := pginfra.NewPartRepository(pool)
	categories := pginfra.NewAssetCategoryRepository(pool)
	locations := pginfra.NewLocationRepository(pool)

	hasher := helpers.BcryptHasher{}
	idx := search.NewAssetIndex(container.GetES(), cfg.ESAssetsIndex, logger)
	store := helpers.NewGCSStore(container.GetGCS(), cfg.GCSBucket)

	var pub workorder.NotificationPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authHandler := handlers.NewAuthHandler(
		user.NewRegisterUserHandler(users, hasher),
		user.NewAuthenticateHandler(users, hasher),
		user.NewGetByIDHandler(users),
		container.GetRedis(),
		jwt,
		cookies,
		logger,
		cfg,
	)

	userHandler := handlers.NewUserHandler(
		user.NewListHandler(users),
		user.NewGetByIDHandler(users),
		user.NewUpdateProfileHandler(users),
		user.NewSetActiveHandler(users),
		user.NewChangeRolesHandler(users),
		user.NewDeleteUserHandler(users),
	)

	assetHandler := handlers.NewAssetHandler(
		asset.NewCreateAssetHandler(assets, idx, logger),
		asset.NewGetByIDHandler(assets),
		asset.NewListHandler(assets),
		asset.NewSearchHandler(idx),
		asset.NewChangeStatusHandler(assets, idx, logger),
		asset.NewUpdateCriticalityHandler(assets),
		asset.NewSetMetadataHandler(assets),
		asset.NewUpdateDetailsHandler(assets, idx, logger),
		asset.NewDeleteAssetHandler(assets, idx, logger),
		asset.NewAttachDocumentHandler(assets, store),
		asset.NewListDocumentsHandler(assets),
	)

	workOrderHandler := handlers.NewWorkOrderHandler(
		workorder.NewCreateHandler(orders, assets),
		workorder.NewGetByIDHandler(orders),
		workorder.NewListHandler(orders),
		workorder.NewAssignHandler(orders, users, assets, pub, logger),
		workorder.NewTransitionHandler(orders),
		workorder.NewReprioritizeHandler(orders),
		workorder.NewDeleteHandler(orders),
	)

	maintenanceHandler := handlers.NewMaintenanceHandler(
		maintenance.NewCreateScheduleHandler(schedules, assets),
		maintenance.NewGetByIDHandler(schedules),
		maintenance.NewListHandler(schedules),
		maintenance.NewListDueHandler(schedules),
		maintenance.NewSetScheduleActiveHandler(schedules),
		maintenance.NewGenerateWorkOrderHandler(schedules),
		maintenance.NewNotifyDueHandler(schedules, assets, users, pub, logger),
		maintenance.NewDeleteScheduleHandler(schedules),
	)

	inventoryHandler := handlers.NewInventoryHandler(
		inventory.NewCreatePartHandler(parts),
		inventory.NewGetPartByIDHandler(parts),
		inventory.NewListPartsHandler(parts),
		inventory.NewListBelowMinimumHandler(parts),
		inventory.NewAdjustStockHandler(parts),
		inventory.NewUpdatePartHandler(parts),
		inventory.NewListTransactionsHandler(parts),
		inventory.NewDeletePartHandler(parts),
	)

	referenceHandler := handlers.NewReferenceHandler(reference.NewService(categories, locations))

	statsHandler := handlers.NewStatsHandler(
		stats.NewGetDashboardHandler(pginfra.NewStatsReader(pool), container.GetRedis(), logger),
	)
	healthHandler := handlers.NewHealthHandler(pool, container.GetRedis())

	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewAssetModule(assetHandler, jwt))
	r.Add(modules.NewWorkOrderModule(workOrderHandler, jwt))
	r.Add(modules.NewMaintenanceModule(maintenanceHandler, jwt))
	r.Add(modules.NewInventoryModule(inventoryHandler, jwt))
	r.Add(modules.NewReferenceModule(referenceHandler, jwt))
	r.Add(modules.NewStatsModule(statsHandler, healthHandler, jwt))
	r.Add(modules.NewDebugModule(jwt))
}
