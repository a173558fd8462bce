package cmd

import (
	"expressia/internal/adapters/out/postgres"
	"expressia/internal/adapters/out/postgres/storemetarepo"
	"expressia/internal/core/application/usecases/commands"
	"expressia/internal/core/application/usecases/editing"
	"expressia/internal/core/application/usecases/queries"
	"expressia/internal/core/domain/services"
	"expressia/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	changeBus  ports.ChangeBus
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, changeBus ports.ChangeBus) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		changeBus:  changeBus,
	}
}

func (c *CompositionRoot) ChangeBus() ports.ChangeBus {
	return c.changeBus
}

func (c *CompositionRoot) CreateStoreMeta() ports.StoreMeta {
	return storemetarepo.NewGormStoreMetaRepository(c.gormDB)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.changeBus)
}

func (c *CompositionRoot) CreateOverrideStatusCommandHandler() commands.OverrideStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOverrideStatusCommandHandler(f, c.changeBus)
}

func (c *CompositionRoot) CreateSeedOrdersCommandHandler() commands.SeedOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSeedOrdersCommandHandler(f, services.NewTimelineBuilder())
}

func (c *CompositionRoot) CreateEditingUoWFactory() editing.OrderUoWFactory {
	return FuncEditingUoWFactory(func() editing.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewTrackOrderQueryHandler(
		uow.OrderRepository(),
		services.NewTimelineBuilder(),
		services.NewStatusDeriver(),
	)
}

func (c *CompositionRoot) CreateExportHistoryQueryHandler() queries.ExportHistoryQueryHandler {
	return queries.NewExportHistoryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncEditingUoWFactory func() editing.OrderUoW

func (f FuncEditingUoWFactory) Create() editing.OrderUoW {
	return f()
}
