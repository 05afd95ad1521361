package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/inventory"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	AdjustUC    *inventory.AdjustStockUseCase
	RecordUC    *inventory.RecordMovementUseCase
	HistoryUC   *inventory.MovementHistoryUseCase
	TransferUC  *inventory.TransferStockUseCase
	VehicleUC   *usecase.VehicleUseCase
	DriverUC    *usecase.DriverUseCase
	DeliveryUC  *usecase.DeliveryUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta y consulta públicas, configuración protegida
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), companyHandler.Update)
	companies.Get("/:id/modules", AuthMiddleware(deps.JWTSecret), companyHandler.ListModules)
	companies.Put("/:id/modules", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), companyHandler.SetModule)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (sólo admin)
	users := protected.Group("/users", RequireRole("admin"))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", userHandler.SetRole)
	users.Put("/:id/status", userHandler.SetStatus)

	// Products + libro de inventario (módulo inventory)
	products := protected.Group("/products", RequireModule(entity.ModuleInventory, deps.CompanyUC))
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.AdjustUC, deps.RecordUC, deps.HistoryUC)
	products.Get("/low-stock", productHandler.ListLowStock) // antes de /:id
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)
	products.Post("/:id/stock", RequireRole("admin", "bodeguero"), inventoryHandler.AdjustStock)
	products.Get("/:id/stock", inventoryHandler.Stock)
	products.Get("/:id/stock-movements", inventoryHandler.MovementHistory)

	invGroup := protected.Group("/inventory", RequireModule(entity.ModuleInventory, deps.CompanyUC))
	invGroup.Post("/movements", RequireRole("admin", "bodeguero", "vendedor"), inventoryHandler.RecordMovement)

	// Warehouses + traslados (módulo inventory). Transfers se registra antes
	// que /:id para que "transfers" no se interprete como ID.
	warehouses := protected.Group("/warehouses", RequireModule(entity.ModuleInventory, deps.CompanyUC))
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	transferHandler := NewTransferHandler(deps.TransferUC)
	warehouses.Post("/transfers", RequireRole("admin", "bodeguero"), transferHandler.Create)
	warehouses.Get("/transfers", transferHandler.List)
	warehouses.Get("/transfers/:id", transferHandler.GetByID)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole("admin"), warehouseHandler.Delete)

	// Logística (módulo logistics)
	logistics := RequireModule(entity.ModuleLogistics, deps.CompanyUC)

	vehicles := protected.Group("/vehicles", logistics)
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", RequireRole("admin"), vehicleHandler.Delete)

	drivers := protected.Group("/drivers", logistics)
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/", driverHandler.List)
	drivers.Get("/:id", driverHandler.GetByID)
	drivers.Put("/:id", driverHandler.Update)
	drivers.Delete("/:id", RequireRole("admin"), driverHandler.Delete)

	deliveries := protected.Group("/deliveries", logistics)
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Patch("/:id/status", deliveryHandler.UpdateStatus)

	// Recursos humanos (módulo hr)
	employees := protected.Group("/employees", RequireModule(entity.ModuleHR, deps.CompanyUC))
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", RequireRole("admin"), employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", RequireRole("admin"), employeeHandler.Update)
	employees.Delete("/:id", RequireRole("admin"), employeeHandler.Delete)
}
