package router

import (
	"time"

	"github.com/wontivero/POS-2025-sub000/internal/config"
	"github.com/wontivero/POS-2025-sub000/internal/handler"
	"github.com/wontivero/POS-2025-sub000/internal/middleware"
	"github.com/wontivero/POS-2025-sub000/internal/repository"
	"github.com/wontivero/POS-2025-sub000/internal/service"
	"github.com/wontivero/POS-2025-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	loyaltyLogRepo := repository.NewLoyaltyLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	historialPrecioRepo := repository.NewHistorialPrecioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, historialPrecioRepo, rdb)
	clienteSvc := service.NewClienteService(clienteRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoStockRepo)
	loyaltySvc := service.NewLoyaltyService(clienteRepo, loyaltyLogRepo)
	cajaSvc := service.NewCajaService(cajaRepo)
	settingsSvc := service.NewSettingsService(settingsRepo, rdb)

	ventaSvc := service.NewVentaService(
		ventaRepo, inventarioSvc, loyaltySvc, cajaSvc, cajaRepo,
		productoRepo, clienteRepo, settingsSvc, dispatcher,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc, inventarioSvc)
	clientesH := handler.NewClientesHandler(clienteSvc, loyaltySvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:barcode", consultaH.GetPrecioPorBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cajero, supervisor, administrador — declared per-endpoint
		todos := middleware.RequireRole("cajero", "supervisor", "administrador")

		v1.POST("/ventas", todos, ventasH.RegistrarVenta)
		v1.GET("/ventas", todos, ventasH.ListarVentas)
		v1.GET("/ventas/:id", todos, ventasH.ObtenerVenta)
		v1.DELETE("/ventas/:id", middleware.RequireRole("supervisor", "administrador"), ventasH.AnularVenta)

		// Catalog reads for everyone; writes for administrador
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/alertas-stock", middleware.RequireRole("supervisor", "administrador"), productosH.AlertasStock)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		v1.GET("/productos/:id/movimientos", middleware.RequireRole("supervisor", "administrador"), productosH.MovimientosStock)
		v1.GET("/productos/:id/historial-precios", middleware.RequireRole("supervisor", "administrador"), productosH.HistorialPrecios)
		v1.POST("/productos/:id/stock", middleware.RequireRole("supervisor", "administrador"), productosH.AjustarStock)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.POST("/:id/reactivar", productosH.Reactivar)
			prods.POST("/precios-masivo", productosH.ActualizarPreciosMasivo)
		}

		// Clientes — reads and creation for everyone behind the counter
		v1.GET("/clientes", todos, clientesH.Listar)
		v1.GET("/clientes/:id", todos, clientesH.Obtener)
		v1.GET("/clientes/:id/puntos", todos, clientesH.MovimientosPuntos)
		v1.POST("/clientes", todos, clientesH.Crear)
		v1.PUT("/clientes/:id", todos, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", middleware.RequireRole("administrador"), clientesH.Desactivar)
		v1.POST("/clientes/:id/puntos", middleware.RequireRole("supervisor", "administrador"), clientesH.AjustarPuntos)

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", todos, cajaH.Abrir)
			caja.POST("/arqueo", todos, cajaH.Arqueo)
			caja.POST("/movimientos", todos, cajaH.RegistrarMovimiento)
			caja.GET("/estado", todos, cajaH.Estado)
			caja.GET("/:id", middleware.RequireRole("supervisor", "administrador"), cajaH.Reporte)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.POST("/:id/reactivar", authH.ReactivarUsuario)
		}

		v1.GET("/settings", middleware.RequireRole("supervisor", "administrador"), settingsH.Obtener)
		v1.PUT("/settings", middleware.RequireRole("administrador"), settingsH.Actualizar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
