package router

import (
	"time"

	"github.com/deivisontravizan/one-travvizan-sub000/internal/config"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/handler"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/middleware"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/repository"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/service"
	"github.com/deivisontravizan/one-travvizan-sub000/internal/worker"

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
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	agendamentoRepo := repository.NewAgendamentoRepository(db)
	financeiroRepo := repository.NewFinanceiroRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	taxasRepo := repository.NewTaxasRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	taxasSvc := service.NewTaxasService(taxasRepo, rdb)
	comandaSvc := service.NewComandaService(comandaRepo, agendamentoRepo, financeiroRepo, clienteRepo, taxasSvc)
	relatorioSvc := service.NewRelatorioService(comandaRepo, financeiroRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	comandaH := handler.NewComandaHandler(comandaSvc)
	taxasH := handler.NewTaxasHandler(taxasSvc)
	relatorioH := handler.NewRelatorioHandler(relatorioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		comandas := v1.Group("/comandas")
		{
			comandas.POST("", comandaH.Abrir)
			comandas.GET("", comandaH.Listar)
			comandas.GET("/:id", comandaH.Obter)
			comandas.POST("/:id/clientes", comandaH.AdicionarCliente)
			comandas.POST("/:id/pagamentos", comandaH.RegistrarPagamento)
			comandas.POST("/:id/fechar", comandaH.Fechar)
			comandas.POST("/:id/reabrir", comandaH.Reabrir)
		}

		taxas := v1.Group("/taxas")
		{
			taxas.GET("", taxasH.Obter)
			taxas.PUT("", taxasH.Salvar)
		}

		relatorios := v1.Group("/relatorios")
		{
			relatorios.GET("/resumo", relatorioH.Resumo)
			relatorios.POST("/enviar", relatorioH.Enviar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
