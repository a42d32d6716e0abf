package router

import (
	"log"

	"cronograma/config"
	"cronograma/controllers"
	"cronograma/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// Cadeia: públicas -> AuthRequired (token) -> Authorizer (conta ativa)
// -> Adminizer (role Admin).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/auth/login", Logger(), controllers.Login)
	api.POST("/auth/registro", Logger(), controllers.Registro)

	// Authenticated routes (token + conta ativa)
	autenticado := api.Group("")
	autenticado.Use(controllers.AuthRequired())
	autenticado.Use(Authorizer())

	autenticado.GET("/auth/me", Logger(), controllers.Me)

	// Diretório de usuários (para escolher com quem compartilhar)
	autenticado.GET("/usuarios", Logger(), controllers.GetUsuarios)
	autenticado.GET("/usuarios/:id", Logger(), controllers.GetUsuarioByID)

	// Contratos
	autenticado.GET("/contratos", Logger(), controllers.GetContratos)
	autenticado.POST("/contratos", Logger(), controllers.CreateContrato)
	autenticado.GET("/contratos/:id", Logger(), controllers.GetContrato)
	autenticado.PUT("/contratos/:id", Logger(), controllers.UpdateContrato)
	autenticado.DELETE("/contratos/:id", Logger(), controllers.DeleteContrato)

	// Compartilhamento (somente proprietário, checado no handler)
	autenticado.GET("/contratos/:id/compartilhamentos", Logger(), controllers.GetCompartilhamentos)
	autenticado.POST("/contratos/:id/compartilhar", Logger(), controllers.CompartilharContrato)
	autenticado.DELETE("/contratos/:id/compartilhar/:usuarioId", Logger(), controllers.RemoverCompartilhamento)

	// Pagamentos mensais do contrato
	autenticado.GET("/contratos/:id/pagamentos", Logger(), controllers.GetPagamentos)
	autenticado.PUT("/contratos/:id/pagamentos/:ordem", Logger(), controllers.AtualizarPagamento)

	// Serviços e medições
	autenticado.GET("/servicos", Logger(), controllers.GetServicos)
	autenticado.POST("/servicos", Logger(), controllers.CreateServico)
	autenticado.GET("/servicos/:id", Logger(), controllers.GetServico)
	autenticado.PUT("/servicos/:id", Logger(), controllers.UpdateServico)
	autenticado.DELETE("/servicos/:id", Logger(), controllers.DeleteServico)
	autenticado.PUT("/servicos/:id/medicoes/:ordem", Logger(), controllers.UpdateMedicao)

	// Admin (gestão de identidades; não dá acesso a contratos alheios)
	admin := autenticado.Group("")
	admin.Use(Adminizer())

	admin.GET("/auth/usuarios", Logger(), controllers.ListarUsuarios)
	admin.POST("/auth/usuarios", Logger(), controllers.CriarUsuario)
	admin.PUT("/auth/usuarios/:id", Logger(), controllers.AtualizarUsuario)
	admin.DELETE("/auth/usuarios/:id", Logger(), controllers.DeletarUsuario)

	log.Printf("Routes initialized")
}
