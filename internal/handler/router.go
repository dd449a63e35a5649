package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Thimira-N/todo-cabin/internal/middleware"
)

// NewRouter wires every handler onto a gin engine. Login and register
// are public; everything else sits behind the JWT middleware.
func NewRouter(auth *AuthHandler, members *MemberHandler, registry *RegistryHandler, todos *TodoHandler, minutes *MinuteTrackerHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/register", auth.Register)
	r.POST("/api/login", auth.Login)

	api := r.Group("/api", middleware.JWTAuth())
	api.GET("/me", auth.Me)

	api.GET("/members", members.List)
	api.POST("/members", members.Create)
	api.DELETE("/members/:id", members.Delete)

	api.GET("/registry", registry.ForDate)
	api.GET("/registry/all", registry.All)
	api.POST("/registry/mark-in", registry.MarkIn)
	api.POST("/registry/mark-out", registry.MarkOut)

	api.GET("/todos", todos.List)
	api.POST("/todos", todos.Create)
	api.PUT("/todos/:id", todos.Update)
	api.DELETE("/todos/:id", todos.Delete)

	api.GET("/minutes", minutes.List)
	api.POST("/minutes", minutes.Create)
	api.GET("/minutes/export", minutes.Export)
	api.PUT("/minutes/:id", minutes.Update)
	api.DELETE("/minutes/:id", minutes.Delete)
	api.POST("/minutes/:id/duplicate", minutes.Duplicate)
	api.POST("/minutes/:id/members/:memberId/tasks", minutes.AddTask)
	api.PUT("/minutes/:id/members/:memberId/tasks/:index", minutes.UpdateTask)
	api.DELETE("/minutes/:id/members/:memberId/tasks/:index", minutes.RemoveTask)

	return r
}
