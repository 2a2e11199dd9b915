package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "docuquery/internal/app"
	"docuquery/internal/bootstrap"
	"docuquery/internal/history"
	"docuquery/internal/platform/rabbitmq"
	"docuquery/internal/repository"
	"docuquery/internal/retrieval"
	"docuquery/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	retrievalEngine := retrieval.NewEngine(app.Index)
	turnRepo := repository.NewTurnRepository(app.MySQL)
	turnPublisher := rabbitmq.NewTurnPublisher(app.MQConn, app.Config.RabbitMQ.TurnPersistQueue)
	historyStore := history.NewRedisStore(
		app.Redis,
		app.Config.Redis.MaxCachedTurns,
		time.Duration(app.Config.Redis.TurnTTLSeconds)*time.Second,
	)

	documentService := appsvc.NewDocumentService(app.Documents, app.Jobs, retrievalEngine, app.Runner)
	answerService := appsvc.NewAnswerService(
		app.Documents,
		retrievalEngine,
		historyStore,
		turnRepo,
		turnPublisher,
		app.Completer,
		app.Config.Pipeline.HistoryTurns,
		app.Config.Pipeline.MaxContextChars,
	)

	documentHandler := handler.NewDocumentHandler(documentService, app.Config.Pipeline.MaxUploadMB)
	askHandler := handler.NewAskHandler(answerService)

	v1 := router.Group("/api/v1")

	docs := v1.Group("/documents")
	docs.POST("", documentHandler.Submit)
	docs.POST("/upload", documentHandler.Upload)
	docs.GET("", documentHandler.List)
	docs.GET("/:id", documentHandler.Get)
	docs.GET("/:id/summary", documentHandler.Summary)
	docs.GET("/:id/search", documentHandler.Search)

	v1.GET("/tasks/:id", documentHandler.TaskStatus)
	v1.POST("/ask", askHandler.Ask)
	v1.GET("/conversations/:id/history", askHandler.History)

	return router
}
