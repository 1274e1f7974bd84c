package api

import (
	"edustocks/internal/domain"
	"edustocks/internal/logger"
	l1_service "edustocks/internal/service/l1"
	l2_service "edustocks/internal/service/l2"
	l3_service "edustocks/internal/service/l3"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	QuoteService    l1_service.QuoteService
	LessonService   l1_service.LessonService
	TutorService    l1_service.TutorService
	LedgerService   l2_service.LedgerService
	ProgressService l2_service.ProgressService
	UserService     l3_service.UserService
	TokenVerifier   TokenVerifier
	Logger          *zap.SugaredLogger

	// Close releases resources held by the dependencies, if any.
	Close func() error
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to edustocks"})
	})
	router.GET("/api/auth/health", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"status": "ok"})
	})

	router.GET("/api/stocks", m.listStocks)
	router.GET("/api/stocks/search", m.searchStocks)
	router.GET("/api/stocks/summary", m.marketSummary)
	router.GET("/api/stocks/:symbol", m.getStock)

	router.GET("/api/lessons", m.listLessons)
	router.GET("/api/lessons/:id", m.getLesson)

	authed := router.Group("/api", m.authMiddleware)
	authed.POST("/auth/verify", m.verifyUser)
	authed.GET("/portfolio", m.getPortfolio)
	authed.POST("/portfolio/buy", m.buyStock)
	authed.POST("/portfolio/sell", m.sellStock)
	authed.GET("/portfolio/export", m.exportPortfolio)
	authed.POST("/lessons/:id/complete", m.completeLesson)
	authed.GET("/progress", m.getProgress)
	authed.POST("/ai-trainer/question", m.generateQuestion)
	authed.POST("/ai-trainer/answer", m.checkAnswer)
	authed.POST("/ai-trainer/ask", m.askTutor)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

// statusForKind maps an error kind to the HTTP status it is reported with.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInsufficientBalance,
		domain.KindInsufficientShares,
		domain.KindInvalidQuantity,
		domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindStockNotFound, domain.KindLessonNotFound:
		return http.StatusNotFound
	case domain.KindUpstreamRateLimited:
		return http.StatusTooManyRequests
	case domain.KindUpstreamInvalidResponse:
		return http.StatusBadGateway
	case domain.KindUpstreamUnavailable, domain.KindStorageUnavailable, domain.KindConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func returnErrorJson(err error, c *gin.Context) {
	kind := domain.KindOf(err)
	code := statusForKind(kind)
	message := domain.UserMessage(err)
	if kind == domain.KindInternal {
		message = "internal error"
	}

	log := logger.FromContext(c.Request.Context())
	if code >= 500 {
		log.Errorf("%s %s failed: %s", c.Request.Method, c.Request.URL.Path, err.Error())
	} else {
		log.Infof("%s %s rejected (%s): %s", c.Request.Method, c.Request.URL.Path, kind, err.Error())
	}

	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"kind":    kind,
		"message": message,
	})
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New().String()
	c.Set("requestID", requestID)

	base := m.Logger
	if base == nil {
		base = zap.S()
	}
	log := base.With("requestID", requestID)
	ctx := logger.NewContext(c.Request.Context(), log)
	c.Request = c.Request.WithContext(ctx)

	start := time.Now()
	c.Next()

	log.Infow("request completed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"userID", c.GetString("userID"),
		"clientIP", c.ClientIP(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
