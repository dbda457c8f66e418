package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
	"bitbucket.org/mmdatafocus/stockroom_backend/middlewares"
	"bitbucket.org/mmdatafocus/stockroom_backend/models"
	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
	"bitbucket.org/mmdatafocus/stockroom_backend/workflow"
)

const defaultPort = "8080"

var tracer = otel.Tracer("stockroom-backend")

// RateLimiter throttles per client IP through redis counters.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func getRedisClient(redisAddress string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: redisAddress,
	})
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) RateLimitMiddleware(c *gin.Context) {
	key := "rate:" + c.ClientIP()

	exists, err := rl.client.Exists(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if exists == 0 {
		if err := rl.client.Set(c.Request.Context(), key, 1, rl.window).Err(); err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		c.Next()
		return
	}

	count, err := rl.client.Incr(c.Request.Context(), key).Result()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	if count > rl.limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", int(rl.window.Seconds())),
		})
		return
	}

	c.Next()
}

/* error mapping */

// respondError translates the domain error taxonomy into HTTP statuses:
// validation 400, auth 401, not found 404, insufficient stock and
// unresolved catalog matches 409, everything else 500.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var stockErr *models.InsufficientStockError
	var catalogErr *models.UnresolvedCatalogMatchError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"item_id":   stockErr.ItemId,
			"item_name": stockErr.ItemName,
			"required":  stockErr.Required,
			"available": stockErr.Available,
		})
	case errors.As(err, &catalogErr):
		c.JSON(http.StatusConflict, gin.H{"error": catalogErr.Error(), "row_number": catalogErr.RowNumber})
	case utils.IsRecordNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return false
	}
	return true
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// authRequired rejects requests that carry no validated principal.
func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if middlewares.CtxValue(c.Request.Context()) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claim := middlewares.CtxValue(c.Request.Context())
		if claim == nil || claim.Role != string(models.UserRoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

/* auth */

func loginHandler() gin.HandlerFunc {
	type loginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	return func(c *gin.Context) {
		var req loginRequest
		if !bindJSON(c, &req) {
			return
		}
		info, err := models.Login(c.Request.Context(), config.GetDB(), req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if !bindJSON(c, &input) {
			return
		}
		user, err := models.CreateUser(c.Request.Context(), config.GetDB(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func changePasswordHandler() gin.HandlerFunc {
	type changePasswordRequest struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	return func(c *gin.Context) {
		var req changePasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := models.ChangePassword(c.Request.Context(), config.GetDB(), req.OldPassword, req.NewPassword)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	}
}

/* items */

func listItemsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var name *string
		if q := c.Query("q"); q != "" {
			name = &q
		}
		includeArchived := strings.EqualFold(c.Query("include_archived"), "true")
		items, err := models.GetItems(c.Request.Context(), config.GetDB(), name, includeArchived)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func getItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		valuation, err := models.GetItemValuation(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, valuation)
	}
}

func createItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewItem
		if !bindJSON(c, &input) {
			return
		}
		item, err := models.CreateItem(c.Request.Context(), config.GetDB(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		models.InvalidateStockSummaryCache()
		c.JSON(http.StatusCreated, item)
	}
}

func updateItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewItem
		if !bindJSON(c, &input) {
			return
		}
		item, err := models.UpdateItem(c.Request.Context(), config.GetDB(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		models.InvalidateStockSummaryCache()
		c.JSON(http.StatusOK, item)
	}
}

func archiveItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		item, err := models.ArchiveItem(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		models.InvalidateStockSummaryCache()
		c.JSON(http.StatusOK, item)
	}
}

func restoreItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		item, err := models.RestoreItem(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		models.InvalidateStockSummaryCache()
		c.JSON(http.StatusOK, item)
	}
}

func priceHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		history, err := models.GetPriceHistory(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

/* purchases */

func allowItemCreation(c *gin.Context) bool {
	return strings.EqualFold(c.Query("allow_item_creation"), "true")
}

func listPurchasesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		purchases, err := workflow.GetPurchases(c.Request.Context(), config.GetDB())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, purchases)
	}
}

func getPurchaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		purchase, err := workflow.GetPurchase(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, purchase)
	}
}

func createPurchaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPurchase
		if !bindJSON(c, &input) {
			return
		}
		purchase, err := workflow.CreatePurchase(c.Request.Context(), config.GetDB(), config.GetLogger(), &input, allowItemCreation(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, purchase)
	}
}

func updatePurchaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewPurchase
		if !bindJSON(c, &input) {
			return
		}
		purchase, err := workflow.UpdatePurchase(c.Request.Context(), config.GetDB(), config.GetLogger(), id, &input, allowItemCreation(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, purchase)
	}
}

func deletePurchaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		purchase, err := workflow.DeletePurchase(c.Request.Context(), config.GetDB(), config.GetLogger(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, purchase)
	}
}

/* day-end reports */

func listDayEndReportsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := workflow.GetDayEndReports(c.Request.Context(), config.GetDB())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

func getDayEndReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		report, err := workflow.GetDayEndReport(c.Request.Context(), config.GetDB(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func createDayEndReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewDayEndReport
		if !bindJSON(c, &input) {
			return
		}
		report, err := workflow.CreateDayEndReport(c.Request.Context(), config.GetDB(), config.GetLogger(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, report)
	}
}

func updateDayEndReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		var input models.NewDayEndReport
		if !bindJSON(c, &input) {
			return
		}
		report, err := workflow.UpdateDayEndReport(c.Request.Context(), config.GetDB(), config.GetLogger(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func deleteDayEndReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c)
		if !ok {
			return
		}
		report, err := workflow.DeleteDayEndReport(c.Request.Context(), config.GetDB(), config.GetLogger(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func previewDayEndReportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewDayEndReport
		if !bindJSON(c, &input) {
			return
		}
		editingReportId := 0
		if v := c.Query("editing_report_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid editing_report_id"})
				return
			}
			editingReportId = id
		}
		preview, err := models.PreviewDayEndReport(c.Request.Context(), config.GetDB(), &input, editingReportId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, preview)
	}
}

/* adjustments */

func listAdjustmentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var itemId *int
		if v := c.Query("item_id"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
				return
			}
			itemId = &id
		}
		adjustments, err := models.GetStockAdjustments(c.Request.Context(), config.GetDB(), itemId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, adjustments)
	}
}

func createAdjustmentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewStockAdjustment
		if !bindJSON(c, &input) {
			return
		}
		adjustment, err := workflow.CreateStockAdjustment(c.Request.Context(), config.GetDB(), config.GetLogger(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, adjustment)
	}
}

/* imports */

func importPurchasesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "importPurchases")
		defer span.End()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > config.ImportMaxBytes() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the import size limit"})
			return
		}

		purchaseDate := time.Now()
		if v := c.PostForm("purchase_date"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_date must be YYYY-MM-DD"})
				return
			}
			purchaseDate = parsed
		}
		supplier := c.PostForm("supplier")
		allowCreation := strings.EqualFold(c.PostForm("allow_item_creation"), "true")

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()

		result, err := workflow.ImportPurchaseFile(ctx, config.GetDB(), config.GetLogger(),
			fileHeader.Filename, file, fileHeader.Size, purchaseDate, supplier, allowCreation)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(result.RejectedRows) > 0 {
			c.JSON(http.StatusUnprocessableEntity, result)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

/* stock views */

func stockSummaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := models.GetStockSummary(c.Request.Context(), config.GetDB())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func reorderListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		low, err := models.GetReorderList(c.Request.Context(), config.GetDB())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, low)
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func registerRoutes(r *gin.Engine) {
	r.POST("/login", loginHandler())

	api := r.Group("/api", authRequired())
	{
		api.GET("/items", listItemsHandler())
		api.POST("/items", createItemHandler())
		api.GET("/items/:id", getItemHandler())
		api.PUT("/items/:id", updateItemHandler())
		api.DELETE("/items/:id", archiveItemHandler())
		api.POST("/items/:id/restore", restoreItemHandler())
		api.GET("/items/:id/price-history", priceHistoryHandler())

		api.GET("/purchases", listPurchasesHandler())
		api.POST("/purchases", createPurchaseHandler())
		api.GET("/purchases/:id", getPurchaseHandler())
		api.PUT("/purchases/:id", updatePurchaseHandler())
		api.DELETE("/purchases/:id", deletePurchaseHandler())

		api.GET("/day-end-reports", listDayEndReportsHandler())
		api.POST("/day-end-reports", createDayEndReportHandler())
		api.POST("/day-end-reports/preview", previewDayEndReportHandler())
		api.GET("/day-end-reports/:id", getDayEndReportHandler())
		api.PUT("/day-end-reports/:id", updateDayEndReportHandler())
		api.DELETE("/day-end-reports/:id", deleteDayEndReportHandler())

		api.GET("/adjustments", listAdjustmentsHandler())
		api.POST("/adjustments", createAdjustmentHandler())

		api.POST("/imports/purchases", importPurchasesHandler())

		api.GET("/stock-summary", stockSummaryHandler())
		api.GET("/stock-summary/reorder", reorderListHandler())

		api.POST("/change-password", changePasswordHandler())

		admin := api.Group("", adminRequired())
		admin.POST("/users", createUserHandler())
	}
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// SIGTERM is the orchestrator's shutdown signal; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the deployment is considered healthy.
	// Until DB/Redis are ready, app endpoints return 503.
	r := gin.New()
	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil || config.GetRedisDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production requires an explicit allowlist via CORS_ALLOWED_ORIGINS.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Optional rate limiting.
	// Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		client := getRedisClient(os.Getenv("REDIS_ADDRESS"))
		limit := int64(600)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		windowSec := int64(60)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				windowSec = n
			}
		}
		rateLimiter := NewRateLimiter(client, limit, time.Duration(windowSec)*time.Second)
		r.Use(rateLimiter.RateLimitMiddleware)
	}

	r.Use(middlewares.AuthMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())
	registerRoutes(r)
	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port)
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
