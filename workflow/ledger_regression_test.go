package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
	"bitbucket.org/mmdatafocus/stockroom_backend/models"
	"bitbucket.org/mmdatafocus/stockroom_backend/utils"
	"bitbucket.org/mmdatafocus/stockroom_backend/workflow"
)

// Full ledger round trips against real MySQL + redis in docker. These
// cover what the DB-free tests cannot: row locking, rollback atomicity and
// the reverse-then-reapply edit sequence.

func setupLedgerTest(t *testing.T) context.Context {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "stockroom_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	ctx := context.Background()
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUsernameInContext(ctx, "test@local")
	return ctx
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func mustCreateItem(t *testing.T, ctx context.Context, name string, unitsPerPack int, mrp string) *models.Item {
	t.Helper()
	mrpDec, _ := decimal.NewFromString(mrp)
	item, err := models.CreateItem(ctx, config.GetDB(), &models.NewItem{
		BrandNumber:  name,
		SizeCode:     "750",
		PackType:     "G",
		Name:         name,
		UnitsPerPack: unitsPerPack,
		Mrp:          mrpDec,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func mustCreatePurchase(t *testing.T, ctx context.Context, itemId int, qty int, unitCost string) *models.Purchase {
	t.Helper()
	cost, _ := decimal.NewFromString(unitCost)
	purchase, err := workflow.CreatePurchase(ctx, config.GetDB(), testLogger(), &models.NewPurchase{
		PurchaseDate: time.Now(),
		SupplierName: "Test Depot",
		Lines: []models.NewPurchaseLine{
			{ItemId: itemId, QtyUnits: qty, UnitCostPrice: &cost},
		},
	}, false)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	return purchase
}

func currentStock(t *testing.T, ctx context.Context, itemId int) int {
	t.Helper()
	item, err := models.GetItem(ctx, config.GetDB(), itemId)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	return item.CurrentStockUnits
}

func TestLedgerRoundTrips(t *testing.T) {
	ctx := setupLedgerTest(t)
	db := config.GetDB()
	logger := testLogger()

	t.Run("purchase increases stock and sets weighted average", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1001", 12, "150")
		mustCreatePurchase(t, ctx, item.ID, 10, "100")
		mustCreatePurchase(t, ctx, item.ID, 10, "200")

		if got := currentStock(t, ctx, item.ID); got != 20 {
			t.Errorf("stock = %d, want 20", got)
		}
		avg, err := models.ItemWeightedAvgCost(ctx, db, item.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got := avg.StringFixed(4); got != "150.0000" {
			t.Errorf("weighted avg = %s, want 150.0000", got)
		}
	})

	t.Run("day-end shortage rejects whole report atomically", func(t *testing.T) {
		rich := mustCreateItem(t, ctx, "B-1002", 12, "150")
		poor := mustCreateItem(t, ctx, "B-1003", 12, "150")
		mustCreatePurchase(t, ctx, rich.ID, 100, "100")
		mustCreatePurchase(t, ctx, poor.ID, 5, "100")

		_, err := workflow.CreateDayEndReport(ctx, db, logger, &models.NewDayEndReport{
			ReportDate: time.Now(),
			Lines: []models.NewDayEndLine{
				{ItemId: rich.ID, Channel: models.SalesChannelCounter, QtyUnits: 10},
				{ItemId: poor.ID, Channel: models.SalesChannelCounter, QtyUnits: 8},
			},
		})
		if !models.IsInsufficientStock(err) {
			t.Fatalf("want InsufficientStockError, got %v", err)
		}
		var stockErr *models.InsufficientStockError
		if errors.As(err, &stockErr) {
			if stockErr.Required != 8 || stockErr.Available != 5 {
				t.Errorf("shortage = {required:%d, available:%d}, want {8, 5}", stockErr.Required, stockErr.Available)
			}
		}

		// the first line must have been rolled back with the rest
		if got := currentStock(t, ctx, rich.ID); got != 100 {
			t.Errorf("rich item stock = %d, want untouched 100", got)
		}
	})

	t.Run("purchase edit with identical input is idempotent", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1004", 12, "150")
		purchase := mustCreatePurchase(t, ctx, item.ID, 50, "90")

		cost, _ := decimal.NewFromString("90")
		input := &models.NewPurchase{
			PurchaseDate: purchase.PurchaseDate,
			SupplierName: purchase.SupplierName,
			Lines: []models.NewPurchaseLine{
				{ItemId: item.ID, QtyUnits: 50, UnitCostPrice: &cost},
			},
		}
		for i := 0; i < 3; i++ {
			if _, err := workflow.UpdatePurchase(ctx, db, logger, purchase.ID, input, false); err != nil {
				t.Fatalf("update %d: %v", i, err)
			}
		}

		if got := currentStock(t, ctx, item.ID); got != 50 {
			t.Errorf("stock = %d after identical edits, want 50", got)
		}
	})

	t.Run("day-end edit reverses then reapplies", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1005", 12, "150")
		mustCreatePurchase(t, ctx, item.ID, 40, "80")

		report, err := workflow.CreateDayEndReport(ctx, db, logger, &models.NewDayEndReport{
			ReportDate: time.Now().AddDate(0, 0, 1),
			Lines: []models.NewDayEndLine{
				{ItemId: item.ID, Channel: models.SalesChannelCounter, QtyUnits: 30},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := currentStock(t, ctx, item.ID); got != 10 {
			t.Fatalf("stock = %d after sale, want 10", got)
		}

		// shrink the sale; the freed units must come back
		_, err = workflow.UpdateDayEndReport(ctx, db, logger, report.ID, &models.NewDayEndReport{
			ReportDate: report.ReportDate,
			Lines: []models.NewDayEndLine{
				{ItemId: item.ID, Channel: models.SalesChannelCounter, QtyUnits: 12},
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := currentStock(t, ctx, item.ID); got != 28 {
			t.Errorf("stock = %d after edit, want 28", got)
		}

		// growing the sale beyond on-hand plus the report's own units fails
		_, err = workflow.UpdateDayEndReport(ctx, db, logger, report.ID, &models.NewDayEndReport{
			ReportDate: report.ReportDate,
			Lines: []models.NewDayEndLine{
				{ItemId: item.ID, Channel: models.SalesChannelCounter, QtyUnits: 41},
			},
		})
		if !models.IsInsufficientStock(err) {
			t.Fatalf("want InsufficientStockError, got %v", err)
		}
		if got := currentStock(t, ctx, item.ID); got != 28 {
			t.Errorf("stock = %d after failed edit, want unchanged 28", got)
		}
	})

	t.Run("preview is edit-aware and read-only", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1006", 12, "150")
		mustCreatePurchase(t, ctx, item.ID, 20, "80")

		report, err := workflow.CreateDayEndReport(ctx, db, logger, &models.NewDayEndReport{
			ReportDate: time.Now().AddDate(0, 0, 2),
			Lines: []models.NewDayEndLine{
				{ItemId: item.ID, Channel: models.SalesChannelCounter, QtyUnits: 15},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		// on-hand is 5; a plain preview of 12 units is short
		input := &models.NewDayEndReport{
			ReportDate: report.ReportDate,
			Lines: []models.NewDayEndLine{
				{ItemId: item.ID, Channel: models.SalesChannelCounter, QtyUnits: 12},
			},
		}
		plain, err := models.PreviewDayEndReport(ctx, db, input, 0)
		if err != nil {
			t.Fatal(err)
		}
		if plain.CanCommit {
			t.Error("plain preview of 12 against 5 on hand should be short")
		}

		// as an edit of the 15-unit report the same lines fit comfortably
		editAware, err := models.PreviewDayEndReport(ctx, db, input, report.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !editAware.CanCommit {
			t.Errorf("edit-aware preview should fit, shortages: %+v", editAware.Shortages)
		}

		if got := currentStock(t, ctx, item.ID); got != 5 {
			t.Errorf("preview must not move stock, got %d want 5", got)
		}
	})

	t.Run("delete purchase reverses its deltas", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1007", 12, "150")
		purchase := mustCreatePurchase(t, ctx, item.ID, 60, "70")

		if _, err := workflow.DeletePurchase(ctx, db, logger, purchase.ID); err != nil {
			t.Fatal(err)
		}
		if got := currentStock(t, ctx, item.ID); got != 0 {
			t.Errorf("stock = %d after delete, want 0", got)
		}
	})

	t.Run("adjustment posts and is immutable by design", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1008", 12, "150")
		mustCreatePurchase(t, ctx, item.ID, 10, "50")

		_, err := workflow.CreateStockAdjustment(ctx, db, logger, &models.NewStockAdjustment{
			ItemId:         item.ID,
			DeltaUnits:     -3,
			Reason:         models.AdjustmentReasonBreakage,
			AdjustmentDate: time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := currentStock(t, ctx, item.ID); got != 7 {
			t.Errorf("stock = %d after breakage, want 7", got)
		}

		// over-draining is refused like any other negative delta
		_, err = workflow.CreateStockAdjustment(ctx, db, logger, &models.NewStockAdjustment{
			ItemId:         item.ID,
			DeltaUnits:     -100,
			Reason:         models.AdjustmentReasonLeakage,
			AdjustmentDate: time.Now(),
		})
		if !models.IsInsufficientStock(err) {
			t.Fatalf("want InsufficientStockError, got %v", err)
		}
	})

	t.Run("import batch refuses commit with unresolved rows", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1009", 12, "150")

		csvData := "brand_number,size_code,pack_type,name,cases,units_per_case,rate_per_case\n" +
			"B-1009,750,G,Known Brand,10,12,960\n" +
			"B-9999,750,G,Unknown Brand,5,12,600\n"
		result, err := workflow.ImportPurchaseFile(ctx, db, logger, "depot.csv",
			strings.NewReader(csvData), int64(len(csvData)), time.Now(), "Depot", false)
		if err != nil {
			t.Fatal(err)
		}
		if result.Accepted != 0 || len(result.RejectedRows) != 1 {
			t.Fatalf("result = %+v, want 0 accepted and 1 rejected", result)
		}
		if got := currentStock(t, ctx, item.ID); got != 0 {
			t.Errorf("stock = %d, refused batch must not post", got)
		}

		// with auto-creation the same file commits whole
		result, err = workflow.ImportPurchaseFile(ctx, db, logger, "depot.csv",
			strings.NewReader(csvData), int64(len(csvData)), time.Now(), "Depot", true)
		if err != nil {
			t.Fatal(err)
		}
		if result.Accepted != 2 {
			t.Fatalf("result = %+v, want 2 accepted", result)
		}
		if got := currentStock(t, ctx, item.ID); got != 120 {
			t.Errorf("stock = %d after commit, want 120", got)
		}
	})

	t.Run("stock summary is cached until a commit invalidates it", func(t *testing.T) {
		item := mustCreateItem(t, ctx, "B-1010", 12, "150")
		mustCreatePurchase(t, ctx, item.ID, 10, "100")

		summaryUnits := func() int {
			summary, err := models.GetStockSummary(ctx, db)
			if err != nil {
				t.Fatalf("stock summary: %v", err)
			}
			for _, row := range summary {
				if row.ItemId == item.ID {
					return row.CurrentStockUnits
				}
			}
			t.Fatalf("item %d missing from summary", item.ID)
			return 0
		}

		if got := summaryUnits(); got != 10 {
			t.Errorf("summary units = %d, want 10", got)
		}
		// second read must come from the redis copy
		if got := summaryUnits(); got != 10 {
			t.Errorf("cached summary units = %d, want 10", got)
		}

		// a committed purchase drops the key, so the next read is fresh
		mustCreatePurchase(t, ctx, item.ID, 5, "100")
		if got := summaryUnits(); got != 15 {
			t.Errorf("summary units after commit = %d, want 15", got)
		}
	})

	t.Run("login serves the cached user after the first hit", func(t *testing.T) {
		_, err := models.CreateUser(ctx, db, &models.NewUser{
			Username: "counter1",
			Name:     "Counter One",
			Password: "counter1-pw",
		})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}

		for i := 0; i < 2; i++ {
			info, err := models.Login(ctx, db, "counter1", "counter1-pw")
			if err != nil {
				t.Fatalf("login attempt %d: %v", i+1, err)
			}
			if info.Token == "" || info.Role != string(models.UserRoleStaff) {
				t.Errorf("login attempt %d: info = %+v", i+1, info)
			}
		}
		if _, err := models.Login(ctx, db, "counter1", "wrong-pw"); err == nil {
			t.Error("login with wrong password must fail")
		}
	})
}

/* docker plumbing */

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("stockroom-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("stockroom-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=stockroom_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
