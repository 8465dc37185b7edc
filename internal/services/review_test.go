package services

import (
	"errors"
	"testing"

	"github.com/Georges999/Car-Parts-Marketplace/internal/db"
	"github.com/Georges999/Car-Parts-Marketplace/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 用内存 SQLite 替换全局连接，用例结束后还原
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库：多连接会各自打开一个空库，必须限制为单连接
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Part{},
		&models.CompatibilityRule{},
		&models.Review{},
		&models.ReviewHelpfulVote{},
		&models.SavedPart{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	old := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = old })
	return gdb
}

func seedUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Name: "Tester", Email: email, Password: "hash"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedPart(t *testing.T, sellerID uint, partNumber string) models.Part {
	t.Helper()
	part := models.Part{
		SellerID:   sellerID,
		Name:       "Brake Pad Set",
		Category:   "Brakes",
		Brand:      "Brembo",
		PartNumber: partNumber,
		Price:      89.99,
	}
	if err := db.DB.Create(&part).Error; err != nil {
		t.Fatalf("seed part: %v", err)
	}
	return part
}

func TestAddReviewDuplicate(t *testing.T) {
	setupTestDB(t)
	seller := seedUser(t, "seller@example.com")
	buyer := seedUser(t, "buyer@example.com")
	part := seedPart(t, seller.ID, "BP-1001")

	in := ReviewInput{Rating: 5, Title: "Great pads", Comment: "Quiet and strong."}
	if _, err := AddReview(buyer.ID, part.ID, in); err != nil {
		t.Fatalf("first review: %v", err)
	}

	// 同一用户对同一配件的第二条评论必须被唯一索引挡下
	if _, err := AddReview(buyer.ID, part.ID, in); !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("second review err = %v, want ErrDuplicateReview", err)
	}

	var count int64
	if err := db.DB.Model(&models.Review{}).Where("part_id = ?", part.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("review count = %d, want 1", count)
	}

	// 其他用户不受影响
	if _, err := AddReview(seller.ID, part.ID, in); err != nil {
		t.Fatalf("other user review: %v", err)
	}
}

func TestAddReviewVerifiedOwnVehicle(t *testing.T) {
	setupTestDB(t)
	seller := seedUser(t, "seller@example.com")
	buyer := seedUser(t, "buyer@example.com")
	part := seedPart(t, seller.ID, "BP-1001")

	vehicle := models.Vehicle{UserID: buyer.ID, Make: "Toyota", Model: "Camry", Year: 2020}
	if err := db.DB.Create(&vehicle).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	review, err := AddReview(buyer.ID, part.ID, ReviewInput{
		Rating: 4, Title: "Fits well", Comment: "Direct bolt-on.", VehicleID: &vehicle.ID,
	})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}
	if !review.Verified {
		t.Fatal("review with own vehicle should be verified")
	}

	// 引用别人的车辆不行
	_, err = AddReview(seller.ID, part.ID, ReviewInput{
		Rating: 4, Title: "t", Comment: "c", VehicleID: &vehicle.ID,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign vehicle err = %v, want ErrForbidden", err)
	}
}

func TestToggleHelpfulRoundTrip(t *testing.T) {
	setupTestDB(t)
	seller := seedUser(t, "seller@example.com")
	buyer := seedUser(t, "buyer@example.com")
	voter := seedUser(t, "voter@example.com")
	part := seedPart(t, seller.ID, "BP-1001")

	review, err := AddReview(buyer.ID, part.ID, ReviewInput{Rating: 5, Title: "t", Comment: "c"})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}

	count, marked, err := ToggleHelpful(voter.ID, review.ID)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !marked || count != 1 {
		t.Fatalf("mark = (%d, %v), want (1, true)", count, marked)
	}

	// 取消后回到原值
	count, marked, err = ToggleHelpful(voter.ID, review.ID)
	if err != nil {
		t.Fatalf("unmark: %v", err)
	}
	if marked || count != 0 {
		t.Fatalf("unmark = (%d, %v), want (0, false)", count, marked)
	}

	// 派生列跟着票数走
	var stored models.Review
	if err := db.DB.First(&stored, review.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.HelpfulCount != 0 {
		t.Fatalf("helpful_count = %d, want 0", stored.HelpfulCount)
	}
}

func TestListReviewsFillsHelpful(t *testing.T) {
	setupTestDB(t)
	seller := seedUser(t, "seller@example.com")
	buyer := seedUser(t, "buyer@example.com")
	voter := seedUser(t, "voter@example.com")
	part := seedPart(t, seller.ID, "BP-1001")

	review, err := AddReview(buyer.ID, part.ID, ReviewInput{Rating: 5, Title: "t", Comment: "c"})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}
	if _, _, err := ToggleHelpful(voter.ID, review.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, _, err := ToggleHelpful(buyer.ID, review.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	reviews, err := ListReviews(part.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("len = %d, want 1", len(reviews))
	}
	helpful := reviews[0].Helpful
	if helpful.Count != 2 || len(helpful.Users) != 2 {
		t.Fatalf("helpful = %+v, want count 2 with 2 users", helpful)
	}
}

func TestUpdateReviewStorageError(t *testing.T) {
	setupTestDB(t)
	seller := seedUser(t, "seller@example.com")
	buyer := seedUser(t, "buyer@example.com")
	part := seedPart(t, seller.ID, "BP-1001")

	review, err := AddReview(buyer.ID, part.ID, ReviewInput{Rating: 5, Title: "t", Comment: "c"})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}

	// 票表查询失败时必须报错，而不是带着空聚合返回
	if err := db.DB.Exec("DROP TABLE review_helpful_votes").Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if _, err := UpdateReview(buyer.ID, review.ID, ReviewInput{Rating: 4, Title: "t2", Comment: "c2"}); err == nil {
		t.Fatal("update with broken vote table should fail")
	}
}
