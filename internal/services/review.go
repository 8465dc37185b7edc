package services

import (
	"errors"

	"github.com/Georges999/Car-Parts-Marketplace/internal/db"
	"github.com/Georges999/Car-Parts-Marketplace/internal/models"
	"github.com/Georges999/Car-Parts-Marketplace/internal/utils"

	"gorm.io/gorm"
)

// ReviewInput 新增/更新评论的入参，正文入库前净化
type ReviewInput struct {
	Rating    int
	Title     string
	Comment   string
	VehicleID *uint
}

// AddReview 为配件创建评论。
// 每个用户对每个配件至多一条，由 (user_id, part_id) 唯一索引兜底：
// 并发提交时数据库约束会把第二条写入变成 ErrDuplicateReview。
func AddReview(userID, partID uint, in ReviewInput) (*models.Review, error) {
	// 先确认配件存在
	var part models.Part
	if err := db.DB.First(&part, partID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	review := models.Review{
		UserID:  userID,
		PartID:  partID,
		Rating:  in.Rating,
		Title:   utils.SanitizeText(in.Title),
		Comment: utils.SanitizeText(in.Comment),
	}

	// 关联了作者本人的车辆时标记为已验证车主
	if in.VehicleID != nil {
		var vehicle models.Vehicle
		if err := db.DB.First(&vehicle, *in.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("vehicleId", "vehicle not found")
			}
			return nil, err
		}
		if vehicle.UserID != userID {
			return nil, ErrForbidden
		}
		review.VehicleID = in.VehicleID
		review.Verified = true
	}

	if err := db.DB.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	if err := db.DB.Preload("User").First(&review, review.ID).Error; err != nil {
		return nil, err
	}
	review.Helpful = models.HelpfulInfo{Count: 0, Users: []uint{}}
	return &review, nil
}

// UpdateReview 仅作者本人可修改
func UpdateReview(userID, reviewID uint, in ReviewInput) (*models.Review, error) {
	var review models.Review
	if err := db.DB.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if review.UserID != userID {
		return nil, ErrForbidden
	}

	review.Rating = in.Rating
	review.Title = utils.SanitizeText(in.Title)
	review.Comment = utils.SanitizeText(in.Comment)

	if err := db.DB.Save(&review).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Preload("User").First(&review, review.ID).Error; err != nil {
		return nil, err
	}
	if err := FillHelpful(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview 仅作者本人可删除
func DeleteReview(userID, reviewID uint) error {
	var review models.Review
	if err := db.DB.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if review.UserID != userID {
		return ErrForbidden
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		// 先清掉有用票再删评论
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewHelpfulVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&review).Error
	})
}

// ToggleHelpful 有用票开关：已投则撤销，未投则投上。
// 返回新的票数和本次是标记(true)还是取消(false)。
// 票表的唯一索引保证同一用户并发 toggle 不会重复计票，
// 票数在同一事务内按 COUNT 重算，永远等于去重后的用户数。
func ToggleHelpful(userID, reviewID uint) (count int64, marked bool, err error) {
	var review models.Review
	if err := db.DB.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, ErrNotFound
		}
		return 0, false, err
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).
			Delete(&models.ReviewHelpfulVote{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// 尚未投票，投上一票
			vote := models.ReviewHelpfulVote{ReviewID: reviewID, UserID: userID}
			if err := tx.Create(&vote).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// 并发下另一请求刚投完同一票，视为已标记
					marked = true
					return nil
				}
				return err
			}
			marked = true
		} else {
			marked = false
		}

		// 派生值：按 COUNT 重算，不允许独立设置
		if err := tx.Model(&models.ReviewHelpfulVote{}).
			Where("review_id = ?", reviewID).
			Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("helpful_count", count).Error
	})
	if err != nil {
		return 0, false, err
	}

	return count, marked, nil
}

// ListReviews 某配件的全部评论，按创建时间倒序
func ListReviews(partID uint) ([]models.Review, error) {
	var part models.Part
	if err := db.DB.First(&part, partID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var reviews []models.Review
	err := db.DB.Preload("User").Preload("Vehicle").
		Where("part_id = ?", partID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	if err := fillHelpfulCounts(reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// FillHelpful 填充单条评论的有用票聚合
func FillHelpful(review *models.Review) error {
	users := []uint{}
	err := db.DB.Model(&models.ReviewHelpfulVote{}).
		Where("review_id = ?", review.ID).
		Order("id ASC").
		Pluck("user_id", &users).Error
	if err != nil {
		return err
	}
	review.Helpful = models.HelpfulInfo{Count: len(users), Users: users}
	return nil
}

// fillHelpfulCounts 批量填充评论列表的有用票聚合
func fillHelpfulCounts(reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	reviewIDs := make([]uint, len(reviews))
	for i, r := range reviews {
		reviewIDs[i] = r.ID
	}

	var votes []models.ReviewHelpfulVote
	if err := db.DB.Where("review_id IN ?", reviewIDs).Order("id ASC").Find(&votes).Error; err != nil {
		return err
	}

	usersByReview := make(map[uint][]uint)
	for _, v := range votes {
		usersByReview[v.ReviewID] = append(usersByReview[v.ReviewID], v.UserID)
	}

	for i := range reviews {
		users := usersByReview[reviews[i].ID]
		if users == nil {
			users = []uint{}
		}
		reviews[i].Helpful = models.HelpfulInfo{Count: len(users), Users: users}
	}
	return nil
}
