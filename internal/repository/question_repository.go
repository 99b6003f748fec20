package repository

import (
	"survey_backend/internal/model"
	"survey_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository 维护问卷内问题的稠密全序：
// 任意时刻（事务之间）问卷的 N 个问题恰好占用 {1..N}，无空洞无重复。
// 所有的移位都是同事务内的单条 UPDATE ... WHERE `order` 范围语句，
// 不做取出-循环-保存，避免并发下的丢失更新。
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

// surveyItems 子查询：问卷下全部条目ID
func surveyItems(tx *gorm.DB, surveyID string) *gorm.DB {
	return tx.Model(&model.Item{}).Select("id").Where("survey_id = ?", surveyID)
}

// lockSurvey 对问卷行加排它锁，序列化同一问卷上的并发顺序变更。
// sqlite（测试用）不支持 FOR UPDATE，本身写入即串行。
func lockSurvey(tx *gorm.DB, surveyID string) error {
	if tx.Dialector.Name() != "mysql" {
		return nil
	}
	var s model.Survey
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").First(&s, "id = ?", surveyID).Error
}

// MaxOrder 问卷内当前最大 order，空问卷为 0
func (r *QuestionRepository) MaxOrder(tx *gorm.DB, surveyID string) (int, error) {
	var max *int
	err := tx.Model(&model.Question{}).
		Where("item_id IN (?)", surveyItems(tx, surveyID)).
		Select("MAX(`order`)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

// AppendBatch 把新问题追加到问卷末尾（max+1 起），纯追加无需移位。
// 同一条目内先插入者获得更小的 order。
func (r *QuestionRepository) AppendBatch(tx *gorm.DB, surveyID, itemID string, values []string) ([]model.Question, error) {
	if err := lockSurvey(tx, surveyID); err != nil {
		return nil, err
	}
	max, err := r.MaxOrder(tx, surveyID)
	if err != nil {
		return nil, err
	}
	questions := make([]model.Question, len(values))
	for i, v := range values {
		questions[i] = model.Question{ItemID: itemID, Order: max + 1 + i, Value: v}
	}
	if len(questions) == 0 {
		return questions, nil
	}
	if err := tx.Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// DeleteAndCompact 删除问题并把其后的所有 order 左移一位，恢复稠密性。
// 删除与移位在同一事务内，外部读不到带空洞的序列。
func (r *QuestionRepository) DeleteAndCompact(surveyID string, question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockSurvey(tx, surveyID); err != nil {
			return err
		}
		if err := refreshOrder(tx, question); err != nil {
			return err
		}
		if err := tx.Delete(question).Error; err != nil {
			return err
		}
		return tx.Model(&model.Question{}).
			Where("`order` > ? AND item_id IN (?)", question.Order, surveyItems(tx, surveyID)).
			UpdateColumn("order", gorm.Expr("`order` - 1")).Error
	})
}

// itemOrderBounds 条目自身问题占用的 order 区间 [min, max]
func itemOrderBounds(tx *gorm.DB, itemID string) (int, int, error) {
	var bounds struct {
		Min *int
		Max *int
	}
	err := tx.Model(&model.Question{}).
		Where("item_id = ?", itemID).
		Select("MIN(`order`) AS min, MAX(`order`) AS max").
		Scan(&bounds).Error
	if err != nil {
		return 0, 0, err
	}
	if bounds.Min == nil || bounds.Max == nil {
		return 0, 0, gorm.ErrRecordNotFound
	}
	return *bounds.Min, *bounds.Max, nil
}

// refreshOrder 锁内重读当前 order：调用方持有的快照可能已被并发移位改过
func refreshOrder(tx *gorm.DB, question *model.Question) error {
	var current model.Question
	if err := tx.Select("`order`").First(&current, "id = ?", question.ID).Error; err != nil {
		return err
	}
	question.Order = current.Order
	return nil
}

// Reorder 把问题移动到 newOrder，介于旧位置与新位置之间的问题整体移一位。
// 目标必须为正且落在问题所属条目自己的区间内；校验失败时原 order 保持不变。
// 移动到原位置是 no-op。
func (r *QuestionRepository) Reorder(surveyID string, question *model.Question, newOrder int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockSurvey(tx, surveyID); err != nil {
			return err
		}
		if err := refreshOrder(tx, question); err != nil {
			return err
		}
		if newOrder == question.Order {
			return nil
		}

		min, max, err := itemOrderBounds(tx, question.ItemID)
		if err != nil {
			return err
		}
		if newOrder < 1 || newOrder < min || newOrder > max {
			return util.ErrOrderOutOfRange
		}

		if newOrder < question.Order {
			// 后移让位：[new, old) 整体 +1
			err = tx.Model(&model.Question{}).
				Where("`order` >= ? AND `order` < ? AND item_id IN (?)",
					newOrder, question.Order, surveyItems(tx, surveyID)).
				UpdateColumn("order", gorm.Expr("`order` + 1")).Error
		} else {
			// 前移补位：(old, new] 整体 -1
			err = tx.Model(&model.Question{}).
				Where("`order` > ? AND `order` <= ? AND item_id IN (?)",
					question.Order, newOrder, surveyItems(tx, surveyID)).
				UpdateColumn("order", gorm.Expr("`order` - 1")).Error
		}
		if err != nil {
			return err
		}

		question.Order = newOrder
		return tx.Model(question).UpdateColumn("order", newOrder).Error
	})
}

func (r *QuestionRepository) UpdateValue(question *model.Question, value string) error {
	question.Value = value
	return r.DB.Model(question).Update("value", value).Error
}

// ListBySurvey 按 order 升序返回问卷全部问题
func (r *QuestionRepository) ListBySurvey(surveyID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("item_id IN (?)", surveyItems(r.DB, surveyID)).
		Order("`order` asc").Find(&qs).Error
	return qs, err
}

// FirstOfItem 条目的第一个问题（order 最小），条目位置由它推导
func (r *QuestionRepository) FirstOfItem(itemID string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("item_id = ?", itemID).Order("`order` asc").First(&q).Error
	return &q, err
}

// SurveyIDOf 问题所属的问卷ID（经由条目）
func (r *QuestionRepository) SurveyIDOf(question *model.Question) (string, error) {
	var item model.Item
	err := r.DB.Select("survey_id").First(&item, "id = ?", question.ItemID).Error
	return item.SurveyID, err
}
