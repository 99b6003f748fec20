// 手动触发问题顺序修复脚本
//
// 正常运行时删除与移动都会在事务内保持 1..N 连续，本脚本仅用于
// 历史数据导入或人工改库之后的兜底检查。
//
// 用法: go run scripts/compact_orders.go

package main

import (
	"log"

	"survey_backend/internal/config"
	"survey_backend/internal/model"
	"survey_backend/pkg/database"
	"survey_backend/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var surveys []model.Survey
	if err := db.Find(&surveys).Error; err != nil {
		log.Fatalf("读取问卷失败: %v", err)
	}

	repaired := 0
	for _, survey := range surveys {
		changed, err := compactSurvey(db, survey.ID)
		if err != nil {
			log.Fatalf("问卷 %s 修复失败: %v", survey.ID, err)
		}
		if changed {
			repaired++
			log.Printf("问卷 %s 顺序已重排", survey.ID)
		}
	}
	log.Printf("检查 %d 份问卷，修复 %d 份", len(surveys), repaired)
}

// compactSurvey 把问卷的问题按现有顺序重新编号为 1..N
func compactSurvey(db *gorm.DB, surveyID string) (bool, error) {
	changed := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var questions []model.Question
		if err := tx.
			Where("item_id IN (?)", tx.Model(&model.Item{}).Select("id").Where("survey_id = ?", surveyID)).
			Order("`order` asc").Find(&questions).Error; err != nil {
			return err
		}
		for i, q := range questions {
			want := i + 1
			if q.Order == want {
				continue
			}
			changed = true
			if err := tx.Model(&model.Question{}).Where("id = ?", q.ID).
				UpdateColumn("order", want).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return changed, err
}
