// 手动批量导入题目脚本
//
// 批量导入也可以通过 POST /api/quiz/batch 接口完成。
// 此脚本用于首次部署或离线大批量灌入题库，绕过HTTP层直接写库。
//
// 用法: go run scripts/import_questions.go -file questions.json -admin 1

package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"quizbank_backend/internal/config"
	"quizbank_backend/internal/model"
	"quizbank_backend/internal/repository"
	"quizbank_backend/internal/service"
	"quizbank_backend/pkg/database"
	"quizbank_backend/pkg/logger"
)

func main() {
	file := flag.String("file", "questions.json", "题目JSON文件路径")
	adminID := flag.Uint("admin", 1, "导入人用户ID")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取题目文件: %v", err)
	}

	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		log.Fatalf("解析题目文件失败: %v", err)
	}

	quizService := service.NewQuizService(
		repository.NewQuestionRepository(db),
		repository.NewScoreRepository(db),
		nil,
	)

	count, err := quizService.ImportQuestions(questions, *adminID)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	log.Printf("成功导入 %d 道题目", count)
}
