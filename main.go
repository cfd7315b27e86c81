package main

import (
	"flag"
	"log"

	"quizbank_backend/internal/app"
	"quizbank_backend/internal/config"
)

// @title 题库测验系统 API
// @version 1.0
// @description 在线题库与测验系统后端服务，提供题目管理、答题判分、成绩排行、用户认证与图片上传功能
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	migrateOnly := flag.Bool("migrate-only", false, "仅执行数据库迁移后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)

	if cfg.MigrateOnly {
		log.Println("Migration completed, exiting")
		return
	}

	application.Run()
}
