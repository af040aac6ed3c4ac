// @title 学生身心健康分析仪表盘 API
// @version 1.0
// @description 基于学生身心健康数据集的交互式分析仪表盘服务。

// @contact.name API支持

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8050
// @BasePath /api

package main

import (
	"flag"
	"log"
	"wellbeing_dashboard/internal/app"
	"wellbeing_dashboard/internal/config"
	"wellbeing_dashboard/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	flag.Parse()

	// .env 可选，不存在时使用进程环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
