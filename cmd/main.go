package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ToiletFinder-App/internal/domain/repository"
	"ToiletFinder-App/internal/domain/service"
	"ToiletFinder-App/internal/handler"
	"ToiletFinder-App/internal/infrastructure/database"
	fsinfra "ToiletFinder-App/internal/infrastructure/firestore"
	repoimpl "ToiletFinder-App/internal/repository"
	"ToiletFinder-App/internal/usecase"
)

const (
	postgresMaxRetries    = 3
	postgresRetryInterval = 2 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	ctx := context.Background()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("必要な環境変数: FIRESTORE_PROJECT_ID (または GOOGLE_CLOUD_PROJECT)")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal("Environment variables not set")
	}

	fmt.Println("Initializing Firestore client...")
	firestoreClient, err := fsinfra.NewFirestoreClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
	}
	defer firestoreClient.Close()

	// 履歴・状態・分析記録は常にFirestoreを使用する
	historyRepo := repoimpl.NewFirestoreHistoryRepository(firestoreClient.GetClient())
	statusRepo := repoimpl.NewFirestoreStatusRepository(firestoreClient.GetClient())
	maintenanceRepo := repoimpl.NewFirestoreMaintenanceRepository(firestoreClient.GetClient())
	analysisRepo := repoimpl.NewFirestoreAnalysisRepository(firestoreClient.GetClient())

	// カタログのバックエンドはTOILET_BACKENDで切り替え可能 (firestore | supabase | postgres)
	toiletsRepo, err := buildToiletsRepository(firestoreClient)
	if err != nil {
		log.Fatalf("カタログリポジトリ初期化失敗: %v", err)
	}

	predictionService := service.NewStatusPredictionService(statusRepo, maintenanceRepo)
	recommendationUseCase := usecase.NewRecommendationUseCase(toiletsRepo, historyRepo, analysisRepo)

	recommendationsHandler := handler.NewRecommendationsHandler(recommendationUseCase)
	toiletsHandler := handler.NewToiletsHandler(toiletsRepo, predictionService)

	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler)
		api.GET("/toilets/nearby", toiletsHandler.GetNearbyToilets)
		api.GET("/toilets/:id/similar", recommendationsHandler.GetSimilarToilets)
		api.GET("/toilets/:id/prediction", toiletsHandler.GetToiletPrediction)
		api.POST("/recommendations", recommendationsHandler.GetRecommendations)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("ToiletFinder-App server starting on :%s...\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("サーバー起動失敗: %v", err)
	}
}

// buildToiletsRepository TOILET_BACKEND環境変数に応じてカタログリポジトリを構築する
func buildToiletsRepository(firestoreClient *fsinfra.FirestoreClient) (repository.ToiletsRepository, error) {
	backend := os.Getenv("TOILET_BACKEND")

	switch backend {
	case "", "firestore":
		fmt.Println("✅ カタログバックエンド: Firestore")
		return repoimpl.NewFirestoreToiletsRepository(firestoreClient.GetClient()), nil

	case "supabase":
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			return nil, err
		}
		if err := supabaseClient.HealthCheck(); err != nil {
			return nil, err
		}
		fmt.Println("✅ カタログバックエンド: Supabase")
		return repoimpl.NewSupabaseToiletsRepository(supabaseClient), nil

	case "postgres":
		// Supabaseのコネクションプーラーは起動直後に接続を拒否することがあるためリトライする
		postgresClient, err := database.NewPostgreSQLClientWithRetry(postgresMaxRetries, postgresRetryInterval)
		if err != nil {
			return nil, err
		}
		if err := postgresClient.HealthCheck(); err != nil {
			return nil, err
		}
		fmt.Println("✅ カタログバックエンド: PostgreSQL")
		return repoimpl.NewPostgresToiletsRepository(postgresClient), nil

	default:
		return nil, fmt.Errorf("対応していないバックエンドです: %s", backend)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "service": "ToiletFinder-App"})
}
