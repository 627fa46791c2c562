package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// defaultCredentialsFile GOOGLE_APPLICATION_CREDENTIALS未設定時のローカル用鍵ファイル
const defaultCredentialsFile = "toiletfinder-firestore-key.json"

// FirestoreClient Firestore接続を保持するクライアント
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient 実行環境に応じた認証方法でFirestoreクライアントを作成する。
// Cloud Run上ではデフォルト認証、ローカルでは鍵ファイルを使う
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	// K_SERVICEはCloud Runが自動設定する
	if os.Getenv("K_SERVICE") != "" || os.Getenv("PORT") != "" {
		log.Printf("☁️ Cloud Run環境を検出: デフォルト認証で接続")
		client, err := firestore.NewClient(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("Firestoreクライアントの作成に失敗 (デフォルト認証): %w", err)
		}
		log.Printf("✅ Firestore接続完了 (project: %s)", projectID)
		return &FirestoreClient{client: client}, nil
	}

	credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsFile == "" {
		credentialsFile = defaultCredentialsFile
	}

	var opts []option.ClientOption
	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("⚠️ 鍵ファイルが見つかりません (%s): デフォルト認証を試します", credentialsFile)
	} else {
		log.Printf("📄 鍵ファイルを使用: %s", credentialsFile)
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗: %w", err)
	}

	log.Printf("✅ Firestore接続完了 (project: %s)", projectID)
	return &FirestoreClient{client: client}, nil
}

// Close Firestore接続を閉じる
func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

// GetClient 内部のfirestore.Clientを返す
func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
