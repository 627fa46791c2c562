package model

import "time"

// AlertSeverity メンテナンス警告の深刻度
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// StatusSnapshot トイレの状態の履歴スナップショット
type StatusSnapshot struct {
	ToiletID    string    `json:"toiletId"`
	Status      string    `json:"status"`
	Busyness    float64   `json:"busyness"`
	Cleanliness float64   `json:"cleanliness"`
	Timestamp   time.Time `json:"timestamp"`
}

// MaintenanceReport ユーザーから報告されたメンテナンス課題
type MaintenanceReport struct {
	ToiletID  string    `json:"toiletId"`
	Issue     string    `json:"issue"`
	Severity  string    `json:"severity"` // low | medium | high
	Status    string    `json:"status"`   // pending | resolved
	Timestamp time.Time `json:"timestamp"`
}

// MaintenanceAlert 予測サービスが生成するメンテナンス警告
type MaintenanceAlert struct {
	Type      string    `json:"type"` // cleanliness | maintenance
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ToiletPrediction トイレの状態予測結果
type ToiletPrediction struct {
	ToiletID         string             `json:"toiletId"`
	PredictedStatus  string             `json:"predictedStatus"` // available | busy | maintenance
	Busyness         float64            `json:"busyness"`
	MaintenanceNeeds []MaintenanceAlert `json:"maintenanceNeeds"`
	Confidence       float64            `json:"confidence"`
	Timestamp        time.Time          `json:"timestamp"`
}
