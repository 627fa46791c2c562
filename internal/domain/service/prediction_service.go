package service

import (
	"context"
	"fmt"
	"time"

	"ToiletFinder-App/internal/domain/model"
	"ToiletFinder-App/internal/domain/repository"
)

const (
	statusHistoryLimit      = 100
	maintenanceReportsLimit = 50
	busyThreshold           = 0.7
	urgentCleanlinessLevel  = 0.3
	lowCleanlinessLevel     = 0.6
	recentDataWindow        = 7 * 24 * time.Hour
)

// StatusPredictionService は状態履歴とメンテナンス報告からトイレの現在状態を予測する
type StatusPredictionService struct {
	statusRepo  repository.StatusHistoryRepository
	reportsRepo repository.MaintenanceReportsRepository
	now         func() time.Time
}

// NewStatusPredictionService は新しいStatusPredictionServiceインスタンスを作成する
func NewStatusPredictionService(statusRepo repository.StatusHistoryRepository, reportsRepo repository.MaintenanceReportsRepository) *StatusPredictionService {
	return &StatusPredictionService{
		statusRepo:  statusRepo,
		reportsRepo: reportsRepo,
		now:         time.Now,
	}
}

// PredictStatus は指定トイレの状態を予測する
func (s *StatusPredictionService) PredictStatus(ctx context.Context, toiletID string) (*model.ToiletPrediction, error) {
	snapshots, err := s.statusRepo.GetRecentByToilet(ctx, toiletID, statusHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("状態履歴の取得に失敗: %w", err)
	}

	reports, err := s.reportsRepo.GetRecentByToilet(ctx, toiletID, maintenanceReportsLimit)
	if err != nil {
		return nil, fmt.Errorf("メンテナンス報告の取得に失敗: %w", err)
	}

	now := s.now()
	busyness := s.predictBusyness(snapshots, now)
	alerts := s.generateMaintenanceAlerts(snapshots, reports, now)

	return &model.ToiletPrediction{
		ToiletID:         toiletID,
		PredictedStatus:  determineStatus(busyness, alerts),
		Busyness:         busyness,
		MaintenanceNeeds: alerts,
		Confidence:       s.calculateConfidence(snapshots, now),
		Timestamp:        now,
	}, nil
}

// predictBusyness は同じ曜日・同じ時間帯のスナップショットを時間減衰の重み付き平均する。
// 該当データがない場合は0.5を返す
func (s *StatusPredictionService) predictBusyness(snapshots []model.StatusSnapshot, now time.Time) float64 {
	var relevant []model.StatusSnapshot
	for _, snap := range snapshots {
		if snap.Timestamp.Hour() == now.Hour() && snap.Timestamp.Weekday() == now.Weekday() {
			relevant = append(relevant, snap)
		}
	}
	if len(relevant) == 0 {
		return 0.5
	}

	var totalWeight, weightedSum float64
	for _, snap := range relevant {
		age := now.Sub(snap.Timestamp).Seconds()
		if age < 0 {
			age = -age
		}
		weight := 1 / (age + 1)
		totalWeight += weight
		weightedSum += snap.Busyness * weight
	}

	return weightedSum / totalWeight
}

// calculateConfidence は直近7日間のデータ量と鮮度から予測の信頼度を算出する
func (s *StatusPredictionService) calculateConfidence(snapshots []model.StatusSnapshot, now time.Time) float64 {
	if len(snapshots) == 0 {
		return 0.5
	}

	var recent []model.StatusSnapshot
	for _, snap := range snapshots {
		if now.Sub(snap.Timestamp) < recentDataWindow {
			recent = append(recent, snap)
		}
	}
	if len(recent) == 0 {
		return 0.5
	}

	dataConfidence := float64(len(recent)) / float64(statusHistoryLimit)
	if dataConfidence > 1 {
		dataConfidence = 1
	}

	// 最新データが古いほど信頼度は下がる
	timeConfidence := 1 - now.Sub(recent[0].Timestamp).Seconds()/recentDataWindow.Seconds()

	return (dataConfidence + timeConfidence) / 2
}

// generateMaintenanceAlerts は清潔度の低下と未対応のメンテナンス報告から警告を生成する
func (s *StatusPredictionService) generateMaintenanceAlerts(snapshots []model.StatusSnapshot, reports []model.MaintenanceReport, now time.Time) []model.MaintenanceAlert {
	var alerts []model.MaintenanceAlert

	// 直近10件の平均清潔度を確認
	recentCount := len(snapshots)
	if recentCount > 10 {
		recentCount = 10
	}
	if recentCount > 0 {
		var sum float64
		for _, snap := range snapshots[:recentCount] {
			sum += snap.Cleanliness
		}
		avg := sum / float64(recentCount)
		if avg < urgentCleanlinessLevel {
			alerts = append(alerts, model.MaintenanceAlert{
				Type:      "cleanliness",
				Severity:  model.SeverityHigh,
				Message:   "緊急の清掃が必要です",
				Timestamp: now,
			})
		} else if avg < lowCleanlinessLevel {
			alerts = append(alerts, model.MaintenanceAlert{
				Type:      "cleanliness",
				Severity:  model.SeverityMedium,
				Message:   "清掃を推奨します",
				Timestamp: now,
			})
		}
	}

	// 未対応のメンテナンス報告を確認（最大5件）
	pendingCount := 0
	for _, report := range reports {
		if report.Status != "pending" {
			continue
		}
		alerts = append(alerts, model.MaintenanceAlert{
			Type:      "maintenance",
			Severity:  report.Severity,
			Message:   report.Issue,
			Timestamp: report.Timestamp,
		})
		pendingCount++
		if pendingCount >= 5 {
			break
		}
	}

	return alerts
}

// determineStatus は混雑度とメンテナンス警告から予測状態を決定する
func determineStatus(busyness float64, alerts []model.MaintenanceAlert) string {
	for _, alert := range alerts {
		if alert.Severity == model.SeverityHigh {
			return model.StatusMaintenance
		}
	}
	if busyness > busyThreshold {
		return model.StatusBusy
	}
	return model.StatusAvailable
}
