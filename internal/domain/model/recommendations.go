package model

import "time"

// UserPreferences 推薦スコアリングへの入力となるユーザー設定（このコアでは永続化しない）
type UserPreferences struct {
	Accessibility      bool     `json:"accessibility"`      // 車椅子アクセスが必要か
	Cleanliness        int      `json:"cleanliness"`        // 許容できる最低清潔度（1〜5段階）
	Amenities          []string `json:"amenities"`          // 希望する設備タグ
	PreferredLocations []string `json:"preferredLocations"` // よく利用するエリアタグ
}

// HasPreferredLocation 指定エリアがユーザーの希望エリアに含まれるかチェック
func (p *UserPreferences) HasPreferredLocation(area string) bool {
	for _, l := range p.PreferredLocations {
		if l == area {
			return true
		}
	}
	return false
}

// UserHistory ユーザーとトイレの利用履歴1件
type UserHistory struct {
	UserID    string    `json:"userId"`
	ToiletID  string    `json:"toiletId"`
	Timestamp time.Time `json:"timestamp"`
	Rating    *float64  `json:"rating,omitempty"` // 評価（未評価の場合はnil）
	Visited   bool      `json:"visited"`
}

// Recommendation 1件のトイレに対するスコアリング結果
type Recommendation struct {
	ToiletID           string   `json:"toiletId"`
	Score              float64  `json:"score"`   // [0,1]にクランプ済み
	Reasons            []string `json:"reasons"` // スコアに寄与した要因（評価順）
	AccessibilityScore float64  `json:"accessibilityScore"`
	CleanlinessScore   float64  `json:"cleanlinessScore"`
	BusynessScore      float64  `json:"busynessScore"`
}

// RecommendationRequest パーソナライズ推薦APIのリクエスト
type RecommendationRequest struct {
	UserID       string          `json:"user_id" binding:"required"`
	Preferences  UserPreferences `json:"preferences"`
	Location     Location        `json:"location" binding:"required"`
	RadiusMeters float64         `json:"radius_meters"`
}

// RecommendationResponse 推薦APIのレスポンス
type RecommendationResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}
