package model

import "errors"

var (
	// ErrInvalidCoordinates 緯度が[-90,90]、経度が[-180,180]の範囲外
	ErrInvalidCoordinates = errors.New("座標が有効範囲外です")

	// ErrToiletNotFound 指定されたIDのトイレが存在しない
	ErrToiletNotFound = errors.New("トイレが見つかりません")

	// ErrUpstreamUnavailable カタログまたは履歴の取得に失敗（空の結果とは区別される）
	ErrUpstreamUnavailable = errors.New("外部データソースの取得に失敗しました")
)
