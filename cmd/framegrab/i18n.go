// Package main provides localization for the framegrab CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Selection": "フレーム選択",
		"Output":    "出力先",
		"Reporting": "レポート",
		"Decoder":   "デコーダ",
		"Logging":   "ログ",

		// Commands
		"Extract still frames from videos":                "動画から静止画フレームを抽出",
		"Print the number of frames in a video":           "動画のフレーム数を表示",
		"Save selected frames of a video as images":       "動画から選択したフレームを画像として保存",
		"Show container metadata and ffmpeg availability": "コンテナのメタデータとffmpegの有無を表示",

		// Global flags
		"Log level (debug, info, warn, error)": "ログレベル (debug, info, warn, error)",
		"Suppress all log output":              "ログ出力をすべて抑制",
		"Path to the ffmpeg executable":        "ffmpeg実行ファイルのパス",

		// Extract flags
		"YAML config file; flags override its values":      "YAML設定ファイル (フラグが優先されます)",
		"Selection mode (all, every, uniform)":             "選択モード (all, every, uniform)",
		"Interval for every, frame count for uniform":      "everyでは間隔、uniformではフレーム数",
		"Fail when a uniform target frame cannot be read":  "uniformで対象フレームを読めない場合にエラーにする",
		"Output folder":                                    "出力フォルダ",
		"File name prefix":                                 "ファイル名の接頭辞",
		"Image format (jpeg, png, bmp, tiff)":              "画像形式 (jpeg, png, bmp, tiff)",
		"File extension (default: from format)":            "拡張子 (デフォルト: 画像形式から決定)",
		"JPEG quality (1-100)":                             "JPEG品質 (1-100)",
		"Downscale frames wider than this (0 = keep size)": "この幅より大きいフレームを縮小 (0 = 元のサイズ)",
		"Stamp the source frame index on each image":       "各画像に元のフレーム番号を描画",
		"Write a Markdown summary to this path":            "Markdownサマリーの出力先",
		"Write Prometheus textfile metrics to this path":   "Prometheusテキストファイル形式メトリクスの出力先",

		// Output
		"exactly one video path is required": "動画のパスを1つだけ指定してください",
		"Failed to load .env: %s":            ".env の読み込みに失敗しました: %s",
		"metadata: unavailable (%s)":         "メタデータ: 取得不可 (%s)",
		"codec: %s":                          "コーデック: %s",
		"resolution: %dx%d":                  "解像度: %dx%d",
		"frames (metadata): %d":              "フレーム数 (メタデータ): %d",
		"fragmented: %t":                     "フラグメント化: %t",
		"ffmpeg: not found (%s)":             "ffmpeg: 見つかりません (%s)",
		"ffmpeg: %s":                         "ffmpeg: %s",
	})
}
