package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level
		"Run %s started":                "実行 %s を開始しました",
		"Counting frames in %s":         "%s のフレーム数を計測中",
		"%s has %d frames (%s)":         "%s のフレーム数: %d (%s)",
		"Extracting %s from %s into %s": "%s を %s から %s へ抽出中",
		"Saved %d frames to %s":         "%d フレームを %s に保存しました",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Metrics written to %s":         "メトリクスを %s に書き込みました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Probe
		"Probed %s: codec=%s frames=%d":    "%s を解析しました: コーデック=%s フレーム数=%d",
		"No container metadata for %s: %s": "%s のコンテナメタデータがありません: %s",

		// Counter
		"Metadata reports %d frames":                                "メタデータ上のフレーム数: %d",
		"Unable to get frame count via metadata, counting manually": "メタデータからフレーム数を取得できません。手動で数えます",
		"Scan stopped after %d frames: %s":                          "%d フレームでスキャンが停止しました: %s",
		"Counted %d frames by scanning":                             "スキャンで %d フレームを数えました",

		// Sampler
		"Extracting %s from %s":                    "%s を %s から抽出中",
		"Stream ended early after %d frames: %s":   "%d フレームでストリームが途中終了しました: %s",
		"Skipping frame %d: %s":                    "フレーム %d をスキップします: %s",
		"%d of %d target frames could not be read": "%d / %d 個の対象フレームを読み込めませんでした",
		"Saved frame %d to %s":                     "フレーム %d を %s に保存しました",
		"Release failed: %s":                       "解放に失敗しました: %s",

		// Frame source
		"Metadata probe failed: %s":  "メタデータの取得に失敗しました: %s",
		"Started ffmpeg at frame %d": "フレーム %d から ffmpeg を起動しました",

		// Errors
		"Extraction failed: %s":      "抽出に失敗しました: %s",
		"Failed to write report: %s": "レポートの書き込みに失敗しました: %s",
	})
}
