package controller

import "github.com/oliverisaac/memocal/memostore"

type Messages struct {
	ErrorTitle   string
	SuccessTitle string
	LoadFailed   string
	SaveFailed   string
	DeleteFailed string
	Unexpected   string
	Saved        string
	Deleted      string
	NoDateChosen string

	// Failures prefixes the cause of an access layer failure, by kind.
	Failures map[memostore.Kind]string
}

var EnglishMessages = Messages{
	ErrorTitle:   "Error",
	SuccessTitle: "Success",
	LoadFailed:   "Failed to load memos",
	SaveFailed:   "Failed to save memo",
	DeleteFailed: "Failed to delete memo",
	Unexpected:   "An unexpected error occurred",
	Saved:        "Memo saved",
	Deleted:      "Memo deleted",
	NoDateChosen: "No date selected",
	Failures: map[memostore.Kind]string{
		memostore.KindFetch:      "fetch failed",
		memostore.KindConfirm:    "confirmation failed",
		memostore.KindUpdate:     "update failed",
		memostore.KindCreate:     "creation failed",
		memostore.KindDelete:     "delete failed",
		memostore.KindInvalid:    "invalid date",
		memostore.KindUnexpected: "unexpected error",
	},
}

var JapaneseMessages = Messages{
	ErrorTitle:   "エラー",
	SuccessTitle: "成功",
	LoadFailed:   "メモの取得に失敗しました",
	SaveFailed:   "メモの保存に失敗しました",
	DeleteFailed: "メモの削除に失敗しました",
	Unexpected:   "予期せぬエラーが発生しました",
	Saved:        "メモを保存しました",
	Deleted:      "メモを削除しました",
	NoDateChosen: "日付が選択されていません",
	Failures: map[memostore.Kind]string{
		memostore.KindFetch:      "メモの取得に失敗しました",
		memostore.KindConfirm:    "メモの確認に失敗しました",
		memostore.KindUpdate:     "メモの更新に失敗しました",
		memostore.KindCreate:     "メモの作成に失敗しました",
		memostore.KindDelete:     "メモの削除に失敗しました",
		memostore.KindInvalid:    "日付が正しくありません",
		memostore.KindUnexpected: "予期せぬエラーが発生しました",
	},
}

func MessagesFor(locale string) Messages {
	if locale == "en" {
		return EnglishMessages
	}
	return JapaneseMessages
}
