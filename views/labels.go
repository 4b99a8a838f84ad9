package views

type Labels struct {
	Heading     string
	Prev        string
	Next        string
	MemoFor     string
	Placeholder string
	Cancel      string
	Delete      string
	Save        string
	Saving      string
	SignIn      string
	SignOut     string
	Password    string
	BadPassword string
	Export      string
}

var japaneseLabels = Labels{
	Heading:     "カレンダーメモアプリ",
	Prev:        "前の月",
	Next:        "次の月",
	MemoFor:     "のメモ",
	Placeholder: "メモを入力してください",
	Cancel:      "キャンセル",
	Delete:      "削除",
	Save:        "保存",
	Saving:      "保存中...",
	SignIn:      "ログイン",
	SignOut:     "ログアウト",
	Password:    "パスワード",
	BadPassword: "パスワードが正しくありません",
	Export:      "iCalendar",
}

var englishLabels = Labels{
	Heading:     "Calendar Memos",
	Prev:        "Previous month",
	Next:        "Next month",
	MemoFor:     "memo",
	Placeholder: "Write a memo",
	Cancel:      "Cancel",
	Delete:      "Delete",
	Save:        "Save",
	Saving:      "Saving...",
	SignIn:      "Sign in",
	SignOut:     "Sign out",
	Password:    "Password",
	BadPassword: "That password is incorrect",
	Export:      "iCalendar",
}

func LabelsFor(locale string) Labels {
	if locale == "en" {
		return englishLabels
	}
	return japaneseLabels
}
